package contacts

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"atelier/db"
	"atelier/models"
	"atelier/mq"
	"atelier/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// POST /api/contact — public form submission. The operator is notified
// asynchronously.
func SubmitContact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input contactRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Email == "" || input.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and message are required")
		return
	}
	if !utils.ValidEmail(input.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	contact := models.Contact{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := db.ContactsCollection.InsertOne(ctx, contact); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit message")
		return
	}

	mq.Emit(ctx, mq.Event{
		Kind:    "contact",
		Subject: "New contact message from " + contact.Name,
		Fields: map[string]string{
			"name":    contact.Name,
			"email":   contact.Email,
			"subject": contact.Subject,
		},
	})

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "Message sent successfully",
	})
}

// GET /api/admin/contacts?unread=true
func GetAllContacts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if r.URL.Query().Get("unread") == "true" {
		filter["read"] = false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ContactsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	list := []models.Contact{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode contacts")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/admin/contacts/:id — reading marks the message read.
func GetContact(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var contact models.Contact
	if err := db.ContactsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&contact); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}

	if !contact.Read {
		db.ContactsCollection.UpdateOne(ctx, bson.M{"id": contact.ID},
			bson.M{"$set": bson.M{"read": true}})
		contact.Read = true
	}
	utils.RespondWithJSON(w, http.StatusOK, contact)
}

type readRequest struct {
	Read *bool `json:"read"`
}

// PUT /api/admin/contacts/:id/read — sets the read flag; defaults to
// marking read when no body is sent.
func MarkContactRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	read := true
	var input readRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err == nil && input.Read != nil {
		read = *input.Read
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ContactsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")},
		bson.M{"$set": bson.M{"read": read}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update message")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Message updated"})
}

// DELETE /api/admin/contacts/:id
func DeleteContact(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ContactsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Message deleted successfully"})
}
