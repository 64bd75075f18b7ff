package newsletter

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"atelier/db"
	"atelier/models"
	"atelier/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

// POST /api/newsletter/subscribe — idempotent; a previously
// unsubscribed address is reactivated.
func Subscribe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !utils.ValidEmail(email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Subscriber
	err := db.NewsletterCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		if existing.Status == models.SubscriberActive {
			utils.RespondWithJSON(w, http.StatusOK, map[string]string{
				"message": "Already subscribed",
			})
			return
		}
		db.NewsletterCollection.UpdateOne(ctx, bson.M{"id": existing.ID},
			bson.M{"$set": bson.M{"status": models.SubscriberActive}})
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{
			"message": "Subscription reactivated",
		})
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	sub := models.Subscriber{
		ID:        uuid.NewString(),
		Email:     email,
		Status:    models.SubscriberActive,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := db.NewsletterCollection.InsertOne(ctx, sub); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to subscribe")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "Subscribed successfully",
	})
}

// POST /api/newsletter/unsubscribe
func Unsubscribe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.NewsletterCollection.UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$set": bson.M{"status": models.SubscriberUnsubscribed}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Email not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Unsubscribed successfully",
	})
}

// GET /api/admin/newsletter?status=
func GetAllSubscribers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.NewsletterCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	subs := []models.Subscriber{}
	if err := cur.All(ctx, &subs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode subscribers")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, subs)
}

// DELETE /api/admin/newsletter/:id
func DeleteSubscriber(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.NewsletterCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Subscriber not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Subscriber deleted successfully"})
}

// BuildCSV renders the subscriber export.
func BuildCSV(subs []models.Subscriber) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write([]string{"email", "status", "subscribed_at"}); err != nil {
		return nil, err
	}
	for _, s := range subs {
		if err := cw.Write([]string{s.Email, s.Status, s.CreatedAt}); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// GET /api/admin/newsletter/export — CSV of active subscribers.
func ExportSubscribers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cur, err := db.NewsletterCollection.Find(ctx,
		bson.M{"status": models.SubscriberActive},
		options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	subs := []models.Subscriber{}
	if err := cur.All(ctx, &subs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode subscribers")
		return
	}

	body, err := BuildCSV(subs)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build export")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=subscribers.csv")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
