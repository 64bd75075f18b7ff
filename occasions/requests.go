package occasions

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

type requestInput struct {
	ServiceID           string   `json:"service_id"`
	CustomerName        string   `json:"customer_name"`
	CustomerEmail       string   `json:"customer_email"`
	CustomerPhone       string   `json:"customer_phone"`
	CustomerWhatsapp    string   `json:"customer_whatsapp"`
	EventDate           string   `json:"event_date"`
	RecipientName       string   `json:"recipient_name"`
	Message             string   `json:"message"`
	SpecialInstructions string   `json:"special_instructions"`
	UploadedFiles       []string `json:"uploaded_files"`
}

// POST /api/occasions/requests — public intake. The service name and
// event type are denormalized onto the request at submission time.
func SubmitRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input requestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.ServiceID == "" || input.CustomerName == "" || input.CustomerPhone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Service, name and phone are required")
		return
	}
	if !utils.ValidEmail(input.CustomerEmail) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var service models.OccasionService
	if err := db.OccasionsCollection.FindOne(ctx, bson.M{"id": input.ServiceID}).Decode(&service); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	request := models.ServiceRequest{
		ID:                  uuid.NewString(),
		ServiceID:           service.ID,
		ServiceName:         service.Name,
		EventType:           service.EventType,
		CustomerName:        input.CustomerName,
		CustomerEmail:       input.CustomerEmail,
		CustomerPhone:       input.CustomerPhone,
		CustomerWhatsapp:    input.CustomerWhatsapp,
		EventDate:           input.EventDate,
		RecipientName:       input.RecipientName,
		Message:             input.Message,
		SpecialInstructions: input.SpecialInstructions,
		UploadedFiles:       input.UploadedFiles,
		Status:              models.RequestPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if _, err := db.ServiceRequestsCollection.InsertOne(ctx, request); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit request")
		return
	}

	mq.Emit(ctx, mq.Event{
		Kind:    "occasion",
		Subject: "New service request from " + request.CustomerName,
		Fields: map[string]string{
			"service": request.ServiceName,
			"email":   request.CustomerEmail,
			"phone":   request.CustomerPhone,
		},
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message":    "Service request submitted successfully! We will contact you soon.",
		"request_id": request.ID,
	})
}

// GET /api/admin/occasions/requests?status=
func GetAllRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ServiceRequestsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(1000))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	requests := []models.ServiceRequest{}
	if err := cur.All(ctx, &requests); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode requests")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, requests)
}

// GET /api/admin/occasions/requests/:id
func GetRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var request models.ServiceRequest
	if err := db.ServiceRequestsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&request); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Request not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, request)
}

type updateRequestBody struct {
	Status        *string `json:"status"`
	AdminNotes    *string `json:"admin_notes"`
	EventDate     *string `json:"event_date"`
	RecipientName *string `json:"recipient_name"`
}

// PUT /api/admin/occasions/requests/:id
func UpdateRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)}
	if req.Status != nil {
		switch *req.Status {
		case models.RequestPending, models.RequestInProgress, models.RequestCompleted, models.RequestCancelled:
		default:
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		update["status"] = *req.Status
	}
	if req.AdminNotes != nil {
		update["admin_notes"] = *req.AdminNotes
	}
	if req.EventDate != nil {
		update["event_date"] = *req.EventDate
	}
	if req.RecipientName != nil {
		update["recipient_name"] = *req.RecipientName
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ServiceRequestsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update request")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Request not found")
		return
	}

	var updated models.ServiceRequest
	if err := db.ServiceRequestsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}
