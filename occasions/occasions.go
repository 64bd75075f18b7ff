package occasions

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"atelier/db"
	"atelier/middleware"
	"atelier/models"
	"atelier/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/occasions?active=true — the public catalog, in display order.
func GetOccasionServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if r.URL.Query().Get("active") == "true" {
		filter["is_active"] = true
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.OccasionsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"display_order": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	services := []models.OccasionService{}
	if err := cur.All(ctx, &services); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode services")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, services)
}

// GET /api/occasions/service/:id
func GetOccasionService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var service models.OccasionService
	if err := db.OccasionsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&service); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, service)
}

type serviceRequestBody struct {
	Name          string   `json:"name"`
	EventType     string   `json:"event_type"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	OriginalPrice float64  `json:"original_price"`
	OfferPrice    float64  `json:"offer_price"`
	Currency      string   `json:"currency"`
	Images        []string `json:"images"`
	IsActive      *bool    `json:"is_active"`
	DisplayOrder  int      `json:"display_order"`
}

// POST /api/admin/occasions
func CreateOccasionService(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input serviceRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.EventType == "" || input.Description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, event type and description are required")
		return
	}

	currency := input.Currency
	if currency == "" {
		currency = "₹"
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	service := models.OccasionService{
		ID:            uuid.NewString(),
		Name:          input.Name,
		EventType:     input.EventType,
		Description:   input.Description,
		Features:      input.Features,
		OriginalPrice: input.OriginalPrice,
		OfferPrice:    input.OfferPrice,
		Currency:      currency,
		Images:        input.Images,
		IsActive:      active,
		DisplayOrder:  input.DisplayOrder,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     middleware.UserIDFromContext(r),
	}
	if _, err := db.OccasionsCollection.InsertOne(ctx, service); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create service")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, service)
}

type updateServiceRequest struct {
	Name          *string   `json:"name"`
	EventType     *string   `json:"event_type"`
	Description   *string   `json:"description"`
	Features      *[]string `json:"features"`
	OriginalPrice *float64  `json:"original_price"`
	OfferPrice    *float64  `json:"offer_price"`
	Currency      *string   `json:"currency"`
	Images        *[]string `json:"images"`
	IsActive      *bool     `json:"is_active"`
	DisplayOrder  *int      `json:"display_order"`
}

// PUT /api/admin/occasions/service/:id — partial update.
func UpdateOccasionService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)}
	if req.Name != nil && *req.Name != "" {
		update["name"] = *req.Name
	}
	if req.EventType != nil && *req.EventType != "" {
		update["event_type"] = *req.EventType
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Features != nil {
		update["features"] = *req.Features
	}
	if req.OriginalPrice != nil {
		update["original_price"] = *req.OriginalPrice
	}
	if req.OfferPrice != nil {
		update["offer_price"] = *req.OfferPrice
	}
	if req.Currency != nil && *req.Currency != "" {
		update["currency"] = *req.Currency
	}
	if req.Images != nil {
		update["images"] = *req.Images
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if req.DisplayOrder != nil {
		update["display_order"] = *req.DisplayOrder
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.OccasionsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update service")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}

	var updated models.OccasionService
	if err := db.OccasionsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admin/occasions/service/:id
func DeleteOccasionService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.OccasionsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Service deleted successfully"})
}
