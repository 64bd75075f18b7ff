package services

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"atelier/db"
	"atelier/models"
	"atelier/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/services — public, ordered by display order.
func GetServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ServicesCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	list := []models.Service{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode services")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

type serviceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
	Order       int      `json:"order"`
}

// POST /api/admin/services
func CreateService(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Title == "" || input.Description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	service := models.Service{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Icon:        input.Icon,
		Features:    input.Features,
		Order:       input.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.ServicesCollection.InsertOne(ctx, service); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create service")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, service)
}

type updateServiceRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	Features    *[]string `json:"features"`
	Order       *int      `json:"order"`
}

// PUT /api/admin/services/:id
func UpdateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)}
	if req.Title != nil && *req.Title != "" {
		update["title"] = *req.Title
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Icon != nil {
		update["icon"] = *req.Icon
	}
	if req.Features != nil {
		update["features"] = *req.Features
	}
	if req.Order != nil {
		update["order"] = *req.Order
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ServicesCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update service")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}

	var updated models.Service
	if err := db.ServicesCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admin/services/:id
func DeleteService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ServicesCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
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
