package testimonials

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

// GET /api/testimonials — approved entries only.
func GetTestimonials(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.TestimonialsCollection.Find(ctx,
		bson.M{"status": models.TestimonialApproved},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	list := []models.Testimonial{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode testimonials")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

type submitRequest struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

// POST /api/testimonials/submit — public submissions land as pending.
func SubmitTestimonial(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input submitRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and message are required")
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	testimonial := models.Testimonial{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Role:      input.Role,
		Company:   input.Company,
		Email:     input.Email,
		Message:   input.Message,
		Rating:    input.Rating,
		Status:    models.TestimonialPending,
		Source:    "public_submitted",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.TestimonialsCollection.InsertOne(ctx, testimonial); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit testimonial")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "Thank you! Your testimonial is pending review.",
	})
}

type clientSubmitRequest struct {
	Message   string `json:"message"`
	Rating    int    `json:"rating"`
	ProjectID string `json:"project_id"`
}

// POST /api/client/testimonials — a portal client's submission is tied
// to their account and marked verified.
func SubmitClientTestimonial(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	clientID := middleware.UserIDFromContext(r)
	if clientID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input clientSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var client models.Client
	if err := db.ClientsCollection.FindOne(ctx, bson.M{"id": clientID}).Decode(&client); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Client not found")
		return
	}

	projectName := ""
	if input.ProjectID != "" {
		var project models.ClientProject
		err := db.ClientProjectsCollection.FindOne(ctx,
			bson.M{"id": input.ProjectID, "client_id": clientID}).Decode(&project)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Project not found")
			return
		}
		projectName = project.Name
	}

	now := time.Now().UTC().Format(time.RFC3339)
	testimonial := models.Testimonial{
		ID:          uuid.NewString(),
		Name:        client.Name,
		Company:     client.Company,
		Email:       client.Email,
		Message:     input.Message,
		Rating:      input.Rating,
		Status:      models.TestimonialPending,
		Source:      "client_submitted",
		Verified:    true,
		ClientID:    clientID,
		ProjectID:   input.ProjectID,
		ProjectName: projectName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.TestimonialsCollection.InsertOne(ctx, testimonial); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit testimonial")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, testimonial)
}

// GET /api/admin/testimonials?status=
func GetAllTestimonialsAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.TestimonialsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	list := []models.Testimonial{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode testimonials")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

type adminTestimonialRequest struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
	Image   string `json:"image"`
}

// POST /api/admin/testimonials — admin-entered entries are approved
// immediately.
func CreateTestimonial(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input adminTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and message are required")
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	testimonial := models.Testimonial{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Role:      input.Role,
		Company:   input.Company,
		Message:   input.Message,
		Rating:    input.Rating,
		Image:     input.Image,
		Status:    models.TestimonialApproved,
		Source:    "admin_created",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.TestimonialsCollection.InsertOne(ctx, testimonial); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create testimonial")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, testimonial)
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /api/admin/testimonials/:id/status — approve or reject.
func SetTestimonialStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input statusRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	switch input.Status {
	case models.TestimonialPending, models.TestimonialApproved, models.TestimonialRejected:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.TestimonialsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")},
		bson.M{"$set": bson.M{
			"status":     input.Status,
			"updated_at": time.Now().UTC().Format(time.RFC3339),
		}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update testimonial")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	var updated models.Testimonial
	if err := db.TestimonialsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admin/testimonials/:id
func DeleteTestimonial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.TestimonialsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Testimonial not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Testimonial deleted successfully"})
}
