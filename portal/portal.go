package portal

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

func validStatus(s string) bool {
	switch s {
	case models.ClientProjectPlanning, models.ClientProjectInProgress,
		models.ClientProjectReview, models.ClientProjectCompleted,
		models.ClientProjectOnHold:
		return true
	}
	return false
}

// GET /api/client/projects — the authenticated client's own projects.
func GetMyProjects(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	clientID := middleware.UserIDFromContext(r)
	if clientID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ClientProjectsCollection.Find(ctx, bson.M{"client_id": clientID},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	projects := []models.ClientProject{}
	if err := cur.All(ctx, &projects); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode projects")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

// GET /api/client/projects/:id — ownership enforced.
func GetMyProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	clientID := middleware.UserIDFromContext(r)
	if clientID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var project models.ClientProject
	err := db.ClientProjectsCollection.FindOne(ctx,
		bson.M{"id": ps.ByName("id"), "client_id": clientID}).Decode(&project)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, project)
}

type projectRequest struct {
	ClientID    string `json:"client_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
	DueDate     string `json:"due_date"`
}

// POST /api/admin/client-projects
func CreateProject(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input projectRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.ClientID == "" || input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Client and name are required")
		return
	}
	status := input.Status
	if status == "" {
		status = models.ClientProjectPlanning
	}
	if !validStatus(status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := db.ClientsCollection.FindOne(ctx, bson.M{"id": input.ClientID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Client not found")
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	project := models.ClientProject{
		ID:          uuid.NewString(),
		ClientID:    input.ClientID,
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		Progress:    0,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
		Milestones:  []models.Milestone{},
		Updates:     []models.ProjectUpdate{},
		Files:       []models.ProjectFile{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.ClientProjectsCollection.InsertOne(ctx, project); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, project)
}

// GET /api/admin/client-projects?client_id=
func GetAllProjects(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if clientID := r.URL.Query().Get("client_id"); clientID != "" {
		filter["client_id"] = clientID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ClientProjectsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	projects := []models.ClientProject{}
	if err := cur.All(ctx, &projects); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode projects")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

// GET /api/admin/client-projects/:id
func GetProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var project models.ClientProject
	if err := db.ClientProjectsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&project); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, project)
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	StartDate   *string `json:"start_date"`
	DueDate     *string `json:"due_date"`
}

// PUT /api/admin/client-projects/:id
func UpdateProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)}
	if req.Name != nil && *req.Name != "" {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		update["status"] = *req.Status
	}
	if req.StartDate != nil {
		update["start_date"] = *req.StartDate
	}
	if req.DueDate != nil {
		update["due_date"] = *req.DueDate
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ClientProjectsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	var updated models.ClientProject
	if err := db.ClientProjectsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admin/client-projects/:id
func DeleteProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ClientProjectsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}
