package projects

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

// GET /api/projects — public listing, private work excluded.
func GetProjects(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{"is_private": false}
	if r.URL.Query().Get("featured") == "true" {
		filter["featured"] = true
	}
	if category := r.URL.Query().Get("category"); category != "" {
		filter["category"] = category
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ProjectsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	projects := []models.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode projects")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

// GET /api/projects/:slug — public detail, 404 for private work.
func GetProjectBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var project models.Project
	err := db.ProjectsCollection.FindOne(ctx,
		bson.M{"slug": ps.ByName("slug"), "is_private": false}).Decode(&project)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, project)
}

// GET /api/admin/projects — includes private projects.
func GetAllProjectsAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ProjectsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	projects := []models.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode projects")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

type projectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Technologies []string `json:"technologies"`
	Image        string   `json:"image"`
	LiveURL      string   `json:"live_url"`
	GithubURL    string   `json:"github_url"`
	IsPrivate    bool     `json:"is_private"`
	Featured     bool     `json:"featured"`
}

// uniqueSlug appends a short random suffix on collision.
func uniqueSlug(ctx context.Context, title string) string {
	slug := utils.CreateSlug(title)
	err := db.ProjectsCollection.FindOne(ctx, bson.M{"slug": slug}).Err()
	if err != nil {
		return slug
	}
	return slug + "-" + utils.GenerateRandomString(6)
}

// POST /api/admin/projects
func CreateProject(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input projectRequest
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
	project := models.Project{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Slug:         uniqueSlug(ctx, input.Title),
		Description:  input.Description,
		Category:     input.Category,
		Technologies: input.Technologies,
		Image:        input.Image,
		LiveURL:      input.LiveURL,
		GithubURL:    input.GithubURL,
		IsPrivate:    input.IsPrivate,
		Featured:     input.Featured,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := db.ProjectsCollection.InsertOne(ctx, project); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, project)
}

type updateProjectRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Category     *string   `json:"category"`
	Technologies *[]string `json:"technologies"`
	Image        *string   `json:"image"`
	LiveURL      *string   `json:"live_url"`
	GithubURL    *string   `json:"github_url"`
	IsPrivate    *bool     `json:"is_private"`
	Featured     *bool     `json:"featured"`
}

// PUT /api/admin/projects/:id — retitling regenerates the slug.
func UpdateProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)}
	if req.Title != nil && *req.Title != "" {
		update["title"] = *req.Title
		update["slug"] = uniqueSlug(ctx, *req.Title)
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Category != nil {
		update["category"] = *req.Category
	}
	if req.Technologies != nil {
		update["technologies"] = *req.Technologies
	}
	if req.Image != nil {
		update["image"] = *req.Image
	}
	if req.LiveURL != nil {
		update["live_url"] = *req.LiveURL
	}
	if req.GithubURL != nil {
		update["github_url"] = *req.GithubURL
	}
	if req.IsPrivate != nil {
		update["is_private"] = *req.IsPrivate
	}
	if req.Featured != nil {
		update["featured"] = *req.Featured
	}

	res, err := db.ProjectsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	var updated models.Project
	if err := db.ProjectsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admin/projects/:id
func DeleteProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ProjectsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
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
