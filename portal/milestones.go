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
)

// reloadWithProgress re-reads the project, recomputes progress from its
// milestones and persists the figure before returning the document.
func reloadWithProgress(ctx context.Context, projectID string) (*models.ClientProject, error) {
	var project models.ClientProject
	if err := db.ClientProjectsCollection.FindOne(ctx, bson.M{"id": projectID}).Decode(&project); err != nil {
		return nil, err
	}
	progress := ComputeProgress(project.Milestones)
	if progress != project.Progress {
		project.Progress = progress
		db.ClientProjectsCollection.UpdateOne(ctx, bson.M{"id": projectID},
			bson.M{"$set": bson.M{"progress": progress}})
	}
	return &project, nil
}

type milestoneRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// POST /api/admin/client-projects/:id/milestones
func AddMilestone(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input milestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	milestone := models.Milestone{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
	}
	res, err := db.ClientProjectsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")},
		bson.M{
			"$push": bson.M{"milestones": milestone},
			"$set":  bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add milestone")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	project, err := reloadWithProgress(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, project)
}

type toggleMilestoneRequest struct {
	Completed bool `json:"completed"`
}

// PUT /api/admin/client-projects/:id/milestones/:milestoneId
func ToggleMilestone(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input toggleMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	set := bson.M{
		"milestones.$.completed": input.Completed,
		"updated_at":             time.Now().UTC().Format(time.RFC3339),
	}
	if input.Completed {
		set["milestones.$.completed_at"] = time.Now().UTC().Format(time.RFC3339)
	} else {
		set["milestones.$.completed_at"] = ""
	}

	res, err := db.ClientProjectsCollection.UpdateOne(ctx,
		bson.M{"id": ps.ByName("id"), "milestones.id": ps.ByName("milestoneId")},
		bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update milestone")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Milestone not found")
		return
	}

	project, err := reloadWithProgress(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, project)
}

// DELETE /api/admin/client-projects/:id/milestones/:milestoneId
func DeleteMilestone(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ClientProjectsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")},
		bson.M{
			"$pull": bson.M{"milestones": bson.M{"id": ps.ByName("milestoneId")}},
			"$set":  bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete milestone")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	project, err := reloadWithProgress(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, project)
}

type updateEntryRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// POST /api/admin/client-projects/:id/updates
func AddUpdate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Message is required")
		return
	}

	author := "admin"
	if id := middleware.UserIDFromContext(r); id != "" {
		author = id
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entry := models.ProjectUpdate{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Message:   input.Message,
		Author:    author,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	res, err := db.ClientProjectsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")},
		bson.M{
			"$push": bson.M{"updates": entry},
			"$set":  bson.M{"updated_at": entry.CreatedAt},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add update")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, entry)
}

type fileLinkRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// POST /api/admin/client-projects/:id/files — link a delivered file.
func AddFile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input fileLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" || input.URL == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and URL are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	file := models.ProjectFile{
		ID:         uuid.NewString(),
		Name:       input.Name,
		URL:        input.URL,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}
	res, err := db.ClientProjectsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")},
		bson.M{
			"$push": bson.M{"files": file},
			"$set":  bson.M{"updated_at": file.UploadedAt},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add file")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, file)
}

// DELETE /api/admin/client-projects/:id/files/:fileId
func DeleteFile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ClientProjectsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")},
		bson.M{
			"$pull": bson.M{"files": bson.M{"id": ps.ByName("fileId")}},
			"$set":  bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "File removed successfully"})
}
