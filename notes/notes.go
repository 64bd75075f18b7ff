package notes

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
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

// GET /api/notes?q=&tag= — q matches name or content, case-insensitive.
func GetNotes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if q := r.URL.Query().Get("q"); q != "" {
		quoted := regexp.QuoteMeta(q)
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": quoted, "$options": "i"}},
			{"content": bson.M{"$regex": quoted, "$options": "i"}},
		}
	}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		filter["tags"] = tag
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.NotesCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"updated_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	list := []models.Note{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode notes")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/notes/:id
func GetNote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var note models.Note
	if err := db.NotesCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&note); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Note not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, note)
}

type noteRequest struct {
	Name    string   `json:"name"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// POST /api/notes
func CreateNote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input noteRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	author := middleware.UserIDFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	note := models.Note{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Content:   input.Content,
		Tags:      tags,
		CreatedBy: author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.NotesCollection.InsertOne(ctx, note); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create note")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, note)
}

type updateNoteRequest struct {
	Name    *string   `json:"name"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// PUT /api/notes/:id
func UpdateNote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)}
	if req.Name != nil && *req.Name != "" {
		update["name"] = *req.Name
	}
	if req.Content != nil {
		update["content"] = *req.Content
	}
	if req.Tags != nil {
		update["tags"] = *req.Tags
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.NotesCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update note")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Note not found")
		return
	}

	var updated models.Note
	if err := db.NotesCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/notes/:id
func DeleteNote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.NotesCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Note not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}
