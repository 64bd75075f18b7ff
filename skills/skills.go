package skills

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

// GET /api/skills
func GetSkills(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.SkillsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	list := []models.Skill{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode skills")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

type skillRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// POST /api/admin/skills
func CreateSkill(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input skillRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skill := models.Skill{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Icon:      input.Icon,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := db.SkillsCollection.InsertOne(ctx, skill); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create skill")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, skill)
}

// PUT /api/admin/skills/:id
func UpdateSkill(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input skillRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Icon != "" {
		update["icon"] = input.Icon
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.SkillsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update skill")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Skill not found")
		return
	}

	var updated models.Skill
	if err := db.SkillsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admin/skills/:id
func DeleteSkill(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.SkillsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Skill not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Skill deleted successfully"})
}
