package credentials

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

// The credential vault is exposed to super admins only; routing
// enforces that.

// GET /api/admin/credentials?client_id=
func GetAllCredentials(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if clientID := r.URL.Query().Get("client_id"); clientID != "" {
		filter["client_id"] = clientID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.CredentialsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"label": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	list := []models.Credential{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode credentials")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

type credentialRequest struct {
	ClientID string `json:"client_id"`
	Label    string `json:"label"`
	SiteURL  string `json:"site_url"`
	Username string `json:"username"`
	Password string `json:"password"`
	Notes    string `json:"notes"`
}

// POST /api/admin/credentials
func CreateCredential(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Label == "" || input.Username == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Label, username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	cred := models.Credential{
		ID:        uuid.NewString(),
		ClientID:  input.ClientID,
		Label:     input.Label,
		SiteURL:   input.SiteURL,
		Username:  input.Username,
		Password:  input.Password,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.CredentialsCollection.InsertOne(ctx, cred); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create credential")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, cred)
}

type updateCredentialRequest struct {
	ClientID *string `json:"client_id"`
	Label    *string `json:"label"`
	SiteURL  *string `json:"site_url"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Notes    *string `json:"notes"`
}

// PUT /api/admin/credentials/:id
func UpdateCredential(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)}
	if req.ClientID != nil {
		update["client_id"] = *req.ClientID
	}
	if req.Label != nil && *req.Label != "" {
		update["label"] = *req.Label
	}
	if req.SiteURL != nil {
		update["site_url"] = *req.SiteURL
	}
	if req.Username != nil && *req.Username != "" {
		update["username"] = *req.Username
	}
	if req.Password != nil && *req.Password != "" {
		update["password"] = *req.Password
	}
	if req.Notes != nil {
		update["notes"] = *req.Notes
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.CredentialsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update credential")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Credential not found")
		return
	}

	var updated models.Credential
	if err := db.CredentialsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admin/credentials/:id
func DeleteCredential(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.CredentialsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Credential not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Credential deleted successfully"})
}
