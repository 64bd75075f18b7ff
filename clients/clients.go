package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"atelier/db"
	"atelier/globals"
	"atelier/middleware"
	"atelier/models"
	"atelier/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// GenerateClientToken issues a portal JWT scoped to the client token type.
func GenerateClientToken(client *models.Client) (string, error) {
	claims := middleware.Claims{
		Username:  client.Name,
		UserID:    client.ID,
		Role:      "client",
		TokenType: middleware.TokenTypeClient,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/client/auth/login
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input loginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var client models.Client
	err := db.ClientsCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&client)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !client.IsActive {
		utils.RespondWithError(w, http.StatusForbidden, "Account is deactivated")
		return
	}

	token, err := GenerateClientToken(&client)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	db.ClientsCollection.UpdateOne(ctx, bson.M{"id": client.ID},
		bson.M{"$set": bson.M{"last_login_at": time.Now().UTC().Format(time.RFC3339)}})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"access_token": token,
		"token_type":   "bearer",
		"client": utils.M{
			"id":      client.ID,
			"name":    client.Name,
			"email":   client.Email,
			"company": client.Company,
		},
	})
}

// GET /api/client/auth/me
func GetMe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	clientID := middleware.UserIDFromContext(r)
	if clientID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var client models.Client
	if err := db.ClientsCollection.FindOne(ctx, bson.M{"id": clientID}).Decode(&client); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Client not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, client)
}

type clientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes"`
}

// POST /api/admin/clients — admin creates a portal account.
func CreateClient(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input clientRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	if !utils.ValidEmail(input.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := db.ClientsCollection.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	client := models.Client{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Company:      input.Company,
		Phone:        input.Phone,
		Notes:        input.Notes,
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := db.ClientsCollection.InsertOne(ctx, client); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create client")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, client)
}

// GET /api/admin/clients
func GetAllClients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ClientsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	list := []models.Client{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode clients")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/admin/clients/:id
func GetClient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var client models.Client
	if err := db.ClientsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&client); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Client not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, client)
}

type updateClientRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Company  *string `json:"company"`
	Phone    *string `json:"phone"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"is_active"`
}

// PUT /api/admin/clients/:id
func UpdateClient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{}
	if req.Name != nil && *req.Name != "" {
		update["name"] = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		if !utils.ValidEmail(*req.Email) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
			return
		}
		update["email"] = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		update["password_hash"] = string(hash)
	}
	if req.Company != nil {
		update["company"] = *req.Company
	}
	if req.Phone != nil {
		update["phone"] = *req.Phone
	}
	if req.Notes != nil {
		update["notes"] = *req.Notes
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	res, err := db.ClientsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update client")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Client not found")
		return
	}

	var updated models.Client
	if err := db.ClientsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admin/clients/:id — removes the account along with its
// portal projects and stored credentials.
func DeleteClient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	res, err := db.ClientsCollection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Client not found")
		return
	}

	db.ClientProjectsCollection.DeleteMany(ctx, bson.M{"client_id": id})
	db.CredentialsCollection.DeleteMany(ctx, bson.M{"client_id": id})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Client deleted successfully"})
}
