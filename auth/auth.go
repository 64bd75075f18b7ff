package auth

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
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// GenerateAdminToken issues a panel JWT carrying role and permissions.
func GenerateAdminToken(admin *models.Admin) (string, error) {
	claims := middleware.Claims{
		Username:    admin.Username,
		UserID:      admin.ID,
		Role:        admin.Role,
		TokenType:   middleware.TokenTypeAdmin,
		Permissions: admin.Permissions,
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

// POST /api/auth/login
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input loginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	err := db.AdminsCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&admin)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !admin.IsActive {
		utils.RespondWithError(w, http.StatusForbidden, "Account is deactivated")
		return
	}

	token, err := GenerateAdminToken(&admin)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	db.AdminsCollection.UpdateOne(ctx, bson.M{"id": admin.ID},
		bson.M{"$set": bson.M{"last_login_at": time.Now().UTC().Format(time.RFC3339)}})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"access_token": token,
		"token_type":   "bearer",
		"user": utils.M{
			"id":          admin.ID,
			"username":    admin.Username,
			"email":       admin.Email,
			"role":        admin.Role,
			"permissions": admin.Permissions,
		},
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /api/auth/register — the very first admin may self-register to
// bootstrap an empty deployment; afterwards only super admins may
// create accounts.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input registerRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Username == "" || input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !utils.ValidEmail(input.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(input.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	total, err := db.AdminsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	role := input.Role
	if total == 0 {
		// Bootstrap account is always a super admin.
		role = models.RoleSuperAdmin
	} else {
		claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
		if err != nil || claims.TokenType != middleware.TokenTypeAdmin || claims.Role != models.RoleSuperAdmin {
			utils.RespondWithError(w, http.StatusForbidden, "Super admin access required")
			return
		}
		if role != models.RoleSuperAdmin {
			role = models.RoleAdmin
		}
	}

	err = db.AdminsCollection.FindOne(ctx, bson.M{"email": input.Email}).Err()
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

	admin := models.Admin{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		Permissions:  map[string]bool{},
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := db.AdminsCollection.InsertOne(ctx, admin); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create admin")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"id":       admin.ID,
		"username": admin.Username,
		"email":    admin.Email,
		"role":     admin.Role,
	})
}

// POST /api/auth/logout — token invalidation is handled client-side.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
