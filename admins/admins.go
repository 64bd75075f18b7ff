package admins

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"atelier/db"
	"atelier/middleware"
	"atelier/models"
	"atelier/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// GET /api/admins — super admin only.
func GetAllAdmins(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.AdminsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	admins := []models.Admin{}
	if err := cur.All(ctx, &admins); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode admins")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, admins)
}

// GET /api/admins/me — any authenticated admin.
func GetMe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.UserIDFromContext(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	if err := db.AdminsCollection.FindOne(ctx, bson.M{"id": userID}).Decode(&admin); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Admin not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, admin)
}

type updateAdminRequest struct {
	Username    *string          `json:"username"`
	Email       *string          `json:"email"`
	Password    *string          `json:"password"`
	Role        *string          `json:"role"`
	Permissions *map[string]bool `json:"permissions"`
	IsActive    *bool            `json:"is_active"`
}

// PUT /api/admins/:id — super admin only. A super admin cannot strip
// their own role or deactivate themselves.
func UpdateAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	targetID := ps.ByName("id")
	var target models.Admin
	if err := db.AdminsCollection.FindOne(ctx, bson.M{"id": targetID}).Decode(&target); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Admin not found")
		return
	}

	callerID := middleware.UserIDFromContext(r)
	if callerID == targetID {
		if req.Role != nil && *req.Role != models.RoleSuperAdmin {
			utils.RespondWithError(w, http.StatusBadRequest, "Cannot change your own role")
			return
		}
		if req.IsActive != nil && !*req.IsActive {
			utils.RespondWithError(w, http.StatusBadRequest, "Cannot deactivate your own account")
			return
		}
	}

	update := bson.M{}
	if req.Username != nil && *req.Username != "" {
		update["username"] = *req.Username
	}
	if req.Email != nil && *req.Email != "" {
		if !utils.ValidEmail(*req.Email) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
			return
		}
		update["email"] = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 8 {
			utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		update["password_hash"] = string(hash)
	}
	if req.Role != nil {
		switch *req.Role {
		case models.RoleAdmin, models.RoleSuperAdmin:
		default:
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		update["role"] = *req.Role
	}
	if req.Permissions != nil {
		update["permissions"] = *req.Permissions
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	if _, err := db.AdminsCollection.UpdateOne(ctx, bson.M{"id": targetID}, bson.M{"$set": update}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update admin")
		return
	}

	var updated models.Admin
	if err := db.AdminsCollection.FindOne(ctx, bson.M{"id": targetID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admins/:id — super admin only; self-deletion is refused.
func DeleteAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	callerID := middleware.UserIDFromContext(r)
	targetID := ps.ByName("id")
	if callerID == targetID {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.AdminsCollection.DeleteOne(ctx, bson.M{"id": targetID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Admin not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Admin deleted successfully"})
}

// EnsureIndexes creates the unique email index for admin accounts.
func EnsureIndexes(ctx context.Context) error {
	_, err := db.AdminsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
