package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"atelier/db"
	"atelier/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// JWT claims. TokenType distinguishes admin panel tokens from client
// portal tokens; Permissions is only set on admin tokens.
type Claims struct {
	Username    string          `json:"username"`
	UserID      string          `json:"userId"`
	Role        string          `json:"role"`
	TokenType   string          `json:"type"`
	Permissions map[string]bool `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

const (
	TokenTypeAdmin  = "admin"
	TokenTypeClient = "client"
)

func parseToken(header string) (*Claims, error) {
	if len(header) < 8 || !strings.HasPrefix(header, "Bearer ") {
		return nil, fmt.Errorf("invalid token format")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(header[7:], claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ValidateJWT parses a raw "Bearer ..." header value.
func ValidateJWT(tokenString string) (*Claims, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	return claims, nil
}

func withIdentity(r *http.Request, claims *Claims) *http.Request {
	ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
	ctx = context.WithValue(ctx, globals.TokenTypeKey, claims.TokenType)
	return r.WithContext(ctx)
}

func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := parseToken(r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, "Invalid or missing token", http.StatusUnauthorized)
			return
		}
		next(w, withIdentity(r, claims), ps)
	}
}

// AdminOnly requires a valid admin token whose account still exists.
func AdminOnly(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := parseToken(r.Header.Get("Authorization"))
		if err != nil || claims.TokenType != TokenTypeAdmin {
			http.Error(w, "Admin access required", http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		count, err := db.AdminsCollection.CountDocuments(ctx, bson.M{"id": claims.UserID})
		if err != nil || count == 0 {
			http.Error(w, "Admin not found", http.StatusUnauthorized)
			return
		}
		next(w, withIdentity(r, claims), ps)
	}
}

// SuperAdminOnly additionally requires the super_admin role.
func SuperAdminOnly(next httprouter.Handle) httprouter.Handle {
	return AdminOnly(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if role, _ := r.Context().Value(globals.RoleKey).(string); role != "super_admin" {
			http.Error(w, "Super admin access required", http.StatusForbidden)
			return
		}
		next(w, r, ps)
	})
}

// RequirePermission gates an admin route on a permission flag.
// Super admins pass every check.
func RequirePermission(permission string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := parseToken(r.Header.Get("Authorization"))
		if err != nil || claims.TokenType != TokenTypeAdmin {
			http.Error(w, "Admin access required", http.StatusUnauthorized)
			return
		}
		if claims.Role != "super_admin" && !claims.Permissions[permission] {
			http.Error(w, "Permission denied", http.StatusForbidden)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		count, err := db.AdminsCollection.CountDocuments(ctx, bson.M{"id": claims.UserID})
		if err != nil || count == 0 {
			http.Error(w, "Admin not found", http.StatusUnauthorized)
			return
		}
		next(w, withIdentity(r, claims), ps)
	}
}

// ClientOnly requires a valid portal token for an active client account.
func ClientOnly(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := parseToken(r.Header.Get("Authorization"))
		if err != nil || claims.TokenType != TokenTypeClient {
			http.Error(w, "Client access required", http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		var client struct {
			IsActive bool `bson:"is_active"`
		}
		err = db.ClientsCollection.FindOne(ctx, bson.M{"id": claims.UserID}).Decode(&client)
		if err != nil {
			http.Error(w, "Client not found", http.StatusUnauthorized)
			return
		}
		if !client.IsActive {
			http.Error(w, "Client account is deactivated", http.StatusForbidden)
			return
		}
		next(w, withIdentity(r, claims), ps)
	}
}

// UserIDFromContext returns the authenticated caller's id, if any.
func UserIDFromContext(r *http.Request) string {
	id, _ := r.Context().Value(globals.UserIDKey).(string)
	return id
}
