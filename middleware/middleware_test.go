package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"atelier/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, claims *Claims, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func adminClaims(exp time.Time) *Claims {
	return &Claims{
		Username:  "admin@example.com",
		UserID:    "admin-1",
		Role:      "admin",
		TokenType: TokenTypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

func TestValidateJWT(t *testing.T) {
	signed := signToken(t, adminClaims(time.Now().Add(time.Hour)), globals.JwtSecret)

	claims, err := ValidateJWT("Bearer " + signed)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims.UserID != "admin-1" || claims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != TokenTypeAdmin {
		t.Errorf("expected token type %q, got %q", TokenTypeAdmin, claims.TokenType)
	}
}

func TestValidateJWTRejectsBadTokens(t *testing.T) {
	expired := signToken(t, adminClaims(time.Now().Add(-time.Hour)), globals.JwtSecret)
	wrongKey := signToken(t, adminClaims(time.Now().Add(time.Hour)), []byte("not-the-secret"))

	tests := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"missing bearer prefix", expired},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + wrongKey},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateJWT(tt.header); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Error("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticatePutsUserIDInContext(t *testing.T) {
	signed := signToken(t, adminClaims(time.Now().Add(time.Hour)), globals.JwtSecret)

	var gotID string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotID = UserIDFromContext(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if gotID != "admin-1" {
		t.Errorf("expected user id admin-1 in context, got %q", gotID)
	}
}

func TestRequirePermissionDeniesMissingPermission(t *testing.T) {
	claims := adminClaims(time.Now().Add(time.Hour))
	claims.Permissions = map[string]bool{"manage_blogs": true}
	signed := signToken(t, claims, globals.JwtSecret)

	handler := RequirePermission("manage_bookings", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Error("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings/all", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestRequirePermissionRejectsClientToken(t *testing.T) {
	claims := adminClaims(time.Now().Add(time.Hour))
	claims.TokenType = TokenTypeClient
	signed := signToken(t, claims, globals.JwtSecret)

	handler := RequirePermission("manage_bookings", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Error("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings/all", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
