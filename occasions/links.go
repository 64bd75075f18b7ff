package occasions

import (
	"context"
	"encoding/json"
	"log"
	rndm "math/rand"
	"net/http"
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

const defaultExpiryHours = 24

// 0/O and 1/I are excluded so codes survive being read out loud.
var codeRunes = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

func shortCode() string {
	b := make([]rune, 8)
	for i := range b {
		b[i] = codeRunes[rndm.Intn(len(codeRunes))]
	}
	return string(b)
}

// expiresAfter computes the expiry timestamp for a link created at
// createdAt and valid for the given number of hours.
func expiresAfter(createdAt string, hours int) (string, error) {
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return "", err
	}
	if hours <= 0 {
		hours = defaultExpiryHours
	}
	return created.Add(time.Duration(hours) * time.Hour).Format(time.RFC3339), nil
}

// linkExpired reports whether expiresAt lies at or before now. An
// unparseable timestamp counts as expired rather than open-ended.
func linkExpired(expiresAt string, now time.Time) bool {
	expires, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return true
	}
	return !expires.After(now)
}

// markExpired persists the lazily-discovered expiry flag.
func markExpired(ctx context.Context, linkID string) {
	if _, err := db.GeneratedLinksCollection.UpdateOne(ctx, bson.M{"id": linkID},
		bson.M{"$set": bson.M{"is_expired": true}}); err != nil {
		log.Printf("mark link %s expired: %v", linkID, err)
	}
}

type generateLinkRequest struct {
	RequestID   string `json:"request_id"`
	LinkURL     string `json:"link_url"`
	ExpiryHours int    `json:"expiry_hours"`
	Notes       string `json:"notes"`
}

// POST /api/admin/occasions/links — generates the shareable mini-site
// link for a request and marks the request completed.
func GenerateLink(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input generateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.RequestID == "" || input.LinkURL == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Request id and link URL are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var request models.ServiceRequest
	if err := db.ServiceRequestsCollection.FindOne(ctx, bson.M{"id": input.RequestID}).Decode(&request); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Service request not found")
		return
	}

	hours := input.ExpiryHours
	if hours <= 0 {
		hours = defaultExpiryHours
	}
	now := time.Now().UTC().Format(time.RFC3339)
	expiresAt, err := expiresAfter(now, hours)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute expiry")
		return
	}

	link := models.GeneratedLink{
		ID:            uuid.NewString(),
		RequestID:     request.ID,
		ServiceName:   request.ServiceName,
		CustomerName:  request.CustomerName,
		RecipientName: request.RecipientName,
		LinkURL:       input.LinkURL,
		ShortCode:     shortCode(),
		ExpiryHours:   hours,
		CreatedAt:     now,
		ExpiresAt:     expiresAt,
		IsActive:      true,
		CreatedBy:     middleware.UserIDFromContext(r),
		Notes:         input.Notes,
	}
	if _, err := db.GeneratedLinksCollection.InsertOne(ctx, link); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate link")
		return
	}

	db.ServiceRequestsCollection.UpdateOne(ctx, bson.M{"id": request.ID},
		bson.M{"$set": bson.M{
			"generated_link_id": link.ID,
			"status":            models.RequestCompleted,
			"updated_at":        now,
		}})

	utils.RespondWithJSON(w, http.StatusCreated, link)
}

// GET /api/admin/occasions/links?active=true — links whose expiry has
// passed are flagged on the way out.
func GetAllLinks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if r.URL.Query().Get("active") == "true" {
		filter["is_active"] = true
		filter["is_expired"] = false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.GeneratedLinksCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(1000))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	links := []models.GeneratedLink{}
	if err := cur.All(ctx, &links); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode links")
		return
	}

	now := time.Now().UTC()
	for i := range links {
		if !links[i].IsExpired && linkExpired(links[i].ExpiresAt, now) {
			links[i].IsExpired = true
			markExpired(ctx, links[i].ID)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, links)
}

// GET /api/admin/occasions/links/:id
func GetLink(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var link models.GeneratedLink
	if err := db.GeneratedLinksCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&link); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Link not found")
		return
	}

	if !link.IsExpired && linkExpired(link.ExpiresAt, time.Now().UTC()) {
		link.IsExpired = true
		markExpired(ctx, link.ID)
	}
	utils.RespondWithJSON(w, http.StatusOK, link)
}

type updateLinkRequest struct {
	LinkURL     *string `json:"link_url"`
	ExpiryHours *int    `json:"expiry_hours"`
	IsActive    *bool   `json:"is_active"`
	Notes       *string `json:"notes"`
}

// PUT /api/admin/occasions/links/:id — changing the expiry window
// recomputes expires_at from the original creation time and clears the
// expired flag.
func UpdateLink(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var link models.GeneratedLink
	if err := db.GeneratedLinksCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&link); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Link not found")
		return
	}

	update := bson.M{}
	if req.LinkURL != nil && *req.LinkURL != "" {
		update["link_url"] = *req.LinkURL
	}
	if req.ExpiryHours != nil {
		if *req.ExpiryHours <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Expiry hours must be positive")
			return
		}
		expiresAt, err := expiresAfter(link.CreatedAt, *req.ExpiryHours)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute expiry")
			return
		}
		update["expiry_hours"] = *req.ExpiryHours
		update["expires_at"] = expiresAt
		update["is_expired"] = false
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if req.Notes != nil {
		update["notes"] = *req.Notes
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	if _, err := db.GeneratedLinksCollection.UpdateOne(ctx, bson.M{"id": link.ID}, bson.M{"$set": update}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update link")
		return
	}

	var updated models.GeneratedLink
	if err := db.GeneratedLinksCollection.FindOne(ctx, bson.M{"id": link.ID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admin/occasions/links/:id
func DeleteLink(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.GeneratedLinksCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Link not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Link deleted successfully"})
}

// GET /api/occasions/link/:code — public access by short code. Expired
// links answer 410, deactivated ones 403; successful hits bump the view
// counter.
func AccessLink(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var link models.GeneratedLink
	if err := db.GeneratedLinksCollection.FindOne(ctx, bson.M{"short_code": ps.ByName("code")}).Decode(&link); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Link not found")
		return
	}

	now := time.Now().UTC()
	if linkExpired(link.ExpiresAt, now) {
		if !link.IsExpired {
			markExpired(ctx, link.ID)
		}
		utils.RespondWithError(w, http.StatusGone, "This link has expired")
		return
	}
	if !link.IsActive {
		utils.RespondWithError(w, http.StatusForbidden, "This link is no longer active")
		return
	}

	if _, err := db.GeneratedLinksCollection.UpdateOne(ctx, bson.M{"id": link.ID}, bson.M{
		"$inc": bson.M{"views_count": 1},
		"$set": bson.M{"last_viewed_at": now.Format(time.RFC3339)},
	}); err != nil {
		log.Printf("link view count update failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"link_url":       link.LinkURL,
		"service_name":   link.ServiceName,
		"recipient_name": link.RecipientName,
	})
}
