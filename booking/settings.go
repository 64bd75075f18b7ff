package booking

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
	"go.mongodb.org/mongo-driver/mongo"
)

// GET /api/booking-settings — public view of the active configuration.
// Mirrors a disabled system as a null body rather than an error.
func GetActiveSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	setting, err := activeSetting(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, setting)
}

// GET /api/admin/booking-settings
func GetSettingsAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var setting models.BookingSetting
	err := db.BookingSettingsCollection.FindOne(ctx, bson.M{}).Decode(&setting)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, setting)
}

type settingsRequest struct {
	AvailableDays []string          `json:"available_days"`
	TimeSlots     []models.TimeSlot `json:"time_slots"`
	MeetingType   string            `json:"meeting_type"`
	Timezone      string            `json:"timezone"`
	IsActive      *bool             `json:"is_active"`
}

// POST /api/admin/booking-settings — create or replace the singleton
// configuration.
func UpsertSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := ValidateSetting(req.AvailableDays, req.TimeSlots); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	tz := req.Timezone
	if tz == "" {
		tz = "Asia/Kolkata"
	}

	fields := bson.M{
		"available_days": req.AvailableDays,
		"time_slots":     req.TimeSlots,
		"meeting_type":   req.MeetingType,
		"timezone":       tz,
		"is_active":      isActive,
		"updated_at":     now,
	}

	var existing models.BookingSetting
	err := db.BookingSettingsCollection.FindOne(ctx, bson.M{}).Decode(&existing)
	if err == nil {
		if _, err := db.BookingSettingsCollection.UpdateOne(ctx, bson.M{"id": existing.ID}, bson.M{"$set": fields}); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update settings")
			return
		}
		var updated models.BookingSetting
		db.BookingSettingsCollection.FindOne(ctx, bson.M{"id": existing.ID}).Decode(&updated)
		utils.RespondWithJSON(w, http.StatusOK, updated)
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	setting := models.BookingSetting{
		ID:            uuid.NewString(),
		AvailableDays: req.AvailableDays,
		TimeSlots:     req.TimeSlots,
		MeetingType:   req.MeetingType,
		Timezone:      tz,
		IsActive:      isActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := db.BookingSettingsCollection.InsertOne(ctx, setting); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create settings")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, setting)
}

// PUT /api/admin/booking-settings/:id — partial update.
func UpdateSettings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.BookingSetting
	err := db.BookingSettingsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&existing)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Settings not found")
		return
	}

	update := bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)}
	days := existing.AvailableDays
	slots := existing.TimeSlots
	if req.AvailableDays != nil {
		days = req.AvailableDays
		update["available_days"] = req.AvailableDays
	}
	if req.TimeSlots != nil {
		slots = req.TimeSlots
		update["time_slots"] = req.TimeSlots
	}
	if err := ValidateSetting(days, slots); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.MeetingType != "" {
		update["meeting_type"] = req.MeetingType
	}
	if req.Timezone != "" {
		update["timezone"] = req.Timezone
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}

	if _, err := db.BookingSettingsCollection.UpdateOne(ctx, bson.M{"id": existing.ID}, bson.M{"$set": update}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	var updated models.BookingSetting
	if err := db.BookingSettingsCollection.FindOne(ctx, bson.M{"id": existing.ID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admin/booking-settings/:id
func DeleteSettings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.BookingSettingsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Settings not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Settings deleted successfully"})
}
