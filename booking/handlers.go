package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"atelier/db"
	"atelier/models"
	"atelier/mq"
	"atelier/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// activeSetting loads the authoritative configuration, or nil when the
// booking system is off.
func activeSetting(ctx context.Context) (*models.BookingSetting, error) {
	var setting models.BookingSetting
	err := db.BookingSettingsCollection.FindOne(ctx, bson.M{"is_active": true}).Decode(&setting)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// countBookings counts pending+confirmed bookings for a (date, slot) pair.
func countBookings(ctx context.Context) CountFunc {
	return func(date, slotKey string) (int64, error) {
		return db.BookingsCollection.CountDocuments(ctx, bson.M{
			"preferred_date":      date,
			"preferred_time_slot": slotKey,
			"status":              bson.M{"$in": []string{models.BookingPending, models.BookingConfirmed}},
		})
	}
}

// GET /api/bookings/available-slots?start_date=YYYY-MM-DD&days=N
func GetAvailableSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	setting, err := activeSetting(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if setting == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking system is not active")
		return
	}

	days := 14
	if d := r.URL.Query().Get("days"); d != "" {
		if n, err := strconv.Atoi(d); err == nil && n > 0 {
			days = n
		}
	}

	startDate := r.URL.Query().Get("start_date")
	if startDate == "" {
		startDate = time.Now().UTC().Format(dateLayout)
	}

	slots, err := EnumerateAvailableSlots(setting, startDate, days, countBookings(ctx))
	if errors.Is(err, ErrInvalidDate) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}
	if err != nil {
		// Anything else came out of the booking count lookup.
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, slots)
}

// GET /api/bookings/check-availability?date=YYYY-MM-DD&time_slot=HH:MM-HH:MM
func CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	setting, err := activeSetting(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	av, err := CheckSlotAvailability(setting, r.URL.Query().Get("date"), r.URL.Query().Get("time_slot"), countBookings(ctx))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, av)
}

type createBookingRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	PreferredDate     string `json:"preferred_date"`
	PreferredTimeSlot string `json:"preferred_time_slot"`
	Message           string `json:"message"`
}

// POST /api/bookings — public booking creation with an atomic capacity
// claim between the availability check and the insert.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.PreferredDate == "" || req.PreferredTimeSlot == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !utils.ValidEmail(req.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	setting, err := activeSetting(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	av, err := CheckSlotAvailability(setting, req.PreferredDate, req.PreferredTimeSlot, countBookings(ctx))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !av.Available {
		utils.RespondWithError(w, http.StatusBadRequest, av.Reason)
		return
	}

	slot, slotKey := ResolveSlot(setting, req.PreferredTimeSlot)
	claimed, err := ClaimSeat(ctx, req.PreferredDate, slotKey, SlotCapacity(slot))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !claimed {
		utils.RespondWithError(w, http.StatusBadRequest, "Slot is fully booked")
		return
	}

	meetingType := setting.MeetingType
	if meetingType == "" {
		meetingType = "Google Meet"
	}

	now := time.Now().UTC().Format(time.RFC3339)
	record := models.Booking{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		PreferredDate:     req.PreferredDate,
		PreferredTimeSlot: slotKey,
		Message:           req.Message,
		Status:            models.BookingPending,
		MeetingType:       meetingType,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, record); err != nil {
		ReleaseSeat(ctx, req.PreferredDate, slotKey)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	// Best-effort operator notification; never fails the booking.
	mq.Emit(r.Context(), mq.Event{
		Kind:    "booking",
		Subject: "New booking request",
		Fields: map[string]string{
			"name":  record.Name,
			"email": record.Email,
			"date":  record.PreferredDate,
			"slot":  record.PreferredTimeSlot,
		},
	})

	utils.RespondWithJSON(w, http.StatusCreated, record)
}
