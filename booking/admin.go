package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"atelier/db"
	"atelier/models"
	"atelier/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/admin/bookings/all?status=&date=
func GetAllBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}
	if date := r.URL.Query().Get("date"); date != "" {
		filter["preferred_date"] = date
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.BookingsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(1000))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

// GET /api/admin/bookings/upcoming — confirmed bookings from today on.
func GetUpcomingBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	today := time.Now().UTC().Format(dateLayout)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.BookingsCollection.Find(ctx, bson.M{
		"status":         models.BookingConfirmed,
		"preferred_date": bson.M{"$gte": today},
	}, options.Find().SetSort(bson.M{"preferred_date": 1}).SetLimit(1000))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

// GET /api/admin/bookings/booking/:id
func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&booking)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, booking)
}

type updateBookingRequest struct {
	Status      *string `json:"status"`
	MeetingLink *string `json:"meeting_link"`
	AdminNotes  *string `json:"admin_notes"`
}

// seatDelta reports how a status transition moves the capacity claim:
// -1 when a seat-holding booking is cancelled, +1 when a cancelled one
// comes back to life, 0 otherwise. Pending and confirmed both hold a
// seat.
func seatDelta(oldStatus, newStatus string) int {
	held := oldStatus != models.BookingCancelled
	holds := newStatus != models.BookingCancelled
	switch {
	case held && !holds:
		return -1
	case !held && holds:
		return 1
	}
	return 0
}

// PUT /api/admin/bookings/booking/:id — status transitions stamp confirmed_at /
// cancelled_at exactly once; cancellation releases the capacity claim.
func UpdateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&booking)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	update := bson.M{"updated_at": now}

	if req.Status != nil {
		switch *req.Status {
		case models.BookingPending, models.BookingConfirmed, models.BookingCancelled:
		default:
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		update["status"] = *req.Status

		if *req.Status == models.BookingConfirmed && booking.ConfirmedAt == "" {
			update["confirmed_at"] = now
		}
		if *req.Status == models.BookingCancelled && booking.CancelledAt == "" {
			update["cancelled_at"] = now
		}

		switch seatDelta(booking.Status, *req.Status) {
		case -1:
			ReleaseSeat(ctx, booking.PreferredDate, booking.PreferredTimeSlot)
		case 1:
			// Reactivation takes the seat back, and can lose to
			// bookings made since the cancellation.
			max := 1
			setting, err := activeSetting(ctx)
			if err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
				return
			}
			if setting != nil {
				if slot, _ := ResolveSlot(setting, booking.PreferredTimeSlot); slot != nil {
					max = SlotCapacity(slot)
				}
			}
			claimed, err := ClaimSeat(ctx, booking.PreferredDate, booking.PreferredTimeSlot, max)
			if err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
				return
			}
			if !claimed {
				utils.RespondWithError(w, http.StatusBadRequest, "Slot is fully booked")
				return
			}
		}
	}
	if req.MeetingLink != nil {
		update["meeting_link"] = *req.MeetingLink
	}
	if req.AdminNotes != nil {
		update["admin_notes"] = *req.AdminNotes
	}

	_, err = db.BookingsCollection.UpdateOne(ctx, bson.M{"id": booking.ID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	var updated models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"id": booking.ID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admin/bookings/booking/:id
func DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if _, err := db.BookingsCollection.DeleteOne(ctx, bson.M{"id": booking.ID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete booking")
		return
	}
	if booking.Status != models.BookingCancelled {
		ReleaseSeat(ctx, booking.PreferredDate, booking.PreferredTimeSlot)
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Booking deleted successfully"})
}

// GET /api/admin/bookings/stats
func GetBookingStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	counts := map[string]int64{}
	for _, status := range []string{models.BookingPending, models.BookingConfirmed, models.BookingCancelled} {
		n, err := db.BookingsCollection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		counts[status] = n
	}

	today := time.Now().UTC().Format(dateLayout)
	upcoming, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"status":         models.BookingConfirmed,
		"preferred_date": bson.M{"$gte": today},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"total":     counts[models.BookingPending] + counts[models.BookingConfirmed] + counts[models.BookingCancelled],
		"pending":   counts[models.BookingPending],
		"confirmed": counts[models.BookingConfirmed],
		"cancelled": counts[models.BookingCancelled],
		"upcoming":  upcoming,
	})
}
