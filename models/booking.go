package models

// TimeSlot is a recurring daily window with a per-day capacity.
type TimeSlot struct {
	StartTime   string `json:"start_time" bson:"start_time"` // "HH:MM", 24-hour
	EndTime     string `json:"end_time" bson:"end_time"`
	MaxBookings int    `json:"max_bookings" bson:"max_bookings"`
}

// Key returns the canonical "start-end" string used on bookings.
func (s TimeSlot) Key() string {
	return s.StartTime + "-" + s.EndTime
}

// BookingSetting is the weekly schedule configuration. Only one record
// with is_active=true is authoritative at a time.
type BookingSetting struct {
	ID            string     `json:"id" bson:"id"`
	AvailableDays []string   `json:"available_days" bson:"available_days"` // weekday names
	TimeSlots     []TimeSlot `json:"time_slots" bson:"time_slots"`
	MeetingType   string     `json:"meeting_type" bson:"meeting_type"` // "Google Meet" or "Phone Call"
	Timezone      string     `json:"timezone" bson:"timezone"`
	IsActive      bool       `json:"is_active" bson:"is_active"`
	CreatedAt     string     `json:"created_at" bson:"created_at"`
	UpdatedAt     string     `json:"updated_at" bson:"updated_at"`
}

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID                string `json:"id" bson:"id"`
	Name              string `json:"name" bson:"name"`
	Email             string `json:"email" bson:"email"`
	Phone             string `json:"phone" bson:"phone"`
	PreferredDate     string `json:"preferred_date" bson:"preferred_date"`           // "YYYY-MM-DD"
	PreferredTimeSlot string `json:"preferred_time_slot" bson:"preferred_time_slot"` // "HH:MM-HH:MM"
	Message           string `json:"message,omitempty" bson:"message,omitempty"`
	Status            string `json:"status" bson:"status"`
	MeetingType       string `json:"meeting_type" bson:"meeting_type"`
	MeetingLink       string `json:"meeting_link,omitempty" bson:"meeting_link,omitempty"`
	AdminNotes        string `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	CreatedAt         string `json:"created_at" bson:"created_at"`
	UpdatedAt         string `json:"updated_at" bson:"updated_at"`
	ConfirmedAt       string `json:"confirmed_at,omitempty" bson:"confirmed_at,omitempty"`
	CancelledAt       string `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
}

// SlotClaim is the per-(date, slot) capacity counter. Creation claims a
// seat with a single guarded update; cancellation releases it.
type SlotClaim struct {
	Date     string `json:"date" bson:"date"`
	TimeSlot string `json:"time_slot" bson:"time_slot"`
	Count    int    `json:"count" bson:"count"`
	Max      int    `json:"max" bson:"max"`
}
