package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"atelier/models"
	"atelier/utils"
)

const dateLayout = "2006-01-02"

var (
	ErrInactive    = errors.New("booking system is not active")
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
)

// Availability is the engine's verdict for one (date, time slot) pair.
type Availability struct {
	Available      bool   `json:"available"`
	Reason         string `json:"reason,omitempty"`
	AvailableSpots int    `json:"available_spots,omitempty"`
	MaxBookings    int    `json:"max_bookings,omitempty"`
	MeetingType    string `json:"meeting_type,omitempty"`
}

// AvailableSlot is one row of the range enumeration.
type AvailableSlot struct {
	Date           string `json:"date"`
	TimeSlot       string `json:"time_slot"`
	AvailableSpots int    `json:"available_spots"`
	IsAvailable    bool   `json:"is_available"`
}

// CountFunc reports how many non-cancelled bookings exist for a
// (date, canonical slot key) pair.
type CountFunc func(date, slotKey string) (int64, error)

// normalizeClock canonicalizes "H:MM"/"HH:MM" to zero-padded form.
func normalizeClock(s string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return "", false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

// ResolveSlot matches a requested "HH:MM-HH:MM" string against the
// configured slots by parsed start/end pair rather than raw string
// equality, so minor format drift still resolves. Returns the slot and
// its canonical key, or nil when nothing matches.
func ResolveSlot(setting *models.BookingSetting, requested string) (*models.TimeSlot, string) {
	parts := strings.SplitN(requested, "-", 2)
	if len(parts) != 2 {
		return nil, ""
	}
	start, ok1 := normalizeClock(parts[0])
	end, ok2 := normalizeClock(parts[1])
	if !ok1 || !ok2 {
		return nil, ""
	}
	for i := range setting.TimeSlots {
		slot := &setting.TimeSlots[i]
		cs, okA := normalizeClock(slot.StartTime)
		ce, okB := normalizeClock(slot.EndTime)
		if okA && okB && cs == start && ce == end {
			return slot, slot.Key()
		}
	}
	return nil, ""
}

// SlotCapacity returns a slot's capacity, defaulting to one.
func SlotCapacity(slot *models.TimeSlot) int {
	if slot.MaxBookings < 1 {
		return 1
	}
	return slot.MaxBookings
}

// CheckSlotAvailability evaluates whether a slot on a date can accept a
// booking. The active configuration is injected (nil means the booking
// system is off) and existing bookings are observed only through count,
// so the function is a pure read with no side effects. Failure checks
// run in order; the first one wins.
func CheckSlotAvailability(setting *models.BookingSetting, date, timeSlot string, count CountFunc) (Availability, error) {
	if setting == nil || !setting.IsActive {
		return Availability{Available: false, Reason: "Booking system is not active"}, nil
	}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return Availability{Available: false, Reason: "Invalid date format"}, nil
	}
	dayName := parsed.Weekday().String()

	if !utils.Contains(setting.AvailableDays, dayName) {
		return Availability{Available: false, Reason: fmt.Sprintf("%s is not available", dayName)}, nil
	}

	slot, key := ResolveSlot(setting, timeSlot)
	if slot == nil {
		return Availability{Available: false, Reason: "Time slot not found"}, nil
	}

	existing, err := count(date, key)
	if err != nil {
		return Availability{}, err
	}

	maxBookings := SlotCapacity(slot)
	spots := maxBookings - int(existing)
	if spots <= 0 {
		return Availability{Available: false, Reason: "Slot is fully booked"}, nil
	}

	return Availability{
		Available:      true,
		AvailableSpots: spots,
		MaxBookings:    maxBookings,
		MeetingType:    setting.MeetingType,
	}, nil
}

// EnumerateAvailableSlots walks the given number of consecutive dates
// from startDate and emits one record per configured slot, in
// configured order. Dates whose weekday is not available are skipped
// entirely rather than emitted as zero-capacity rows.
func EnumerateAvailableSlots(setting *models.BookingSetting, startDate string, days int, count CountFunc) ([]AvailableSlot, error) {
	if setting == nil || !setting.IsActive {
		return nil, ErrInactive
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if days <= 0 {
		days = 14
	}

	slots := []AvailableSlot{}
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		dateStr := day.Format(dateLayout)
		if !utils.Contains(setting.AvailableDays, day.Weekday().String()) {
			continue
		}

		for _, slot := range setting.TimeSlots {
			key := slot.Key()
			av, err := CheckSlotAvailability(setting, dateStr, key, count)
			if err != nil {
				return nil, err
			}
			spots := 0
			if av.Available {
				spots = av.AvailableSpots
			}
			slots = append(slots, AvailableSlot{
				Date:           dateStr,
				TimeSlot:       key,
				AvailableSpots: spots,
				IsAvailable:    av.Available,
			})
		}
	}
	return slots, nil
}

// ValidateSetting rejects malformed schedule configurations before
// they are stored.
func ValidateSetting(days []string, slots []models.TimeSlot) error {
	if len(days) == 0 {
		return fmt.Errorf("at least one available day is required")
	}
	for _, d := range days {
		if !validWeekday(d) {
			return fmt.Errorf("invalid weekday name: %s", d)
		}
	}
	if len(slots) == 0 {
		return fmt.Errorf("at least one time slot is required")
	}
	for _, s := range slots {
		start, ok1 := normalizeClock(s.StartTime)
		end, ok2 := normalizeClock(s.EndTime)
		if !ok1 || !ok2 {
			return fmt.Errorf("invalid time slot %s-%s", s.StartTime, s.EndTime)
		}
		if start >= end {
			return fmt.Errorf("slot %s-%s ends before it starts", s.StartTime, s.EndTime)
		}
		if s.MaxBookings < 1 {
			return fmt.Errorf("slot %s-%s must allow at least one booking", s.StartTime, s.EndTime)
		}
	}
	return nil
}

func validWeekday(name string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return true
		}
	}
	return false
}
