package booking

import (
	"errors"
	"testing"

	"atelier/models"
)

// 2025-01-06 is a Monday, 2025-01-05 a Sunday.
const monday = "2025-01-06"
const sunday = "2025-01-05"

func testSetting() *models.BookingSetting {
	return &models.BookingSetting{
		ID:            "cfg1",
		AvailableDays: []string{"Monday", "Wednesday"},
		TimeSlots: []models.TimeSlot{
			{StartTime: "10:00", EndTime: "11:00", MaxBookings: 2},
			{StartTime: "14:00", EndTime: "15:00", MaxBookings: 1},
		},
		MeetingType: "Google Meet",
		IsActive:    true,
	}
}

func fixedCount(n int64) CountFunc {
	return func(date, slotKey string) (int64, error) { return n, nil }
}

func TestCheckSlotAvailabilityFailureOrder(t *testing.T) {
	tests := []struct {
		name     string
		setting  *models.BookingSetting
		date     string
		slot     string
		existing int64
		reason   string
	}{
		{"no active setting", nil, monday, "10:00-11:00", 0, "Booking system is not active"},
		{"inactive setting", &models.BookingSetting{IsActive: false}, monday, "10:00-11:00", 0, "Booking system is not active"},
		{"bad date", testSetting(), "06-01-2025", "10:00-11:00", 0, "Invalid date format"},
		{"unavailable weekday", testSetting(), sunday, "10:00-11:00", 0, "Sunday is not available"},
		{"unknown slot", testSetting(), monday, "09:00-10:00", 0, "Time slot not found"},
		{"fully booked", testSetting(), monday, "10:00-11:00", 2, "Slot is fully booked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av, err := CheckSlotAvailability(tt.setting, tt.date, tt.slot, fixedCount(tt.existing))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if av.Available {
				t.Fatalf("expected unavailable, got %+v", av)
			}
			if av.Reason != tt.reason {
				t.Fatalf("expected reason %q, got %q", tt.reason, av.Reason)
			}
		})
	}
}

func TestCheckSlotAvailabilitySuccess(t *testing.T) {
	av, err := CheckSlotAvailability(testSetting(), monday, "10:00-11:00", fixedCount(1))
	if err != nil {
		t.Fatal(err)
	}
	if !av.Available {
		t.Fatalf("expected available, got reason %q", av.Reason)
	}
	if av.AvailableSpots != 1 || av.MaxBookings != 2 {
		t.Fatalf("expected 1 of 2 spots, got %d of %d", av.AvailableSpots, av.MaxBookings)
	}
	if av.MeetingType != "Google Meet" {
		t.Fatalf("unexpected meeting type %q", av.MeetingType)
	}
}

func TestCheckSlotAvailabilityIsPure(t *testing.T) {
	setting := testSetting()
	first, _ := CheckSlotAvailability(setting, monday, "10:00-11:00", fixedCount(1))
	second, _ := CheckSlotAvailability(setting, monday, "10:00-11:00", fixedCount(1))
	if first != second {
		t.Fatalf("two identical calls disagreed: %+v vs %+v", first, second)
	}
}

func TestCancellationFreesSpot(t *testing.T) {
	setting := testSetting()
	before, _ := CheckSlotAvailability(setting, monday, "14:00-15:00", fixedCount(1))
	if before.Available {
		t.Fatal("slot should be full at capacity 1 with 1 booking")
	}
	// A cancellation drops the pending/confirmed count.
	after, _ := CheckSlotAvailability(setting, monday, "14:00-15:00", fixedCount(0))
	if !after.Available || after.AvailableSpots != 1 {
		t.Fatalf("expected one freed spot, got %+v", after)
	}
}

func TestResolveSlotToleratesFormatDrift(t *testing.T) {
	setting := testSetting()
	for _, requested := range []string{"10:00-11:00", "10:00 - 11:00", "10:0-11:0"} {
		slot, key := ResolveSlot(setting, requested)
		if slot == nil {
			t.Fatalf("%q did not resolve", requested)
		}
		if key != "10:00-11:00" {
			t.Fatalf("%q resolved to key %q", requested, key)
		}
	}
	if slot, _ := ResolveSlot(setting, "10:00"); slot != nil {
		t.Fatal("missing end time should not resolve")
	}
	if slot, _ := ResolveSlot(setting, "25:00-26:00"); slot != nil {
		t.Fatal("out-of-range clock should not resolve")
	}
}

func TestEnumerateSkipsUnavailableDays(t *testing.T) {
	setting := testSetting()
	// Week of Mon 2025-01-06: only Monday and Wednesday qualify.
	slots, err := EnumerateAvailableSlots(setting, monday, 7, fixedCount(0))
	if err != nil {
		t.Fatal(err)
	}
	// 2 qualifying dates x 2 slots each
	if len(slots) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(slots))
	}
	wantDates := []string{"2025-01-06", "2025-01-06", "2025-01-08", "2025-01-08"}
	wantSlots := []string{"10:00-11:00", "14:00-15:00", "10:00-11:00", "14:00-15:00"}
	for i, row := range slots {
		if row.Date != wantDates[i] || row.TimeSlot != wantSlots[i] {
			t.Fatalf("row %d = %s %s, want %s %s", i, row.Date, row.TimeSlot, wantDates[i], wantSlots[i])
		}
		if !row.IsAvailable {
			t.Fatalf("row %d unexpectedly unavailable", i)
		}
	}
}

func TestEnumerateMarksFullSlots(t *testing.T) {
	setting := testSetting()
	full := func(date, slotKey string) (int64, error) {
		if slotKey == "14:00-15:00" {
			return 1, nil
		}
		return 0, nil
	}
	slots, err := EnumerateAvailableSlots(setting, monday, 1, full)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(slots))
	}
	if !slots[0].IsAvailable || slots[0].AvailableSpots != 2 {
		t.Fatalf("morning slot wrong: %+v", slots[0])
	}
	if slots[1].IsAvailable || slots[1].AvailableSpots != 0 {
		t.Fatalf("full slot should be emitted with zero spots: %+v", slots[1])
	}
}

func TestEnumerateErrors(t *testing.T) {
	if _, err := EnumerateAvailableSlots(nil, monday, 7, fixedCount(0)); !errors.Is(err, ErrInactive) {
		t.Fatalf("expected ErrInactive without an active setting, got %v", err)
	}
	if _, err := EnumerateAvailableSlots(testSetting(), "garbage", 7, fixedCount(0)); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for bad start date, got %v", err)
	}
}

func TestEnumerateKeepsCountErrorsDistinct(t *testing.T) {
	countErr := errors.New("connection reset")
	failing := func(date, slotKey string) (int64, error) { return 0, countErr }

	_, err := EnumerateAvailableSlots(testSetting(), monday, 1, failing)
	if !errors.Is(err, countErr) {
		t.Fatalf("expected the count error back, got %v", err)
	}
	if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInactive) {
		t.Fatalf("a storage failure must not look like a client error: %v", err)
	}
}

func TestValidateSetting(t *testing.T) {
	good := []models.TimeSlot{{StartTime: "10:00", EndTime: "11:00", MaxBookings: 1}}
	if err := ValidateSetting([]string{"Monday"}, good); err != nil {
		t.Fatalf("valid setting rejected: %v", err)
	}

	cases := []struct {
		name  string
		days  []string
		slots []models.TimeSlot
	}{
		{"no days", nil, good},
		{"bad weekday", []string{"Funday"}, good},
		{"no slots", []string{"Monday"}, nil},
		{"bad clock", []string{"Monday"}, []models.TimeSlot{{StartTime: "ten", EndTime: "11:00", MaxBookings: 1}}},
		{"inverted range", []string{"Monday"}, []models.TimeSlot{{StartTime: "12:00", EndTime: "11:00", MaxBookings: 1}}},
		{"zero capacity", []string{"Monday"}, []models.TimeSlot{{StartTime: "10:00", EndTime: "11:00", MaxBookings: 0}}},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateSetting(tt.days, tt.slots); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSlotCapacityDefaultsToOne(t *testing.T) {
	if got := SlotCapacity(&models.TimeSlot{MaxBookings: 0}); got != 1 {
		t.Fatalf("expected default capacity 1, got %d", got)
	}
	if got := SlotCapacity(&models.TimeSlot{MaxBookings: 3}); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}
