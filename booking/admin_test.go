package booking

import (
	"testing"

	"atelier/models"
)

func TestSeatDelta(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{"pending to confirmed keeps the seat", models.BookingPending, models.BookingConfirmed, 0},
		{"confirmed to pending keeps the seat", models.BookingConfirmed, models.BookingPending, 0},
		{"pending to cancelled releases", models.BookingPending, models.BookingCancelled, -1},
		{"confirmed to cancelled releases", models.BookingConfirmed, models.BookingCancelled, -1},
		{"cancelled to pending re-claims", models.BookingCancelled, models.BookingPending, 1},
		{"cancelled to confirmed re-claims", models.BookingCancelled, models.BookingConfirmed, 1},
		{"cancelled stays cancelled", models.BookingCancelled, models.BookingCancelled, 0},
		{"pending stays pending", models.BookingPending, models.BookingPending, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := seatDelta(tt.from, tt.to); got != tt.want {
				t.Errorf("seatDelta(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

// The release and re-claim legs must mirror each other, so a round trip
// through cancelled sums to zero and the claim counter cannot drift.
func TestSeatDeltaRoundTripIsNeutral(t *testing.T) {
	for _, active := range []string{models.BookingPending, models.BookingConfirmed} {
		out := seatDelta(active, models.BookingCancelled)
		back := seatDelta(models.BookingCancelled, active)
		if out+back != 0 {
			t.Errorf("%s round trip drifts by %d", active, out+back)
		}
	}
}
