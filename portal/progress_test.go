package portal

import (
	"testing"

	"atelier/models"
)

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name       string
		milestones []models.Milestone
		want       int
	}{
		{"no milestones", nil, 0},
		{"none done", []models.Milestone{{}, {}}, 0},
		{"half done", []models.Milestone{{Completed: true}, {}}, 50},
		{"all done", []models.Milestone{{Completed: true}, {Completed: true}}, 100},
		{"one of three", []models.Milestone{{Completed: true}, {}, {}}, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeProgress(tt.milestones); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}
