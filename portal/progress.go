package portal

import "atelier/models"

// ComputeProgress derives the percent-complete figure shown in the
// portal from milestone state. No milestones means 0.
func ComputeProgress(milestones []models.Milestone) int {
	if len(milestones) == 0 {
		return 0
	}
	done := 0
	for _, m := range milestones {
		if m.Completed {
			done++
		}
	}
	return done * 100 / len(milestones)
}
