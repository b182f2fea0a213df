package scheduler

import (
	"time"

	"github.com/weekplan/weekplan/internal/grid"
	"github.com/weekplan/weekplan/internal/models"
)

// flattenCommitments converts a list of commitments into the blocked slot
// set C (§3, §8 property 13). A commitment [t1, t2) blocks every slot
// containing a point in [t1, t2 - 1ns]; the slot starting exactly at t2 is
// not blocked, so back-to-back commitments and a task starting the instant
// a commitment ends do not collide.
func flattenCommitments(commitments []models.Commitment, g grid.Config) map[int]bool {
	blocked := make(map[int]bool)
	for _, c := range commitments {
		if !c.End.After(c.Start) {
			continue // malformed interval, dropped per §7
		}
		startSlot := g.DateTimeToSlot(c.Start)
		endSlot := g.DateTimeToSlot(c.End.Add(-time.Nanosecond))
		if endSlot < startSlot {
			continue
		}
		for s := startSlot; s <= endSlot; s++ {
			blocked[s] = true
		}
	}
	return blocked
}
