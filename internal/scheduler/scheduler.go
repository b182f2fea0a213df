// Package scheduler implements the Model Builder and Solver Driver (§4.4,
// §4.5): it turns eligible tasks, commitments, and settings into a MILP,
// solves it under a wall-clock time limit, and reconstructs the result.
package scheduler

import (
	"context"

	"github.com/weekplan/weekplan/internal/models"
)

// Scheduler is the CLI-facing entry point: one Solve call per invocation of
// `weekplan schedule`, with no state retained between calls (§5).
type Scheduler struct {
	driver *Driver
}

// New returns a ready-to-use Scheduler.
func New() *Scheduler {
	return &Scheduler{driver: NewDriver()}
}

// Schedule runs one full solve over the given tasks, commitments, and
// settings and returns the resulting SolveResult.
func (s *Scheduler) Schedule(ctx context.Context, tasks []models.Task, commitments []models.Commitment, settings models.Settings) (models.SolveResult, error) {
	return s.driver.Solve(ctx, tasks, commitments, settings)
}
