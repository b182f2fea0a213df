package scheduler

import (
	"fmt"

	"github.com/weekplan/weekplan/internal/constants"
	"github.com/weekplan/weekplan/internal/grid"
	"github.com/weekplan/weekplan/internal/milp"
	"github.com/weekplan/weekplan/internal/models"
)

// builtModel bundles the MILP with the index bookkeeping the Solver Driver
// needs to read a solution back into schedule entries (§4.4, §4.5).
type builtModel struct {
	model    *milp.Model
	grid     grid.Config
	settings models.Settings
	variant  constants.Variant
	tasks    []models.EligibleTask

	// feasibleStarts[i] holds every start slot admitted for task i, the row
	// the driver scans for the unique value exceeding 0.5.
	feasibleStarts [][]int
	xIndex         map[[2]int]int
	lIndex         []int
	yIndex         []int // nil unless the variant uses contiguity
	zIndex         []int // nil unless the variant uses contiguity
	blocked        map[int]bool
}

// buildModel is the Model Builder (§4.4): a pure function of
// (grid, eligible tasks, blocked slots, settings, partition) that emits
// decision variables, constraints, and an objective.
func buildModel(tasks []models.EligibleTask, commitments []models.Commitment, settings models.Settings, g grid.Config, part grid.Partition) (*builtModel, error) {
	variant := resolveVariant(settings.Variant)
	blocked := flattenCommitments(commitments, g)

	m := milp.NewModel(true)
	bm := &builtModel{
		model:          m,
		grid:           g,
		settings:       settings,
		variant:        variant,
		tasks:          tasks,
		feasibleStarts: make([][]int, len(tasks)),
		xIndex:         make(map[[2]int]int),
		lIndex:         make([]int, g.TotalSlots),
		blocked:        blocked,
	}

	occ := make([]map[int]float64, g.TotalSlots) // per-slot occupation expression, var index -> coeff
	for t := range occ {
		occ[t] = make(map[int]float64)
	}

	for i, task := range tasks {
		lastStart := g.TotalSlots - task.DurationSlots
		for s := 0; s <= lastStart; s++ {
			if s+task.DurationSlots-1 > task.DeadlineSlot {
				continue
			}
			if task.Preference != constants.PreferenceAny && !part.IsAllowed(task.Preference, s) {
				continue
			}
			if intervalBlocked(blocked, s, task.DurationSlots) {
				continue
			}

			idx := m.AddVariable(milp.Variable{
				Name:       fmt.Sprintf("x_%s_%d", task.ID, s),
				Kind:       milp.Binary,
				LowerBound: 0,
				UpperBound: 1,
			})
			bm.xIndex[[2]int{i, s}] = idx
			bm.feasibleStarts[i] = append(bm.feasibleStarts[i], s)

			for t := s; t < s+task.DurationSlots; t++ {
				occ[t][idx] = 1
			}
		}

		// Mandatory assignment (constraint 1). An empty coefficient map with
		// RHS 1 is a legitimate 0=1 row: a task with no feasible start makes
		// the whole model infeasible, which is the intended outcome.
		coeffs := make(map[int]float64, len(bm.feasibleStarts[i]))
		for _, s := range bm.feasibleStarts[i] {
			coeffs[bm.xIndex[[2]int{i, s}]] = 1
		}
		m.AddConstraint(milp.Constraint{
			Name:     fmt.Sprintf("mandatory_%s", task.ID),
			Coeffs:   coeffs,
			Relation: milp.EQ,
			RHS:      1,
		})
	}

	addHardTaskCap(m, tasks, bm, settings, g)

	// No-overlap (constraint 4): occ[t] <= 1 for every slot.
	for t := 0; t < g.TotalSlots; t++ {
		if len(occ[t]) == 0 {
			continue
		}
		m.AddConstraint(milp.Constraint{
			Name:     fmt.Sprintf("no_overlap_%d", t),
			Coeffs:   cloneCoeffs(occ[t]),
			Relation: milp.LE,
			RHS:      1,
		})
	}

	contiguity := usesContiguity(variant)
	if contiguity {
		bm.yIndex = make([]int, g.TotalSlots)
		bm.zIndex = make([]int, g.TotalSlots)
	}

	for s := 0; s < g.TotalSlots; s++ {
		isBlocked := blocked[s]

		lUB := 15.0
		if isBlocked {
			lUB = 0
		}
		lIdx := m.AddVariable(milp.Variable{Name: fmt.Sprintf("l_%d", s), Kind: milp.Continuous, LowerBound: 0, UpperBound: lUB})
		bm.lIndex[s] = lIdx

		if contiguity {
			yUB := 1.0
			if isBlocked {
				yUB = 0
			}
			yIdx := m.AddVariable(milp.Variable{Name: fmt.Sprintf("y_%d", s), Kind: milp.Binary, LowerBound: 0, UpperBound: yUB})
			bm.yIndex[s] = yIdx

			if !isBlocked {
				// L[s] = 15*Y[s]
				m.AddConstraint(milp.Constraint{
					Name:     fmt.Sprintf("leisure_eq_%d", s),
					Coeffs:   map[int]float64{lIdx: 1, yIdx: -15},
					Relation: milp.EQ,
					RHS:      0,
				})
				// occ[s] + Y[s] <= 1
				occAndY := cloneCoeffs(occ[s])
				occAndY[yIdx] = 1
				m.AddConstraint(milp.Constraint{
					Name:     fmt.Sprintf("leisure_occ_%d", s),
					Coeffs:   occAndY,
					Relation: milp.LE,
					RHS:      1,
				})
			}
		} else if !isBlocked {
			// L[s] <= 15*(1 - occ[s]) == L[s] + 15*occ[s] <= 15
			coeffs := cloneCoeffsScaled(occ[s], 15)
			coeffs[lIdx] = 1
			m.AddConstraint(milp.Constraint{
				Name:     fmt.Sprintf("leisure_le_%d", s),
				Coeffs:   coeffs,
				Relation: milp.LE,
				RHS:      15,
			})
		}
	}

	if contiguity {
		for s := 0; s < g.TotalSlots-1; s++ {
			zIdx := m.AddVariable(milp.Variable{Name: fmt.Sprintf("z_%d", s), Kind: milp.Binary, LowerBound: 0, UpperBound: 1})
			bm.zIndex[s] = zIdx
			yS, yS1 := bm.yIndex[s], bm.yIndex[s+1]

			m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("contig_a_%d", s), Coeffs: map[int]float64{zIdx: 1, yS: -1}, Relation: milp.LE, RHS: 0})
			m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("contig_b_%d", s), Coeffs: map[int]float64{zIdx: 1, yS1: -1}, Relation: milp.LE, RHS: 0})
			m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("contig_c_%d", s), Coeffs: map[int]float64{zIdx: 1, yS: -1, yS1: -1}, Relation: milp.GE, RHS: -1})
		}
	}

	if settings.DailyLimitSlots != nil {
		addDailyLimit(m, tasks, bm, *settings.DailyLimitSlots, g)
	}

	addObjective(m, tasks, bm, settings, g)

	return bm, nil
}

func intervalBlocked(blocked map[int]bool, start, durationSlots int) bool {
	for t := start; t < start+durationSlots; t++ {
		if blocked[t] {
			return true
		}
	}
	return false
}

func cloneCoeffs(src map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneCoeffsScaled(src map[int]float64, factor float64) map[int]float64 {
	out := make(map[int]float64, len(src))
	for k, v := range src {
		out[k] = v * factor
	}
	return out
}

// addHardTaskCap implements constraint 2: at most one task whose difficulty
// meets hard_task_threshold may start per day. Omitted entirely when no
// eligible task clears the threshold.
func addHardTaskCap(m *milp.Model, tasks []models.EligibleTask, bm *builtModel, settings models.Settings, g grid.Config) {
	perDay := make([]map[int]float64, g.TotalDays)
	for d := range perDay {
		perDay[d] = make(map[int]float64)
	}
	any := false
	for i, task := range tasks {
		if task.Difficulty < settings.HardTaskThreshold {
			continue
		}
		for _, s := range bm.feasibleStarts[i] {
			any = true
			d := g.Day(s)
			perDay[d][bm.xIndex[[2]int{i, s}]] = 1
		}
	}
	if !any {
		return
	}
	for d, coeffs := range perDay {
		if len(coeffs) == 0 {
			continue
		}
		m.AddConstraint(milp.Constraint{
			Name:     fmt.Sprintf("hard_task_cap_day_%d", d),
			Coeffs:   coeffs,
			Relation: milp.LE,
			RHS:      1,
		})
	}
}

// addDailyLimit implements the optional constraint 8: each day's total
// occupied slot-count (weighted by how many of a task's slots fall in that
// day) may not exceed dailyLimitSlots.
func addDailyLimit(m *milp.Model, tasks []models.EligibleTask, bm *builtModel, dailyLimitSlots int, g grid.Config) {
	perDay := make([]map[int]float64, g.TotalDays)
	for d := range perDay {
		perDay[d] = make(map[int]float64)
	}
	for i, task := range tasks {
		for _, s := range bm.feasibleStarts[i] {
			idx := bm.xIndex[[2]int{i, s}]
			dayCounts := make(map[int]int)
			for t := s; t < s+task.DurationSlots; t++ {
				dayCounts[g.Day(t)]++
			}
			for d, count := range dayCounts {
				perDay[d][idx] += float64(count)
			}
		}
	}
	for d, coeffs := range perDay {
		if len(coeffs) == 0 {
			continue
		}
		m.AddConstraint(milp.Constraint{
			Name:     fmt.Sprintf("daily_limit_day_%d", d),
			Coeffs:   coeffs,
			Relation: milp.LE,
			RHS:      float64(dailyLimitSlots),
		})
	}
}

// addObjective assembles the leisure term, the stress term (every variant;
// §4.4 marks only contiguity as variant-gated), and the (variant-gated)
// contiguity term.
func addObjective(m *milp.Model, tasks []models.EligibleTask, bm *builtModel, settings models.Settings, g grid.Config) {
	for s := 0; s < g.TotalSlots; s++ {
		w := leisureWeight(settings, g, s)
		m.SetObjective(bm.lIndex[s], settings.Alpha*w)
	}

	deadlineProximity := usesDeadlineProximity(bm.variant)
	for i, task := range tasks {
		for _, s := range bm.feasibleStarts[i] {
			idx := bm.xIndex[[2]int{i, s}]
			wS := stressMultiplier(settings, g, s)
			penalty := 1.0
			if deadlineProximity {
				penalty = 1 + settings.Gamma*late(s, task.DeadlineSlot, task.DurationSlots)
			}
			coeff := -settings.Beta * float64(task.Priority) * float64(task.Difficulty) * wS * penalty
			m.SetObjective(idx, m.Objective[idx]+coeff)
		}
	}

	if usesContiguity(bm.variant) {
		for s := 0; s < g.TotalSlots-1; s++ {
			m.SetObjective(bm.zIndex[s], settings.GammaContiguity)
		}
	}
}
