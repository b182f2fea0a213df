package scheduler

import (
	"github.com/weekplan/weekplan/internal/constants"
	"github.com/weekplan/weekplan/internal/grid"
	"github.com/weekplan/weekplan/internal/models"
)

// leisureWeight is w_L(s) (§4.4): 1.5 for slots starting at or after 18:00,
// 1.0 otherwise, overridable per slot via Settings.LeisureWeights.
func leisureWeight(settings models.Settings, g grid.Config, s int) float64 {
	if w, ok := settings.LeisureWeights[s]; ok {
		return w
	}
	if g.Hour(s) >= constants.LeisureWeightEveningHour {
		return constants.LeisureWeightEvening
	}
	return constants.LeisureWeightBase
}

// stressMultiplier is w_S(s) (§4.4): 1.2 for slots in the [9,17) workday
// window, 1.0 otherwise, overridable per slot via Settings.StressMultipliers.
func stressMultiplier(settings models.Settings, g grid.Config, s int) float64 {
	if w, ok := settings.StressMultipliers[s]; ok {
		return w
	}
	hour := g.Hour(s)
	if hour >= constants.StressMultiplierWorkdayFrom && hour < constants.StressMultiplierWorkdayTo {
		return constants.StressMultiplierWorkday
	}
	return constants.StressMultiplierBase
}

// late is the deadline-proximity multiplier's input (§4.4, glossary): the
// fraction of a task's feasible start window already elapsed by starting at
// s, clamped to [0,1]. latestFeasibleStart = deadlineSlot - durationSlots + 1.
func late(s, deadlineSlot, durationSlots int) float64 {
	latestFeasibleStart := deadlineSlot - durationSlots + 1
	if latestFeasibleStart < 1 {
		latestFeasibleStart = 1
	}
	v := float64(s) / float64(latestFeasibleStart)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
