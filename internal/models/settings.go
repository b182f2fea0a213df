package models

import "github.com/weekplan/weekplan/internal/constants"

// Settings is the persisted, request-overridable configuration for one solve
// (§3 GridConfig inputs + §4.4 objective parameters + §6 settings).
type Settings struct {
	StartHour         int              `json:"start_hour"`                  // first daily window hour, e.g. 8
	EndHour           int              `json:"end_hour"`                    // exclusive daily window end hour, e.g. 22
	Alpha             float64          `json:"alpha"`                       // leisure term weight
	Beta              float64          `json:"beta"`                       // stress term weight
	Gamma             float64          `json:"gamma"`                      // deadline-proximity multiplier
	GammaContiguity   float64          `json:"gamma_contiguity"`           // contiguous-leisure reward (contextual variant only)
	DailyLimitSlots   *int             `json:"daily_limit_slots,omitempty"` // optional per-day slot cap
	HardTaskThreshold int              `json:"hard_task_threshold"`        // difficulty at/above which a task is "hard"
	TimeLimitSeconds  int              `json:"time_limit_seconds"`         // solver wall-clock budget
	Timezone          string           `json:"timezone"`                   // IANA timezone name, or "Local"
	Variant           constants.Variant `json:"variant"`
	LeisureWeights    map[int]float64  `json:"leisure_weights,omitempty"`    // optional per-slot override of w_L
	StressMultipliers map[int]float64  `json:"stress_multipliers,omitempty"` // optional per-slot override of w_S
}
