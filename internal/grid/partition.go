package grid

import "github.com/weekplan/weekplan/internal/constants"

// Partition is the precomputed classification of every slot into a named
// preference region (§4.2). Regions are derived from the actual wall-clock
// hour of each slot's start time, so a narrowed daily window can make a
// region empty.
type Partition struct {
	Morning   []int
	Afternoon []int
	Evening   []int
	grid      Config
}

// BuildPartition computes the morning, afternoon and evening slot subsets
// once per grid; the "any" set is built by AllowedSlots on demand.
func BuildPartition(c Config) Partition {
	p := Partition{grid: c}
	for s := 0; s < c.TotalSlots; s++ {
		hour := c.Hour(s)
		switch {
		case hour >= 8 && hour < 12:
			p.Morning = append(p.Morning, s)
		case hour >= 12 && hour < 16:
			p.Afternoon = append(p.Afternoon, s)
		case hour >= 16 && hour < 22:
			p.Evening = append(p.Evening, s)
		}
	}
	return p
}

// AllowedSlots returns the slot subset a preference resolves to.
// PreferenceAny (and any unrecognized value) resolves to every slot in the
// grid.
func (p Partition) AllowedSlots(pref constants.Preference) []int {
	switch pref {
	case constants.PreferenceMorning:
		return p.Morning
	case constants.PreferenceAfternoon:
		return p.Afternoon
	case constants.PreferenceEvening:
		return p.Evening
	default:
		return p.anySlots()
	}
}

func (p Partition) anySlots() []int {
	all := make([]int, p.grid.TotalSlots)
	for s := range all {
		all[s] = s
	}
	return all
}

// IsAllowed reports whether slot s is in the region pref resolves to,
// without allocating a slice; used inside the Model Builder's hot loop.
func (p Partition) IsAllowed(pref constants.Preference, s int) bool {
	hour := p.grid.Hour(s)
	switch pref {
	case constants.PreferenceMorning:
		return hour >= 8 && hour < 12
	case constants.PreferenceAfternoon:
		return hour >= 12 && hour < 16
	case constants.PreferenceEvening:
		return hour >= 16 && hour < 22
	default:
		return true
	}
}
