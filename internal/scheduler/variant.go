package scheduler

import "github.com/weekplan/weekplan/internal/constants"

// usesContiguity reports whether v's model needs the Y/Z auxiliary leisure
// indicators and the contiguity objective term (§4.4, contextual variant).
func usesContiguity(v constants.Variant) bool {
	return v == constants.VariantContextual
}

// usesDeadlineProximity reports whether v's stress term carries the
// (1+γ·late) deadline-proximity multiplier. The base variant still scores
// every scheduled task's raw priority*difficulty*w_S stress (§4.4); only the
// deadline and contextual variants bias that score toward earlier starts,
// matching the source's "no auxiliary occupancy indicator" vs. "deadline
// penalty" split (§9).
func usesDeadlineProximity(v constants.Variant) bool {
	return v == constants.VariantDeadlinePenalty || v == constants.VariantContextual
}

// resolveVariant defaults an empty/unrecognized selector to VariantBase.
func resolveVariant(v constants.Variant) constants.Variant {
	switch v {
	case constants.VariantBase, constants.VariantDeadlinePenalty, constants.VariantContextual:
		return v
	default:
		return constants.VariantBase
	}
}
