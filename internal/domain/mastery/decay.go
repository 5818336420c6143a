package mastery

import "math"

const (
	// InitialStabilityDays is the retention horizon for a brand-new concept.
	InitialStabilityDays = 1.0

	// MaxStabilityDays caps stability growth; past a year the schedule is
	// effectively flat anyway.
	MaxStabilityDays = 365.0

	// stabilityGrowth scales how fast correct answers stretch the horizon.
	stabilityGrowth = 0.1
)

// ForgettingDecay returns the retention fraction in [0,1] after the given
// number of days without review. Less-mastered concepts decay faster: the
// elapsed time is scaled up by the factor 1 + (1 - PMastered).
func ForgettingDecay(st State, days float64) float64 {
	if days < 0 {
		days = 0
	}
	stability := st.Stability
	if stability <= 0 {
		stability = InitialStabilityDays
	}
	difficultyFactor := 1 + (1 - st.PMastered)
	return math.Exp(-days * difficultyFactor / stability)
}

// EffectiveMastery is the display-facing "still retrievable" estimate:
// stored mastery discounted by retention. The stored PMastered itself never
// decreases from elapsed time, only from wrong answers.
func EffectiveMastery(st State, days float64) float64 {
	em := st.PMastered * ForgettingDecay(st, days)
	if em < 0 {
		return 0
	}
	return em
}

// UpdateStability grows the retention horizon after a correct answer.
// Incorrect answers leave stability untouched; they already penalize
// PMastered through the Bayesian update.
func UpdateStability(st *State, correct bool) {
	if !correct {
		return
	}
	if st.Stability <= 0 {
		st.Stability = InitialStabilityDays
	}
	st.Stability *= math.Exp(stabilityGrowth * st.PMastered)
	if st.Stability > MaxStabilityDays {
		st.Stability = MaxStabilityDays
	}
}
