package mastery

import "time"

// State tracks a learner's knowledge of a single concept.
//
// PMastered is the Bayesian "concept known" estimate; Stability is the
// memory-retention horizon in days. Both only move when an answer is
// observed. Forgetting is applied at read time through EffectiveMastery and
// is never written back, so stored state is append-only from the caller's
// point of view.
type State struct {
	PMastered    float64
	Stability    float64 // days
	ReviewCount  int     // successful reinforcing reviews
	LastReviewAt time.Time
}

// NewState seeds a fresh state for a concept seen for the first time.
func (p BKTParams) NewState(now time.Time) State {
	return State{
		PMastered:    p.PInit,
		Stability:    InitialStabilityDays,
		ReviewCount:  0,
		LastReviewAt: now,
	}
}

// Observe applies a single correct/incorrect observation to the state.
// The caller must serialize concurrent Observe calls for the same
// learner-concept pair; the update is a read-modify-write.
func (p BKTParams) Observe(st *State, correct bool, now time.Time) {
	st.PMastered = p.UpdateMastery(st.PMastered, correct)
	UpdateStability(st, correct)
	if correct {
		st.ReviewCount++
	}
	st.LastReviewAt = now
}

// DaysSince returns the days elapsed from the last review to now,
// clamped to zero for clock skew.
func (st State) DaysSince(now time.Time) float64 {
	d := now.Sub(st.LastReviewAt).Hours() / 24.0
	if d < 0 {
		return 0
	}
	return d
}
