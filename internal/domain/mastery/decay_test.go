package mastery_test

import (
	"testing"
	"time"

	"github.com/subashmuthub/Hacktivators/internal/domain/mastery"
)

func TestForgettingDecay_ZeroDaysIsOne(t *testing.T) {
	states := []mastery.State{
		{PMastered: 0.3, Stability: 1},
		{PMastered: 0.9, Stability: 200},
		{PMastered: 0.5, Stability: 0}, // degenerate stability falls back to the initial horizon
	}
	for _, st := range states {
		if got := mastery.ForgettingDecay(st, 0); got != 1.0 {
			t.Errorf("ForgettingDecay(%+v, 0) = %v, want exactly 1.0", st, got)
		}
	}
}

func TestForgettingDecay_NegativeDaysClamped(t *testing.T) {
	st := mastery.State{PMastered: 0.5, Stability: 10}
	if got := mastery.ForgettingDecay(st, -3); got != 1.0 {
		t.Errorf("ForgettingDecay with negative days = %v, want 1.0", got)
	}
}

func TestEffectiveMastery_NonIncreasing(t *testing.T) {
	st := mastery.State{PMastered: 0.8, Stability: 14}
	prev := mastery.EffectiveMastery(st, 0)
	for days := 1.0; days <= 120; days += 7 {
		cur := mastery.EffectiveMastery(st, days)
		if cur > prev {
			t.Fatalf("effective mastery increased at %v days: %v -> %v", days, prev, cur)
		}
		if cur < 0 || cur > 1 {
			t.Fatalf("effective mastery out of range at %v days: %v", days, cur)
		}
		prev = cur
	}
}

func TestForgettingDecay_LowMasteryDecaysFaster(t *testing.T) {
	low := mastery.State{PMastered: 0.2, Stability: 10}
	high := mastery.State{PMastered: 0.9, Stability: 10}
	if mastery.ForgettingDecay(low, 5) >= mastery.ForgettingDecay(high, 5) {
		t.Error("low-mastery concept should retain less than high-mastery concept")
	}
}

func TestUpdateStability_GrowsOnlyOnCorrect(t *testing.T) {
	st := mastery.State{PMastered: 0.6, Stability: 10}

	mastery.UpdateStability(&st, false)
	if st.Stability != 10 {
		t.Errorf("wrong answer changed stability: %v", st.Stability)
	}

	mastery.UpdateStability(&st, true)
	if st.Stability <= 10 {
		t.Errorf("correct answer did not grow stability: %v", st.Stability)
	}
}

func TestUpdateStability_Cap(t *testing.T) {
	st := mastery.State{PMastered: 0.99, Stability: mastery.MaxStabilityDays}
	mastery.UpdateStability(&st, true)
	if st.Stability > mastery.MaxStabilityDays {
		t.Errorf("stability exceeded cap: %v", st.Stability)
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	st := mastery.State{LastReviewAt: now.Add(-72 * time.Hour)}
	if got := st.DaysSince(now); got != 3 {
		t.Errorf("DaysSince = %v, want 3", got)
	}
	future := mastery.State{LastReviewAt: now.Add(time.Hour)}
	if got := future.DaysSince(now); got != 0 {
		t.Errorf("DaysSince with future review = %v, want 0", got)
	}
}
