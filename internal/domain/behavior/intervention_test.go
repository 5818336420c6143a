package behavior_test

import (
	"testing"

	"github.com/subashmuthub/Hacktivators/internal/domain/behavior"
)

func untimed(p behavior.InterventionParams) behavior.InterventionParams {
	p.TimeRemainingSec = -1
	return p
}

func TestShouldTriggerIntervention_ExamModeNeverTriggers(t *testing.T) {
	d := behavior.ShouldTriggerIntervention(untimed(behavior.InterventionParams{
		Mode:             "exam",
		GuessProbability: 0.9,
		WrongStreak:      5,
	}))
	if d.Trigger {
		t.Error("exam mode must never trigger an intervention")
	}
}

func TestShouldTriggerIntervention_HighMasteryNeverTriggers(t *testing.T) {
	d := behavior.ShouldTriggerIntervention(untimed(behavior.InterventionParams{
		Mode:             "practice",
		Mastery:          0.95,
		GuessProbability: 0.9,
		WrongStreak:      5,
	}))
	if d.Trigger {
		t.Error("near-complete mastery must never trigger")
	}
}

func TestShouldTriggerIntervention_LowTimeRemaining(t *testing.T) {
	d := behavior.ShouldTriggerIntervention(behavior.InterventionParams{
		Mode:             "practice",
		GuessProbability: 0.9,
		WrongStreak:      5,
		TimeRemainingSec: 30,
	})
	if d.Trigger {
		t.Error("an intervention that cannot finish must not start")
	}
}

func TestShouldTriggerIntervention_SingleWeakRuleBelowThreshold(t *testing.T) {
	// Active-zone miss alone is +1, below the trigger score of 2.
	d := behavior.ShouldTriggerIntervention(untimed(behavior.InterventionParams{
		Mode:    "practice",
		Correct: false,
		Mastery: 0.5,
	}))
	if d.Trigger {
		t.Errorf("score %d should not trigger", d.Score)
	}
	if d.Score != 1 {
		t.Errorf("score = %d, want 1", d.Score)
	}
}

func TestShouldTriggerIntervention_GuessingTriggersMedium(t *testing.T) {
	d := behavior.ShouldTriggerIntervention(untimed(behavior.InterventionParams{
		Mode:             "practice",
		Mastery:          0.2,
		GuessProbability: 0.7,
	}))
	if !d.Trigger {
		t.Fatal("guess probability above 0.6 alone scores 3 and should trigger")
	}
	if d.Priority != "medium" {
		t.Errorf("priority = %q, want medium", d.Priority)
	}
	if len(d.Reasons) != 1 {
		t.Errorf("reasons = %v, want exactly one", d.Reasons)
	}
}

func TestShouldTriggerIntervention_StackedRulesHighPriority(t *testing.T) {
	conf := 0.2
	d := behavior.ShouldTriggerIntervention(untimed(behavior.InterventionParams{
		Mode:             "practice",
		Correct:          true,
		Mastery:          0.5,
		MasteryDelta:     -0.2,
		WrongStreak:      3,
		GuessProbability: 0.8,
		Confidence:       &conf,
	}))
	if !d.Trigger {
		t.Fatal("stacked rules should trigger")
	}
	// guessing(3) + streak(3) + drop(2) + low-confidence-correct(2) = 10
	if d.Score != 10 {
		t.Errorf("score = %d, want 10", d.Score)
	}
	if d.Priority != "high" {
		t.Errorf("priority = %q, want high", d.Priority)
	}
}

func TestShouldTriggerIntervention_MasteryDropPlusActiveZone(t *testing.T) {
	// drop(2) + active-zone miss(1) = 3 → medium.
	d := behavior.ShouldTriggerIntervention(untimed(behavior.InterventionParams{
		Mode:         "practice",
		Correct:      false,
		Mastery:      0.6,
		MasteryDelta: -0.2,
	}))
	if !d.Trigger || d.Priority != "medium" {
		t.Errorf("got trigger=%v priority=%q score=%d, want medium trigger", d.Trigger, d.Priority, d.Score)
	}
}

func TestShouldTriggerIntervention_ConfidenceIgnoredWhenAbsent(t *testing.T) {
	d := behavior.ShouldTriggerIntervention(untimed(behavior.InterventionParams{
		Mode:    "practice",
		Correct: true,
		Mastery: 0.5,
	}))
	if d.Score != 0 {
		t.Errorf("score = %d, want 0 without confidence data", d.Score)
	}
}
