// internal/service/learner_test.go
package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/subashmuthub/Hacktivators/internal/curriculum"
	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
	"github.com/subashmuthub/Hacktivators/internal/domain/knowledgegraph"
	"github.com/subashmuthub/Hacktivators/internal/domain/mastery"
	"github.com/subashmuthub/Hacktivators/internal/service"
	"github.com/subashmuthub/Hacktivators/internal/store"
)

func newTestServices(t *testing.T) (*service.LearnerService, *service.GraphService, store.Store) {
	t.Helper()

	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	builder := knowledgegraph.NewBuilder(curriculum.Default(), knowledgegraph.DefaultConfig())
	graphs, err := service.NewGraphService(builder, s, 16, 500, discardLogger())
	if err != nil {
		t.Fatalf("NewGraphService: %v", err)
	}
	learners := service.NewLearnerService(s, mastery.DefaultParams(), graphs, discardLogger())
	return learners, graphs, s
}

func TestRecordAnswerUpdatesMastery(t *testing.T) {
	learners, _, s := newTestServices(t)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	out, err := learners.RecordAnswer("lrn-1", service.AnswerInput{
		Concept:        "Loops",
		Category:       "fundamentals",
		Correct:        true,
		ResponseTimeMs: 12000,
	}, now)
	if err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if out.Concept != "loops" {
		t.Errorf("concept should be normalized, got %s", out.Concept)
	}
	if out.State.PMastered <= mastery.DefaultParams().PInit {
		t.Errorf("correct answer should raise mastery above the prior, got %v", out.State.PMastered)
	}
	if out.State.ReviewCount != 1 {
		t.Errorf("expected review count 1, got %d", out.State.ReviewCount)
	}

	// The event lands in the answer log with the updated estimate.
	events, err := s.ListAnswers("lrn-1", 0)
	if err != nil {
		t.Fatalf("ListAnswers: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].MasteryPL != out.State.PMastered {
		t.Errorf("event mastery %v != state mastery %v", events[0].MasteryPL, out.State.PMastered)
	}

	// A second observation continues from the stored state.
	out2, err := learners.RecordAnswer("lrn-1", service.AnswerInput{
		Concept: "loops",
		Correct: true,
	}, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("RecordAnswer (second): %v", err)
	}
	if out2.State.PMastered <= out.State.PMastered {
		t.Errorf("mastery should keep rising: %v then %v", out.State.PMastered, out2.State.PMastered)
	}
	if out2.State.ReviewCount != 2 {
		t.Errorf("expected review count 2, got %d", out2.State.ReviewCount)
	}
}

func TestRecordAnswerRejectsEmptyConcept(t *testing.T) {
	learners, _, _ := newTestServices(t)

	if _, err := learners.RecordAnswer("lrn-1", service.AnswerInput{Concept: "   "}, time.Now()); err == nil {
		t.Fatal("expected error for empty concept")
	}
}

func TestMasteryForLearner(t *testing.T) {
	learners, _, _ := newTestServices(t)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, concept := range []string{"loops", "arrays", "loops"} {
		if _, err := learners.RecordAnswer("lrn-1", service.AnswerInput{Concept: concept, Correct: true}, now); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}

	states, err := learners.MasteryForLearner("lrn-1", now)
	if err != nil {
		t.Fatalf("MasteryForLearner: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("expected 2 concepts, got %d", len(states))
	}
	if states[0].Concept != "arrays" || states[1].Concept != "loops" {
		t.Errorf("concepts not sorted: %s, %s", states[0].Concept, states[1].Concept)
	}
	for _, cm := range states {
		if cm.EffectiveMastery > cm.State.PMastered {
			t.Errorf("%s: effective mastery %v exceeds stored %v", cm.Concept, cm.EffectiveMastery, cm.State.PMastered)
		}
	}
}

func TestAbilityForLearner(t *testing.T) {
	learners, _, _ := newTestServices(t)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	item := &irt.ItemParams{Discrimination: 1.2, Difficulty: 0.0, GuessFloor: 0.25}
	for i := 0; i < 4; i++ {
		if _, err := learners.RecordAnswer("lrn-1", service.AnswerInput{
			Concept: "loops",
			Correct: true,
			Item:    item,
		}, now.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}
	// One event without item params must not enter the estimate.
	if _, err := learners.RecordAnswer("lrn-1", service.AnswerInput{Concept: "arrays", Correct: false}, now.Add(time.Hour)); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	readout, err := learners.AbilityForLearner("lrn-1", 0)
	if err != nil {
		t.Fatalf("AbilityForLearner: %v", err)
	}
	if readout.ItemResponses != 4 {
		t.Errorf("expected 4 item responses, got %d", readout.ItemResponses)
	}
	if readout.Theta <= 0 {
		t.Errorf("four correct answers at b=0 should pull theta positive, got %v", readout.Theta)
	}
	if readout.StandardError == nil {
		t.Error("expected a finite standard error")
	}
}

func TestGraphCacheInvalidation(t *testing.T) {
	learners, graphs, _ := newTestServices(t)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if _, err := learners.RecordAnswer("lrn-1", service.AnswerInput{Concept: "loops", Correct: true, ResponseTimeMs: 10000}, now); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	g1, err := graphs.BuildForLearner("lrn-1", now)
	if err != nil {
		t.Fatalf("BuildForLearner: %v", err)
	}
	if g1.Summary.TotalNodes != 1 {
		t.Fatalf("expected 1 node, got %d", g1.Summary.TotalNodes)
	}

	// Cached until the next recorded answer.
	g2, err := graphs.BuildForLearner("lrn-1", now)
	if err != nil {
		t.Fatalf("BuildForLearner (cached): %v", err)
	}
	if g2 != g1 {
		t.Error("expected the cached graph instance")
	}

	if _, err := learners.RecordAnswer("lrn-1", service.AnswerInput{Concept: "arrays", Correct: true, ResponseTimeMs: 10000}, now.Add(time.Minute)); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	g3, err := graphs.BuildForLearner("lrn-1", now.Add(time.Minute))
	if err != nil {
		t.Fatalf("BuildForLearner (rebuilt): %v", err)
	}
	if g3.Summary.TotalNodes != 2 {
		t.Errorf("expected rebuild with 2 nodes, got %d", g3.Summary.TotalNodes)
	}
}
