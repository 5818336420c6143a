// internal/service/analysis_test.go
package service_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/subashmuthub/Hacktivators/internal/domain/behavior"
	"github.com/subashmuthub/Hacktivators/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyzeSpeedGuessing(t *testing.T) {
	as := service.NewAnalysisService(4, discardLogger())

	res := as.Analyze(service.AnalysisRequest{
		Mode: "practice",
		Responses: []behavior.Response{
			{QuestionID: "q1", SelectedOption: 2, Correct: true, ResponseTimeMs: 2000, Difficulty: "hard", Concept: "recursion"},
		},
		Signals: behavior.Signals{TotalQuestions: 1},
	})

	if len(res.Guessing) != 1 {
		t.Fatalf("expected 1 guess analysis, got %d", len(res.Guessing))
	}
	if !res.Guessing[0].SpeedFlag {
		t.Error("2s answer on a hard item should raise the speed flag")
	}
	if res.Guessing[0].QuestionID != "q1" {
		t.Errorf("question id mismatch: %s", res.Guessing[0].QuestionID)
	}
}

func TestAnalyzePreservesResponseOrder(t *testing.T) {
	as := service.NewAnalysisService(8, discardLogger())

	var responses []behavior.Response
	ids := []string{"a", "b", "c", "d", "e", "f"}
	for i, qid := range ids {
		responses = append(responses, behavior.Response{
			QuestionID:     qid,
			SelectedOption: i % 4,
			Correct:        i%2 == 0,
			ResponseTimeMs: 15000,
			Difficulty:     "medium",
			Concept:        "loops",
		})
	}

	res := as.Analyze(service.AnalysisRequest{
		Mode:      "practice",
		Responses: responses,
		Signals:   behavior.Signals{TotalQuestions: len(responses)},
	})

	if len(res.Guessing) != len(ids) {
		t.Fatalf("expected %d analyses, got %d", len(ids), len(res.Guessing))
	}
	for i, g := range res.Guessing {
		if g.QuestionID != ids[i] {
			t.Errorf("analysis %d: expected %s, got %s", i, ids[i], g.QuestionID)
		}
	}
}

func TestAnalyzeExamModeNeverIntervenes(t *testing.T) {
	as := service.NewAnalysisService(4, discardLogger())

	res := as.Analyze(service.AnalysisRequest{
		Mode: "exam",
		Responses: []behavior.Response{
			{QuestionID: "q1", Correct: false, ResponseTimeMs: 1000, Difficulty: "hard", Concept: "loops"},
			{QuestionID: "q2", Correct: false, ResponseTimeMs: 1000, Difficulty: "hard", Concept: "loops"},
			{QuestionID: "q3", Correct: false, ResponseTimeMs: 1000, Difficulty: "hard", Concept: "loops"},
		},
		Signals: behavior.Signals{TotalQuestions: 3},
	})

	if res.Intervention.Trigger {
		t.Error("exam mode must never trigger an intervention")
	}
	if res.Intervention.Priority != "none" {
		t.Errorf("expected priority none, got %s", res.Intervention.Priority)
	}
}

func TestAnalyzeWrongStreakTriggersIntervention(t *testing.T) {
	as := service.NewAnalysisService(4, discardLogger())

	res := as.Analyze(service.AnalysisRequest{
		Mode:    "practice",
		Concept: "loops",
		Responses: []behavior.Response{
			{QuestionID: "q1", SelectedOption: 0, Correct: false, ResponseTimeMs: 20000, Difficulty: "medium", Concept: "loops"},
			{QuestionID: "q2", SelectedOption: 1, Correct: false, ResponseTimeMs: 20000, Difficulty: "medium", Concept: "loops"},
		},
		Signals: behavior.Signals{TotalQuestions: 2},
	})

	if res.Ability.WrongStreak != 2 {
		t.Errorf("expected wrong streak 2, got %d", res.Ability.WrongStreak)
	}
	if !res.Intervention.Trigger {
		t.Errorf("two misses on one concept should trigger: %+v", res.Intervention)
	}
}

func TestAnalyzeEmptySession(t *testing.T) {
	as := service.NewAnalysisService(4, discardLogger())

	res := as.Analyze(service.AnalysisRequest{
		Mode:    "practice",
		Signals: behavior.Signals{},
	})

	if len(res.Guessing) != 0 {
		t.Errorf("expected no guess analyses, got %d", len(res.Guessing))
	}
	if res.Ability.StandardError != nil {
		t.Error("standard error should be absent with no item responses")
	}
	if res.Ability.Score != 50 {
		t.Errorf("prior theta 0 should map to score 50, got %d", res.Ability.Score)
	}
	if res.Cheating.Score != 0 || res.Cheating.Flagged {
		t.Errorf("empty session must not be flagged: %+v", res.Cheating)
	}
}

func TestAnalyzeCheatingBreakdown(t *testing.T) {
	as := service.NewAnalysisService(4, discardLogger())

	res := as.Analyze(service.AnalysisRequest{
		Mode: "exam",
		Responses: []behavior.Response{
			{QuestionID: "q1", Correct: true, ResponseTimeMs: 3000, Difficulty: "hard", Concept: "graphs"},
		},
		Signals: behavior.Signals{
			TabSwitches:     10,
			PasteEvents:     8,
			FastHardAnswers: 9,
			TotalQuestions:  10,
		},
	})

	if !res.Cheating.Flagged {
		t.Errorf("heavy signals should flag the session: %+v", res.Cheating)
	}
	// 0.3·1.0 + 0.3·0.8 + 0.4·0.9 = 0.9
	if res.Cheating.Score != 0.9 {
		t.Errorf("expected score 0.9, got %v", res.Cheating.Score)
	}
}
