// internal/api/behavior_handler.go
package api

import (
	"net/http"

	"github.com/subashmuthub/Hacktivators/internal/domain/behavior"
	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
	"github.com/subashmuthub/Hacktivators/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type ItemParamsDTO struct {
	Discrimination float64 `json:"discrimination"`
	Difficulty     float64 `json:"difficulty"`
	GuessFloor     float64 `json:"guessFloor"`
}

type ResponseDTO struct {
	QuestionID     string         `json:"questionId"`
	SelectedOption int            `json:"selectedOption"`
	IsCorrect      bool           `json:"isCorrect"`
	ResponseTimeMs int            `json:"responseTimeMs"`
	Difficulty     string         `json:"difficulty"`
	Concept        string         `json:"concept"`
	IRT            *ItemParamsDTO `json:"irt,omitempty"`
}

type SignalsDTO struct {
	TabSwitches     int `json:"tabSwitches"`
	PasteEvents     int `json:"pasteEvents"`
	FastHardAnswers int `json:"fastHardAnswers"`
	TotalQuestions  int `json:"totalQuestions"`
}

type AnalyzeBehaviorRequest struct {
	Mode             string        `json:"mode"`
	Responses        []ResponseDTO `json:"responses"`
	BehaviorSignals  *SignalsDTO   `json:"behaviorSignals"`
	CurrentPL        *float64      `json:"currentPL,omitempty"`
	Concept          string        `json:"concept,omitempty"`
	Confidence       *float64      `json:"confidence,omitempty"`
	TimeRemainingSec *float64      `json:"timeRemainingSec,omitempty"`
}

type GuessAnalysisDTO struct {
	QuestionID   string   `json:"questionId"`
	Probability  float64  `json:"probability"`
	SpeedFlag    bool     `json:"speedFlag"`
	PatternFlag  bool     `json:"patternFlag"`
	MismatchFlag bool     `json:"mismatchFlag"`
	Reasons      []string `json:"reasons,omitempty"`
}

type AbilityDTO struct {
	Theta         float64  `json:"theta"`
	Score         int      `json:"score"`
	StandardError *float64 `json:"standardError,omitempty"`
	ItemResponses int      `json:"itemResponses"`
	Mastery       float64  `json:"mastery"`
	MasteryDelta  float64  `json:"masteryDelta"`
	WrongStreak   int      `json:"wrongStreak"`
}

type CheatingDTO struct {
	Score         float64 `json:"score"`
	Flagged       bool    `json:"flagged"`
	TabSwitchRate float64 `json:"tabSwitchRate"`
	PasteRate     float64 `json:"pasteRate"`
	FastHardRate  float64 `json:"fastHardRate"`
}

type InterventionDTO struct {
	Trigger  bool     `json:"trigger"`
	Score    int      `json:"score"`
	Priority string   `json:"priority"`
	Reasons  []string `json:"reasons,omitempty"`
}

type AnalyzeBehaviorResponse struct {
	Guessing     []GuessAnalysisDTO `json:"guessing"`
	Ability      AbilityDTO         `json:"ability"`
	Cheating     CheatingDTO        `json:"cheating"`
	Intervention InterventionDTO    `json:"intervention"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /analyze-behavior
func (h *Handler) analyzeBehavior(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeBehaviorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.BehaviorSignals == nil {
		respondError(w, http.StatusBadRequest, "behaviorSignals is required")
		return
	}

	responses := make([]behavior.Response, len(req.Responses))
	for i, dto := range req.Responses {
		resp := behavior.Response{
			QuestionID:     dto.QuestionID,
			SelectedOption: dto.SelectedOption,
			Correct:        dto.IsCorrect,
			ResponseTimeMs: dto.ResponseTimeMs,
			Difficulty:     dto.Difficulty,
			Concept:        dto.Concept,
		}
		if dto.IRT != nil {
			resp.Item = &irt.ItemParams{
				Discrimination: dto.IRT.Discrimination,
				Difficulty:     dto.IRT.Difficulty,
				GuessFloor:     dto.IRT.GuessFloor,
			}
		}
		responses[i] = resp
	}

	result := h.analysis.Analyze(service.AnalysisRequest{
		Mode:      req.Mode,
		Responses: responses,
		Signals: behavior.Signals{
			TabSwitches:     req.BehaviorSignals.TabSwitches,
			PasteEvents:     req.BehaviorSignals.PasteEvents,
			FastHardAnswers: req.BehaviorSignals.FastHardAnswers,
			TotalQuestions:  req.BehaviorSignals.TotalQuestions,
		},
		Concept:          req.Concept,
		CurrentPL:        req.CurrentPL,
		Confidence:       req.Confidence,
		TimeRemainingSec: req.TimeRemainingSec,
	})

	resp := AnalyzeBehaviorResponse{
		Guessing: make([]GuessAnalysisDTO, len(result.Guessing)),
		Ability: AbilityDTO{
			Theta:         result.Ability.Theta,
			Score:         result.Ability.Score,
			StandardError: result.Ability.StandardError,
			ItemResponses: result.Ability.ItemResponses,
			Mastery:       result.Ability.Mastery,
			MasteryDelta:  result.Ability.MasteryDelta,
			WrongStreak:   result.Ability.WrongStreak,
		},
		Cheating: CheatingDTO{
			Score:         result.Cheating.Score,
			Flagged:       result.Cheating.Flagged,
			TabSwitchRate: result.Cheating.TabSwitchRate,
			PasteRate:     result.Cheating.PasteRate,
			FastHardRate:  result.Cheating.FastHardRate,
		},
		Intervention: InterventionDTO{
			Trigger:  result.Intervention.Trigger,
			Score:    result.Intervention.Score,
			Priority: result.Intervention.Priority,
			Reasons:  result.Intervention.Reasons,
		},
	}
	for i, g := range result.Guessing {
		resp.Guessing[i] = GuessAnalysisDTO{
			QuestionID:   g.QuestionID,
			Probability:  g.Probability,
			SpeedFlag:    g.SpeedFlag,
			PatternFlag:  g.PatternFlag,
			MismatchFlag: g.MismatchFlag,
			Reasons:      g.Reasons,
		}
	}

	respondJSON(w, http.StatusOK, resp)
}
