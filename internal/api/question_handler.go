// internal/api/question_handler.go
package api

import (
	"errors"
	"net/http"

	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
	"github.com/subashmuthub/Hacktivators/internal/generator"
)

// ── Request / Response types ────────────────────────────────────────────────

type BankItemDTO struct {
	ID             string  `json:"id"`
	Discrimination float64 `json:"discrimination"`
	Difficulty     float64 `json:"difficulty"`
	GuessFloor     float64 `json:"guessFloor"`
}

type SelectNextItemRequest struct {
	Theta   float64       `json:"theta"`
	Items   []BankItemDTO `json:"items"`
	UsedIDs []string      `json:"usedIds,omitempty"`
}

type SelectNextItemResponse struct {
	Item        *BankItemDTO `json:"item"` // null when the bank is exhausted
	Information float64      `json:"information"`
}

type GenerateQuestionRequest struct {
	Concept           string   `json:"concept"`
	Difficulty        string   `json:"difficulty"`
	PreviousQuestions []string `json:"previousQuestions,omitempty"`
	PriorExamSummary  string   `json:"priorExamSummary,omitempty"`
}

type GeneratedQuestionResponse struct {
	Question     string         `json:"question"`
	Options      []string       `json:"options"`
	CorrectIndex int            `json:"correctIndex"`
	Explanation  string         `json:"explanation"`
	Hint         string         `json:"hint,omitempty"`
	IRT          *ItemParamsDTO `json:"irt"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /items/next
func (h *Handler) selectNextItem(w http.ResponseWriter, r *http.Request) {
	var req SelectNextItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "items is required and must be non-empty")
		return
	}

	bank := make([]irt.BankItem, len(req.Items))
	for i, it := range req.Items {
		bank[i] = irt.BankItem{
			ID: it.ID,
			Params: irt.ItemParams{
				Discrimination: it.Discrimination,
				Difficulty:     it.Difficulty,
				GuessFloor:     it.GuessFloor,
			},
		}
	}
	used := make(map[string]bool, len(req.UsedIDs))
	for _, id := range req.UsedIDs {
		used[id] = true
	}

	theta := irt.ClampTheta(req.Theta)
	next := irt.SelectNextItem(theta, bank, used)

	resp := SelectNextItemResponse{}
	if next != nil {
		resp.Item = &BankItemDTO{
			ID:             next.ID,
			Discrimination: next.Params.Discrimination,
			Difficulty:     next.Params.Difficulty,
			GuessFloor:     next.Params.GuessFloor,
		}
		resp.Information = round4(irt.FisherInformation(theta, next.Params))
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /questions/generate
func (h *Handler) generateQuestion(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Concept == "" {
		respondError(w, http.StatusBadRequest, "concept is required")
		return
	}

	q, err := h.generator.GenerateQuestion(r.Context(), generator.QuestionRequest{
		Concept:           req.Concept,
		Difficulty:        req.Difficulty,
		PreviousQuestions: req.PreviousQuestions,
		PriorExamSummary:  req.PriorExamSummary,
	})
	if err != nil {
		var genErr *generator.GenerateError
		if errors.As(err, &genErr) {
			h.logger.Error("question generation failed", "concept", req.Concept, "error", err)
			respondError(w, http.StatusBadGateway, "question generation failed: "+genErr.Reason)
			return
		}
		h.logger.Error("question generation failed", "concept", req.Concept, "error", err)
		respondError(w, http.StatusBadGateway, "question generation failed")
		return
	}

	resp := GeneratedQuestionResponse{
		Question:     q.Question,
		Options:      q.Options,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
		Hint:         q.Hint,
	}
	if q.Item != nil {
		resp.IRT = &ItemParamsDTO{
			Discrimination: q.Item.Discrimination,
			Difficulty:     q.Item.Difficulty,
			GuessFloor:     q.Item.GuessFloor,
		}
	}
	respondJSON(w, http.StatusOK, resp)
}
