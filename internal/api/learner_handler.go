// internal/api/learner_handler.go
package api

import (
	"net/http"
	"time"

	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
	"github.com/subashmuthub/Hacktivators/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type RecordAnswerRequest struct {
	Concept        string         `json:"concept"`
	Category       string         `json:"category,omitempty"`
	IsCorrect      bool           `json:"isCorrect"`
	ResponseTimeMs int64          `json:"responseTimeMs"`
	IRT            *ItemParamsDTO `json:"irt,omitempty"`
}

type MasteryStateDTO struct {
	Concept          string  `json:"concept"`
	PMastered        float64 `json:"pMastered"`
	EffectiveMastery float64 `json:"effectiveMastery"`
	Stability        float64 `json:"stabilityDays"`
	ReviewCount      int     `json:"reviewCount"`
	LastReviewAt     string  `json:"lastReviewAt"`
}

type RecordAnswerResponse struct {
	Mastery MasteryStateDTO `json:"mastery"`
}

type MasteryListResponse struct {
	LearnerID string            `json:"learnerId"`
	Concepts  []MasteryStateDTO `json:"concepts"`
}

type AbilityResponse struct {
	LearnerID     string   `json:"learnerId"`
	Theta         float64  `json:"theta"`
	Score         int      `json:"score"`
	StandardError *float64 `json:"standardError,omitempty"`
	ItemResponses int      `json:"itemResponses"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /learners/{learnerID}/answers
func (h *Handler) recordAnswer(w http.ResponseWriter, r *http.Request) {
	learnerID := r.PathValue("learnerID")

	var req RecordAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Concept == "" {
		respondError(w, http.StatusBadRequest, "concept is required")
		return
	}

	in := service.AnswerInput{
		Concept:        req.Concept,
		Category:       req.Category,
		Correct:        req.IsCorrect,
		ResponseTimeMs: req.ResponseTimeMs,
	}
	if req.IRT != nil {
		in.Item = &irt.ItemParams{
			Discrimination: req.IRT.Discrimination,
			Difficulty:     req.IRT.Difficulty,
			GuessFloor:     req.IRT.GuessFloor,
		}
	}

	now := time.Now().UTC()
	out, err := h.learners.RecordAnswer(learnerID, in, now)
	if err != nil {
		h.logger.Error("record answer failed", "learner_id", learnerID, "error", err)
		respondError(w, http.StatusBadRequest, "could not record answer")
		return
	}

	respondJSON(w, http.StatusCreated, RecordAnswerResponse{
		Mastery: MasteryStateDTO{
			Concept:          out.Concept,
			PMastered:        round4(out.State.PMastered),
			EffectiveMastery: round4(out.EffectiveMastery),
			Stability:        round4(out.State.Stability),
			ReviewCount:      out.State.ReviewCount,
			LastReviewAt:     out.State.LastReviewAt.Format(time.RFC3339),
		},
	})
}

// GET /learners/{learnerID}/mastery
func (h *Handler) getMastery(w http.ResponseWriter, r *http.Request) {
	learnerID := r.PathValue("learnerID")

	states, err := h.learners.MasteryForLearner(learnerID, time.Now().UTC())
	if h.handleStoreError(w, err, "learner") {
		return
	}

	resp := MasteryListResponse{
		LearnerID: learnerID,
		Concepts:  make([]MasteryStateDTO, len(states)),
	}
	for i, cm := range states {
		resp.Concepts[i] = MasteryStateDTO{
			Concept:          cm.Concept,
			PMastered:        round4(cm.State.PMastered),
			EffectiveMastery: round4(cm.EffectiveMastery),
			Stability:        round4(cm.State.Stability),
			ReviewCount:      cm.State.ReviewCount,
			LastReviewAt:     cm.State.LastReviewAt.Format(time.RFC3339),
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// GET /learners/{learnerID}/ability
func (h *Handler) getAbility(w http.ResponseWriter, r *http.Request) {
	learnerID := r.PathValue("learnerID")

	readout, err := h.learners.AbilityForLearner(learnerID, 0)
	if h.handleStoreError(w, err, "learner") {
		return
	}

	respondJSON(w, http.StatusOK, AbilityResponse{
		LearnerID:     learnerID,
		Theta:         readout.Theta,
		Score:         readout.Score,
		StandardError: readout.StandardError,
		ItemResponses: readout.ItemResponses,
	})
}
