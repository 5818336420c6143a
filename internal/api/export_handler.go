// internal/api/export_handler.go
package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// ── Request / Response types ────────────────────────────────────────────────

type ExportAnswer struct {
	Concept        string         `json:"concept"`
	Category       string         `json:"category,omitempty"`
	IsCorrect      bool           `json:"isCorrect"`
	ResponseTimeMs int64          `json:"responseTimeMs"`
	MasteryPL      float64        `json:"masteryPL"`
	IRT            *ItemParamsDTO `json:"irt,omitempty"`
	AnsweredAt     string         `json:"answeredAt"`
}

type ExportData struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exportedAt"`
	LearnerID  string            `json:"learnerId"`
	Answers    []ExportAnswer    `json:"answers"`
	Mastery    []MasteryStateDTO `json:"mastery"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /learners/{learnerID}/export
func (h *Handler) exportLearner(w http.ResponseWriter, r *http.Request) {
	learnerID := r.PathValue("learnerID")
	now := time.Now().UTC()

	events, err := h.learners.HistoryForLearner(learnerID, 0)
	if h.handleStoreError(w, err, "learner") {
		return
	}
	states, err := h.learners.MasteryForLearner(learnerID, now)
	if h.handleStoreError(w, err, "learner") {
		return
	}

	exportData := ExportData{
		Version:    "1.0",
		ExportedAt: now.Format(time.RFC3339),
		LearnerID:  learnerID,
		Answers:    make([]ExportAnswer, len(events)),
		Mastery:    make([]MasteryStateDTO, len(states)),
	}

	for i, ev := range events {
		a := ExportAnswer{
			Concept:        ev.Concept,
			Category:       ev.Category,
			IsCorrect:      ev.IsCorrect,
			ResponseTimeMs: ev.ResponseTimeMs,
			MasteryPL:      round4(ev.MasteryPL),
			AnsweredAt:     ev.CreatedAt.Format(time.RFC3339),
		}
		if ev.Item != nil {
			a.IRT = &ItemParamsDTO{
				Discrimination: ev.Item.Discrimination,
				Difficulty:     ev.Item.Difficulty,
				GuessFloor:     ev.Item.GuessFloor,
			}
		}
		exportData.Answers[i] = a
	}

	for i, cm := range states {
		exportData.Mastery[i] = MasteryStateDTO{
			Concept:          cm.Concept,
			PMastered:        round4(cm.State.PMastered),
			EffectiveMastery: round4(cm.EffectiveMastery),
			Stability:        round4(cm.State.Stability),
			ReviewCount:      cm.State.ReviewCount,
			LastReviewAt:     cm.State.LastReviewAt.Format(time.RFC3339),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+learnerID+"-export.json")
	json.NewEncoder(w).Encode(exportData)
}
