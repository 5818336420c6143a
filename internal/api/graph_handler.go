// internal/api/graph_handler.go
package api

import (
	"math"
	"net/http"
	"time"

	"github.com/subashmuthub/Hacktivators/internal/domain/knowledgegraph"
)

// ── Request / Response types ────────────────────────────────────────────────

type SessionLogDTO struct {
	Concept        string  `json:"concept"`
	Category       string  `json:"category"`
	IsCorrect      bool    `json:"isCorrect"`
	ResponseTimeMs int     `json:"responseTimeMs"`
	MasteryPL      float64 `json:"masteryPL"`
	Timestamp      int64   `json:"timestamp"` // epoch milliseconds
}

type KnowledgeGraphRequest struct {
	SessionLogs []SessionLogDTO `json:"sessionLogs"`
}

type NodeDTO struct {
	ID               string  `json:"id"`
	Category         string  `json:"category,omitempty"`
	Mastery          float64 `json:"mastery"`
	EffectiveMastery float64 `json:"effectiveMastery"`
	Community        int     `json:"community"`
	Status           string  `json:"status"`
	CognitiveLoad    float64 `json:"cognitiveLoad"`
	DaysSinceReview  float64 `json:"daysSinceReview"`
	Observations     int     `json:"observations"`
	VisualWeight     float64 `json:"visualWeight"`
}

type EdgeDTO struct {
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	Weight       float64 `json:"weight"`
	Prerequisite float64 `json:"prerequisite"`
	CoOccurrence float64 `json:"coOccurrence"`
	Confusion    float64 `json:"confusion"`
	Type         string  `json:"type"`
}

type SummaryDTO struct {
	TotalNodes    int     `json:"totalNodes"`
	TotalEdges    int     `json:"totalEdges"`
	Communities   int     `json:"communities"`
	MasteredCount int     `json:"masteredCount"`
	FadingCount   int     `json:"fadingCount"`
	AvgMastery    float64 `json:"avgMastery"`
}

type KnowledgeGraphResponse struct {
	Nodes   []NodeDTO  `json:"nodes"`
	Edges   []EdgeDTO  `json:"edges"`
	Summary SummaryDTO `json:"summary"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /knowledge-graph
func (h *Handler) buildKnowledgeGraph(w http.ResponseWriter, r *http.Request) {
	var req KnowledgeGraphRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.SessionLogs) == 0 {
		respondError(w, http.StatusBadRequest, "sessionLogs is required and must be non-empty")
		return
	}

	logs := make([]knowledgegraph.SessionLog, len(req.SessionLogs))
	for i, l := range req.SessionLogs {
		logs[i] = knowledgegraph.SessionLog{
			Concept:        l.Concept,
			Category:       l.Category,
			IsCorrect:      l.IsCorrect,
			ResponseTimeMs: l.ResponseTimeMs,
			MasteryPL:      l.MasteryPL,
			Timestamp:      time.UnixMilli(l.Timestamp).UTC(),
		}
	}

	g := h.graphs.BuildFromLogs(logs, time.Now().UTC())
	respondJSON(w, http.StatusOK, graphResponse(g))
}

// GET /learners/{learnerID}/knowledge-graph
func (h *Handler) getLearnerGraph(w http.ResponseWriter, r *http.Request) {
	learnerID := r.PathValue("learnerID")

	g, err := h.graphs.BuildForLearner(learnerID, time.Now().UTC())
	if h.handleStoreError(w, err, "learner") {
		return
	}
	respondJSON(w, http.StatusOK, graphResponse(g))
}

func graphResponse(g *knowledgegraph.Graph) KnowledgeGraphResponse {
	resp := KnowledgeGraphResponse{
		Nodes: make([]NodeDTO, len(g.Nodes)),
		Edges: make([]EdgeDTO, len(g.Edges)),
		Summary: SummaryDTO{
			TotalNodes:    g.Summary.TotalNodes,
			TotalEdges:    g.Summary.TotalEdges,
			Communities:   g.Summary.Communities,
			MasteredCount: g.Summary.MasteredCount,
			FadingCount:   g.Summary.FadingCount,
			AvgMastery:    round4(g.Summary.AvgMastery),
		},
	}
	for i, n := range g.Nodes {
		resp.Nodes[i] = NodeDTO{
			ID:               n.ID,
			Category:         n.Category,
			Mastery:          round4(n.Mastery),
			EffectiveMastery: round4(n.EffectiveMastery),
			Community:        n.Community,
			Status:           n.Status,
			CognitiveLoad:    round4(n.CognitiveLoad),
			DaysSinceReview:  round4(n.DaysSinceReview),
			Observations:     n.Observations,
			VisualWeight:     n.VisualWeight,
		}
	}
	for i, e := range g.Edges {
		resp.Edges[i] = EdgeDTO{
			Source:       e.Source,
			Target:       e.Target,
			Weight:       round4(e.Weight),
			Prerequisite: round4(e.Prerequisite),
			CoOccurrence: round4(e.CoOccurrence),
			Confusion:    round4(e.Confusion),
			Type:         e.Type,
		}
	}
	return resp
}

// round4 keeps transport numbers stable across float formatting.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
