// internal/api/router.go
package api

import "net/http"

// RegisterRoutes wires every handler onto the mux. Go 1.22 method patterns
// keep the routing table flat and readable.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Stateless analysis boundaries
	mux.HandleFunc("POST /knowledge-graph", h.buildKnowledgeGraph)
	mux.HandleFunc("POST /analyze-behavior", h.analyzeBehavior)

	// Learner history
	mux.HandleFunc("POST /learners/{learnerID}/answers", h.recordAnswer)
	mux.HandleFunc("GET /learners/{learnerID}/mastery", h.getMastery)
	mux.HandleFunc("GET /learners/{learnerID}/knowledge-graph", h.getLearnerGraph)
	mux.HandleFunc("GET /learners/{learnerID}/ability", h.getAbility)
	mux.HandleFunc("GET /learners/{learnerID}/export", h.exportLearner)

	// Adaptive item flow
	mux.HandleFunc("POST /items/next", h.selectNextItem)
	mux.HandleFunc("POST /questions/generate", h.generateQuestion)
}
