// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/subashmuthub/Hacktivators/internal/generator"
	"github.com/subashmuthub/Hacktivators/internal/service"
	"github.com/subashmuthub/Hacktivators/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	analysis  *service.AnalysisService
	graphs    *service.GraphService
	learners  *service.LearnerService
	generator generator.Generator
	logger    *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(analysis *service.AnalysisService, graphs *service.GraphService, learners *service.LearnerService, gen generator.Generator, logger *slog.Logger) *Handler {
	return &Handler{
		analysis:  analysis,
		graphs:    graphs,
		learners:  learners,
		generator: gen,
		logger:    logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a plain error message with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	http.Error(w, msg, status)
}

// decodeJSON decodes the request body into v. On failure it writes a 400
// and returns false (caller should return).
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}
