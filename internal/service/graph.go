// internal/service/graph.go
package service

import (
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/subashmuthub/Hacktivators/internal/domain/knowledgegraph"
	"github.com/subashmuthub/Hacktivators/internal/store"
)

// GraphService builds knowledge graphs either from logs posted by the
// caller or from a learner's stored history. Per-learner graphs are cached
// until the next recorded answer; the forgetting decay inside a cached
// graph is therefore at most as stale as the learner is inactive, which is
// exactly when nobody is looking at it.
type GraphService struct {
	builder *knowledgegraph.Builder
	store   store.Store
	cache   *lru.Cache[string, *knowledgegraph.Graph]
	window  int
	logger  *slog.Logger
}

// NewGraphService creates a GraphService. window bounds how much stored
// history feeds a per-learner graph; cacheSize bounds the learner cache.
func NewGraphService(b *knowledgegraph.Builder, s store.Store, cacheSize, window int, logger *slog.Logger) (*GraphService, error) {
	cache, err := lru.New[string, *knowledgegraph.Graph](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create graph cache: %w", err)
	}
	return &GraphService{
		builder: b,
		store:   s,
		cache:   cache,
		window:  window,
		logger:  logger,
	}, nil
}

// BuildFromLogs builds a graph from caller-supplied logs. Stateless; the
// cache is not consulted.
func (gs *GraphService) BuildFromLogs(logs []knowledgegraph.SessionLog, now time.Time) *knowledgegraph.Graph {
	return gs.builder.Build(logs, now)
}

// BuildForLearner builds (or returns the cached) graph over the learner's
// recent stored history.
func (gs *GraphService) BuildForLearner(learnerID string, now time.Time) (*knowledgegraph.Graph, error) {
	if g, ok := gs.cache.Get(learnerID); ok {
		return g, nil
	}

	events, err := gs.store.ListAnswers(learnerID, gs.window)
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", learnerID, err)
	}

	logs := make([]knowledgegraph.SessionLog, len(events))
	for i, ev := range events {
		logs[i] = knowledgegraph.SessionLog{
			Concept:        ev.Concept,
			Category:       ev.Category,
			IsCorrect:      ev.IsCorrect,
			ResponseTimeMs: int(ev.ResponseTimeMs),
			MasteryPL:      ev.MasteryPL,
			Timestamp:      ev.CreatedAt,
		}
	}

	g := gs.builder.Build(logs, now)
	gs.cache.Add(learnerID, g)
	gs.logger.Debug("graph rebuilt", "learner_id", learnerID, "events", len(events), "nodes", g.Summary.TotalNodes)
	return g, nil
}

// Invalidate drops the cached graph after the learner's history changes.
func (gs *GraphService) Invalidate(learnerID string) {
	gs.cache.Remove(learnerID)
}
