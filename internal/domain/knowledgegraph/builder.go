package knowledgegraph

import (
	"math"
	"sort"
	"time"

	"github.com/subashmuthub/Hacktivators/internal/curriculum"
	"github.com/subashmuthub/Hacktivators/internal/domain/mastery"
)

// Config holds the graph builder's calibration constants.
type Config struct {
	// Edge weight mix; the three must sum to 1.
	PrereqWeight    float64
	CoOccurWeight   float64
	ConfusionWeight float64

	// EdgeThreshold is the minimum combined weight for an edge to
	// materialize; the graph is sparse by construction.
	EdgeThreshold float64

	// Type thresholds on the prerequisite component alone.
	PrereqStrong float64 // > this → "prerequisite"
	PrereqWeak   float64 // > this → "application", else "similar"

	// MaxIterations caps the community-detection loop.
	MaxIterations int

	// LoadCeilingMs normalizes mean response time into cognitive load.
	LoadCeilingMs float64

	// ViewStabilityDays is the retention horizon used when decaying
	// aggregate mastery for display. The per-learner stability lives with
	// the mastery engine; the graph view uses one fixed horizon so nodes
	// are comparable.
	ViewStabilityDays float64
}

// DefaultConfig returns the production calibration.
func DefaultConfig() Config {
	return Config{
		PrereqWeight:      0.5,
		CoOccurWeight:     0.3,
		ConfusionWeight:   0.2,
		EdgeThreshold:     0.05,
		PrereqStrong:      0.7,
		PrereqWeak:        0.3,
		MaxIterations:     20,
		LoadCeilingMs:     60000,
		ViewStabilityDays: 14,
	}
}

// Builder turns flat answer logs into a weighted, clustered concept graph.
// It holds only configuration and the curriculum table; Build itself is a
// pure function of its arguments and safe for concurrent use.
type Builder struct {
	cfg   Config
	table *curriculum.Table
}

// NewBuilder creates a Builder over the given prerequisite table.
func NewBuilder(table *curriculum.Table, cfg Config) *Builder {
	return &Builder{cfg: cfg, table: table}
}

// Build aggregates the logs into nodes, materializes qualifying edges, and
// partitions the result into communities. now anchors the forgetting decay.
func (b *Builder) Build(logs []SessionLog, now time.Time) *Graph {
	nodes := b.aggregateNodes(logs, now)
	ids := make([]string, len(nodes))
	for i := range nodes {
		ids[i] = nodes[i].ID
	}

	edges := b.buildEdges(logs, ids)

	communities := clusterCommunities(ids, edges, b.cfg.MaxIterations)
	communitySet := make(map[int]bool)
	for i := range nodes {
		nodes[i].Community = communities[nodes[i].ID]
		communitySet[nodes[i].Community] = true
	}

	g := &Graph{Nodes: nodes, Edges: edges}
	g.Summary = b.summarize(nodes, edges, len(communitySet))
	return g
}

type conceptAgg struct {
	id           string
	category     string
	masterySum   float64
	responseSum  float64
	observations int
	lastSeen     time.Time
}

func (b *Builder) aggregateNodes(logs []SessionLog, now time.Time) []Node {
	aggs := make(map[string]*conceptAgg)
	for _, l := range logs {
		id := curriculum.Normalize(l.Concept)
		if id == "" {
			continue
		}
		a, ok := aggs[id]
		if !ok {
			a = &conceptAgg{id: id}
			aggs[id] = a
		}
		a.masterySum += l.MasteryPL
		a.responseSum += float64(l.ResponseTimeMs)
		a.observations++
		if l.Timestamp.After(a.lastSeen) {
			a.lastSeen = l.Timestamp
			a.category = l.Category
		}
	}

	ids := make([]string, 0, len(aggs))
	for id := range aggs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]Node, 0, len(aggs))
	for _, id := range ids {
		a := aggs[id]
		n := float64(a.observations)
		avgMastery := a.masterySum / n

		days := now.Sub(a.lastSeen).Hours() / 24
		if days < 0 {
			days = 0
		}
		st := mastery.State{PMastered: avgMastery, Stability: b.cfg.ViewStabilityDays}
		retention := mastery.ForgettingDecay(st, days)
		effective := mastery.EffectiveMastery(st, days)

		load := (a.responseSum / n) / b.cfg.LoadCeilingMs
		if load > 1 {
			load = 1
		}

		nodes = append(nodes, Node{
			ID:               id,
			Category:         a.category,
			Mastery:          avgMastery,
			EffectiveMastery: effective,
			Status:           nodeStatus(effective, load, 1-retention),
			CognitiveLoad:    load,
			DaysSinceReview:  days,
			Observations:     a.observations,
			VisualWeight:     visualWeight(effective, a.observations),
		})
	}
	return nodes
}

// nodeStatus applies the display thresholds in branch-priority order:
// mastered > proficient > overloaded > fading > learning > developing.
func nodeStatus(effective, load, forgetting float64) string {
	switch {
	case effective >= 0.9:
		return StatusMastered
	case effective >= 0.75:
		return StatusProficient
	case load > 0.8:
		return StatusOverloaded
	case forgetting > 0.5:
		return StatusFading
	case effective >= 0.5:
		return StatusLearning
	default:
		return StatusDeveloping
	}
}

// visualWeight is a display size hint with no semantic meaning.
func visualWeight(effective float64, observations int) float64 {
	return math.Round((10+20*effective+2*math.Sqrt(float64(observations)))*100) / 100
}

func (b *Builder) summarize(nodes []Node, edges []Edge, communities int) Summary {
	s := Summary{
		TotalNodes:  len(nodes),
		TotalEdges:  len(edges),
		Communities: communities,
	}
	var sum float64
	for _, n := range nodes {
		sum += n.Mastery
		switch n.Status {
		case StatusMastered:
			s.MasteredCount++
		case StatusFading:
			s.FadingCount++
		}
	}
	if len(nodes) > 0 {
		s.AvgMastery = sum / float64(len(nodes))
	}
	return s
}
