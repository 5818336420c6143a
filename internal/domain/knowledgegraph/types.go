package knowledgegraph

import "time"

// SessionLog is one historical answer event as consumed by the builder.
type SessionLog struct {
	Concept        string
	Category       string
	IsCorrect      bool
	ResponseTimeMs int
	MasteryPL      float64 // mastery estimate recorded at answer time
	Timestamp      time.Time
}

// Node is an aggregated concept with its visual state. Community ids are
// stable only within one clustering run.
type Node struct {
	ID               string
	Category         string
	Mastery          float64
	EffectiveMastery float64
	Community        int
	Status           string
	CognitiveLoad    float64
	DaysSinceReview  float64
	Observations     int
	VisualWeight     float64
}

// Edge is an undirected relation between two concepts. Source sorts before
// Target. The three component scores are each in [0,1] and combine into
// Weight with fixed mixing weights that sum to 1.
type Edge struct {
	Source       string
	Target       string
	Weight       float64
	Prerequisite float64
	CoOccurrence float64
	Confusion    float64
	Type         string // "prerequisite", "application", "similar"
}

// Summary gives the headline counts for a built graph.
type Summary struct {
	TotalNodes    int
	TotalEdges    int
	Communities   int
	MasteredCount int
	FadingCount   int
	AvgMastery    float64
}

// Graph is the rebuilt-per-request view over a learner's history. It is not
// a system of record.
type Graph struct {
	Nodes   []Node
	Edges   []Edge
	Summary Summary
}

// Node status labels, in branch-priority order.
const (
	StatusMastered   = "mastered"
	StatusProficient = "proficient"
	StatusOverloaded = "overloaded"
	StatusFading     = "fading"
	StatusLearning   = "learning"
	StatusDeveloping = "developing"
)
