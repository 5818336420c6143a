package store

import (
	"errors"
	"time"

	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
	"github.com/subashmuthub/Hacktivators/internal/domain/mastery"
)

var ErrNotFound = errors.New("not found")

// AnswerEvent is one appended answer observation. Events are never updated
// or deleted; every view is rebuilt from the log.
type AnswerEvent struct {
	ID             string
	LearnerID      string
	Concept        string
	Category       string
	IsCorrect      bool
	ResponseTimeMs int64
	MasteryPL      float64         // mastery estimate at answer time
	Item           *irt.ItemParams // nil when the question carried no parameters
	CreatedAt      time.Time
}

// Store is the persistence boundary: an append-only answer log plus the
// per-(learner, concept) mastery states.
type Store interface {
	// AppendAnswer adds an event to the log.
	AppendAnswer(ev AnswerEvent) error

	// ListAnswers returns the learner's most recent events in
	// chronological order, bounded to limit (0 means the default window).
	ListAnswers(learnerID string, limit int) ([]AnswerEvent, error)

	// GetMasteryState returns the state for a learner-concept pair, or
	// ErrNotFound before the first observation.
	GetMasteryState(learnerID, concept string) (mastery.State, error)

	// SaveMasteryState upserts the state for a learner-concept pair.
	// Callers must serialize the read-modify-write per pair.
	SaveMasteryState(learnerID, concept string, st mastery.State) error

	// ListMasteryStates returns all of a learner's states keyed by concept.
	ListMasteryStates(learnerID string) (map[string]mastery.State, error)

	Close() error
}
