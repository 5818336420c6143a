package generator

import (
	"context"

	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
)

// QuestionRequest describes what kind of question the caller wants.
type QuestionRequest struct {
	Concept    string
	Difficulty string // "easy", "medium", "hard"

	// PreviousQuestions are question texts already shown to the learner,
	// passed to the model so it avoids repeats.
	PreviousQuestions []string

	// PriorExamSummary optionally describes the learner's recent
	// performance so the model can target weak spots.
	PriorExamSummary string
}

// GeneratedQuestion is a single multiple-choice question with its
// calibrated item parameters attached.
type GeneratedQuestion struct {
	Question     string          `json:"question"`
	Options      []string        `json:"options"`
	CorrectIndex int             `json:"correctIndex"`
	Explanation  string          `json:"explanation"`
	Hint         string          `json:"hint,omitempty"`
	Item         *irt.ItemParams `json:"item,omitempty"`
}

// Generator produces quiz questions.
// Implementations may call an LLM or return canned results (for tests).
type Generator interface {
	GenerateQuestion(ctx context.Context, req QuestionRequest) (*GeneratedQuestion, error)
}
