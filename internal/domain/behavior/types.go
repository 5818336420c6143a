package behavior

import "github.com/subashmuthub/Hacktivators/internal/domain/irt"

// Response is one answered question as seen by the analyzer.
type Response struct {
	QuestionID     string
	SelectedOption int
	Correct        bool
	ResponseTimeMs int
	Difficulty     string // "easy", "medium", "hard"
	Concept        string
	Item           *irt.ItemParams // nil when the generator supplied no parameters
}

// Signals are the session-wide behavioral counters accumulated by client
// instrumentation.
type Signals struct {
	TabSwitches     int
	PasteEvents     int
	FastHardAnswers int
	TotalQuestions  int
}
