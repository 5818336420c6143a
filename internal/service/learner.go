// internal/service/learner.go
package service

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/subashmuthub/Hacktivators/internal/curriculum"
	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
	"github.com/subashmuthub/Hacktivators/internal/domain/mastery"
	"github.com/subashmuthub/Hacktivators/internal/id"
	"github.com/subashmuthub/Hacktivators/internal/store"
)

// AnswerInput is one answered question as posted by the client.
type AnswerInput struct {
	Concept        string
	Category       string
	Correct        bool
	ResponseTimeMs int64
	Item           *irt.ItemParams // nil when the question carried no parameters
}

// AnswerOutcome is the mastery readout after recording an answer.
type AnswerOutcome struct {
	Concept          string
	State            mastery.State
	EffectiveMastery float64
}

// ConceptMastery is one concept's stored state with decay applied at read
// time.
type ConceptMastery struct {
	Concept          string
	State            mastery.State
	EffectiveMastery float64
}

// AbilityReadout is a learner's ability estimate over stored history.
type AbilityReadout struct {
	Theta         float64
	Score         int
	StandardError *float64 // nil when no stored response carried item params
	ItemResponses int
}

// LearnerService owns the per-learner write path: appending answer events
// and the read-modify-write mastery update. The mutex serializes updates;
// the engines themselves are pure.
type LearnerService struct {
	store  store.Store
	params mastery.BKTParams
	graphs *GraphService
	logger *slog.Logger

	mu sync.Mutex
}

// NewLearnerService creates a LearnerService using the given BKT preset.
func NewLearnerService(s store.Store, params mastery.BKTParams, graphs *GraphService, logger *slog.Logger) *LearnerService {
	return &LearnerService{
		store:  s,
		params: params,
		graphs: graphs,
		logger: logger,
	}
}

// RecordAnswer applies one observation: update the concept's mastery state,
// append the event to the answer log, and invalidate the learner's cached
// graph.
func (ls *LearnerService) RecordAnswer(learnerID string, in AnswerInput, now time.Time) (AnswerOutcome, error) {
	concept := curriculum.Normalize(in.Concept)
	if concept == "" {
		return AnswerOutcome{}, fmt.Errorf("empty concept")
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	st, err := ls.store.GetMasteryState(learnerID, concept)
	if err == store.ErrNotFound {
		st = ls.params.NewState(now)
	} else if err != nil {
		return AnswerOutcome{}, err
	}

	ls.params.Observe(&st, in.Correct, now)

	if err := ls.store.SaveMasteryState(learnerID, concept, st); err != nil {
		return AnswerOutcome{}, err
	}

	ev := store.AnswerEvent{
		ID:             id.GenerateID(),
		LearnerID:      learnerID,
		Concept:        concept,
		Category:       in.Category,
		IsCorrect:      in.Correct,
		ResponseTimeMs: in.ResponseTimeMs,
		MasteryPL:      st.PMastered,
		Item:           in.Item,
		CreatedAt:      now,
	}
	if err := ls.store.AppendAnswer(ev); err != nil {
		return AnswerOutcome{}, err
	}

	ls.graphs.Invalidate(learnerID)
	ls.logger.Info("answer recorded",
		"learner_id", learnerID,
		"concept", concept,
		"correct", in.Correct,
		"mastery", st.PMastered,
	)

	return AnswerOutcome{
		Concept:          concept,
		State:            st,
		EffectiveMastery: mastery.EffectiveMastery(st, st.DaysSince(now)),
	}, nil
}

// MasteryForLearner returns every stored concept state with forgetting
// decay applied as of now, sorted by concept for stable responses.
func (ls *LearnerService) MasteryForLearner(learnerID string, now time.Time) ([]ConceptMastery, error) {
	states, err := ls.store.ListMasteryStates(learnerID)
	if err != nil {
		return nil, err
	}

	out := make([]ConceptMastery, 0, len(states))
	for concept, st := range states {
		out = append(out, ConceptMastery{
			Concept:          concept,
			State:            st,
			EffectiveMastery: mastery.EffectiveMastery(st, st.DaysSince(now)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Concept < out[j].Concept })
	return out, nil
}

// HistoryForLearner returns the learner's recent answer events in
// chronological order.
func (ls *LearnerService) HistoryForLearner(learnerID string, window int) ([]store.AnswerEvent, error) {
	return ls.store.ListAnswers(learnerID, window)
}

// AbilityForLearner estimates theta over the learner's stored history.
// Events without item parameters are excluded from the estimate.
func (ls *LearnerService) AbilityForLearner(learnerID string, window int) (AbilityReadout, error) {
	events, err := ls.store.ListAnswers(learnerID, window)
	if err != nil {
		return AbilityReadout{}, err
	}

	var responses []irt.Response
	for _, ev := range events {
		if ev.Item == nil {
			continue
		}
		responses = append(responses, irt.Response{Item: *ev.Item, Correct: ev.IsCorrect})
	}

	theta := irt.EstimateTheta(responses, 0)
	readout := AbilityReadout{
		Theta:         round4(theta),
		Score:         irt.ThetaToScore(theta),
		ItemResponses: len(responses),
	}
	if len(responses) > 0 {
		if se := irt.StandardError(theta, responses); !math.IsInf(se, 1) {
			se = round4(se)
			readout.StandardError = &se
		}
	}
	return readout, nil
}
