// Package simulation generates synthetic learner histories. It drives the
// mastery engine over a scripted study schedule, producing the same log
// shape real sessions produce — useful for seeding demo data and for
// exercising the graph builder on realistic inputs.
package simulation

import (
	"math/rand"
	"time"

	"github.com/subashmuthub/Hacktivators/internal/domain/knowledgegraph"
	"github.com/subashmuthub/Hacktivators/internal/domain/mastery"
)

// Profile describes a synthetic learner.
type Profile struct {
	Concepts       []string // concepts studied
	Days           int      // length of the study window
	AnswersPerDay  int
	BaseAccuracy   float64 // probability of answering correctly at PInit
	AccuracySlope  float64 // added accuracy per unit of current mastery
	MeanResponseMs int
}

// DefaultProfile is a middling learner over a small programming curriculum.
func DefaultProfile() Profile {
	return Profile{
		Concepts:       []string{"variables", "operators", "conditionals", "loops", "arrays", "functions"},
		Days:           14,
		AnswersPerDay:  8,
		BaseAccuracy:   0.45,
		AccuracySlope:  0.5,
		MeanResponseMs: 24000,
	}
}

// GenerateLogs produces a synthetic answer history ending at end. The rand
// source is injected so callers get reproducible histories.
func GenerateLogs(rng *rand.Rand, p Profile, end time.Time) []knowledgegraph.SessionLog {
	if len(p.Concepts) == 0 || p.Days <= 0 || p.AnswersPerDay <= 0 {
		return nil
	}

	params := mastery.GalaxyParams()
	states := make(map[string]mastery.State, len(p.Concepts))

	start := end.AddDate(0, 0, -p.Days)
	var logs []knowledgegraph.SessionLog
	for day := 0; day < p.Days; day++ {
		dayStart := start.AddDate(0, 0, day)
		for i := 0; i < p.AnswersPerDay; i++ {
			concept := p.Concepts[rng.Intn(len(p.Concepts))]
			st, ok := states[concept]
			if !ok {
				st = params.NewState(dayStart)
			}

			pCorrect := p.BaseAccuracy + p.AccuracySlope*st.PMastered
			if pCorrect > 0.98 {
				pCorrect = 0.98
			}
			correct := rng.Float64() < pCorrect

			at := dayStart.Add(time.Duration(i) * 5 * time.Minute)
			params.Observe(&st, correct, at)
			states[concept] = st

			rt := p.MeanResponseMs/2 + rng.Intn(p.MeanResponseMs)
			logs = append(logs, knowledgegraph.SessionLog{
				Concept:        concept,
				Category:       "programming",
				IsCorrect:      correct,
				ResponseTimeMs: rt,
				MasteryPL:      st.PMastered,
				Timestamp:      at,
			})
		}
	}
	return logs
}
