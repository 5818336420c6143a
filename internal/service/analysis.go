// internal/service/analysis.go
package service

import (
	"log/slog"
	"math"

	"github.com/subashmuthub/Hacktivators/internal/domain/behavior"
	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
	"github.com/subashmuthub/Hacktivators/internal/domain/mastery"
	"github.com/subashmuthub/Hacktivators/internal/worker"
)

// AnalysisRequest is one session's worth of behavioral evidence.
type AnalysisRequest struct {
	Mode      string // "practice" or "exam"
	Responses []behavior.Response
	Signals   behavior.Signals

	// Concept filters the mastery trajectory and wrong-streak to one
	// concept; empty means consider every response.
	Concept string

	// CurrentPL seeds the mastery trajectory; nil starts from the BKT prior.
	CurrentPL *float64

	// Confidence is the learner's self-reported 0-1 confidence on the
	// latest answer, nil when not collected.
	Confidence *float64

	// TimeRemainingSec is the session time left; nil means untimed.
	TimeRemainingSec *float64
}

// GuessAnalysis pairs one response with its credibility verdict.
type GuessAnalysis struct {
	QuestionID   string
	Probability  float64
	SpeedFlag    bool
	PatternFlag  bool
	MismatchFlag bool
	Reasons      []string
}

// AbilitySummary is the session-wide ability and mastery readout.
type AbilitySummary struct {
	Theta float64
	Score int

	// StandardError is nil when no response carried item parameters,
	// meaning the ability is still unknown rather than precisely zero.
	StandardError *float64

	// ItemResponses counts responses that entered the ability estimate.
	ItemResponses int

	Mastery      float64
	MasteryDelta float64
	WrongStreak  int
}

// AnalysisResult combines every analyzer's output for one session.
type AnalysisResult struct {
	Guessing     []GuessAnalysis
	Ability      AbilitySummary
	Cheating     behavior.CheatingResult
	Intervention behavior.InterventionDecision
}

// AnalysisService orchestrates the behavioral analyzers over a posted
// session. It holds only calibration and is safe for concurrent use.
type AnalysisService struct {
	guessCfg  behavior.GuessConfig
	bktParams mastery.BKTParams
	workers   int
	logger    *slog.Logger
}

// NewAnalysisService creates an AnalysisService with the production
// calibration. workers bounds the per-response guessing fan-out.
func NewAnalysisService(workers int, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		guessCfg:  behavior.DefaultGuessConfig(),
		bktParams: mastery.DefaultParams(),
		workers:   workers,
		logger:    logger,
	}
}

// Analyze runs guessing detection per response, estimates ability over the
// responses that carry item parameters, scores cheating risk, and produces
// an intervention recommendation. Every float is rounded to 4 decimals for
// transport stability.
func (as *AnalysisService) Analyze(req AnalysisRequest) AnalysisResult {
	theta, itemCount := as.estimateAbility(req.Responses)

	guessing := as.detectGuessing(req.Responses, theta)

	masteryNow, masteryDelta := as.masteryTrajectory(req)
	streak := wrongStreak(req.Responses, req.Concept)

	cheating := behavior.DetectCheating(req.Signals)
	cheating.Score = round4(cheating.Score)
	cheating.TabSwitchRate = round4(cheating.TabSwitchRate)
	cheating.PasteRate = round4(cheating.PasteRate)
	cheating.FastHardRate = round4(cheating.FastHardRate)

	params := behavior.InterventionParams{
		Mode:             req.Mode,
		Mastery:          masteryNow,
		MasteryDelta:     masteryDelta,
		WrongStreak:      streak,
		Confidence:       req.Confidence,
		TimeRemainingSec: -1,
	}
	if req.TimeRemainingSec != nil {
		params.TimeRemainingSec = *req.TimeRemainingSec
	}
	if n := len(req.Responses); n > 0 {
		params.Correct = req.Responses[n-1].Correct
	}
	if n := len(guessing); n > 0 {
		params.GuessProbability = guessing[n-1].Probability
	}

	result := AnalysisResult{
		Guessing:     guessing,
		Cheating:     cheating,
		Intervention: behavior.ShouldTriggerIntervention(params),
		Ability: AbilitySummary{
			Theta:         round4(theta),
			Score:         irt.ThetaToScore(theta),
			ItemResponses: itemCount,
			Mastery:       round4(masteryNow),
			MasteryDelta:  round4(masteryDelta),
			WrongStreak:   streak,
		},
	}

	if itemCount > 0 {
		se := irt.StandardError(theta, itemResponses(req.Responses))
		if !math.IsInf(se, 1) {
			se = round4(se)
			result.Ability.StandardError = &se
		}
	}
	return result
}

// estimateAbility runs the EAP estimate over the responses that carry
// item parameters; responses without parameters are excluded rather than
// guessed at.
func (as *AnalysisService) estimateAbility(responses []behavior.Response) (float64, int) {
	items := itemResponses(responses)
	return irt.EstimateTheta(items, 0), len(items)
}

func itemResponses(responses []behavior.Response) []irt.Response {
	var items []irt.Response
	for _, r := range responses {
		if r.Item == nil {
			continue
		}
		items = append(items, irt.Response{Item: *r.Item, Correct: r.Correct})
	}
	return items
}

// detectGuessing fans the per-response detector out on the worker pool.
// Each job sees the history up to and including its own response, so the
// results are independent and order-preserving.
func (as *AnalysisService) detectGuessing(responses []behavior.Response, theta float64) []GuessAnalysis {
	jobs := make([]worker.Job[GuessAnalysis], len(responses))
	for i := range responses {
		i := i
		jobs[i] = func() GuessAnalysis {
			res := as.guessCfg.DetectGuessing(responses[i], responses[:i+1], theta)
			return GuessAnalysis{
				QuestionID:   responses[i].QuestionID,
				Probability:  round4(res.Probability),
				SpeedFlag:    res.SpeedFlag,
				PatternFlag:  res.PatternFlag,
				MismatchFlag: res.MismatchFlag,
				Reasons:      res.Reasons,
			}
		}
	}
	return worker.Map(as.workers, jobs)
}

// masteryTrajectory replays the BKT update over the session's responses
// (optionally filtered to one concept) and returns the final estimate and
// the delta of the last update step.
func (as *AnalysisService) masteryTrajectory(req AnalysisRequest) (float64, float64) {
	p := as.bktParams.PInit
	if req.CurrentPL != nil {
		p = *req.CurrentPL
	}

	var delta float64
	for _, r := range req.Responses {
		if req.Concept != "" && r.Concept != req.Concept {
			continue
		}
		next := as.bktParams.UpdateMastery(p, r.Correct)
		delta = next - p
		p = next
	}
	return p, delta
}

// wrongStreak counts consecutive wrong answers at the end of the session,
// optionally restricted to one concept.
func wrongStreak(responses []behavior.Response, concept string) int {
	streak := 0
	for i := len(responses) - 1; i >= 0; i-- {
		if concept != "" && responses[i].Concept != concept {
			continue
		}
		if responses[i].Correct {
			break
		}
		streak++
	}
	return streak
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
