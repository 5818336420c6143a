package behavior

import (
	"fmt"
	"math"

	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
)

// GuessConfig holds the guessing-detector calibration constants.
type GuessConfig struct {
	// Flag weights and the sigmoid offset. The probability is
	// sigmoid(speed·ws + pattern·wp + mismatch·wm + offset).
	SpeedWeight    float64
	PatternWeight  float64
	MismatchWeight float64
	Offset         float64

	// ExpectedTimeMs maps a difficulty tier to the expected response time.
	ExpectedTimeMs map[string]float64
	// TimeSigmaMs is the fixed spread used for the speed z-score.
	TimeSigmaMs float64
	// SpeedZThreshold flags answers faster than expected by this many sigmas.
	SpeedZThreshold float64

	// PatternRunLength flags this many identical consecutive selections.
	PatternRunLength int
	// EntropyWindow and EntropyThresholdBits flag low selection entropy
	// over the trailing window.
	EntropyWindow        int
	EntropyThresholdBits float64

	// MismatchProbability flags correct answers the 3PL model priced below
	// this probability for the learner.
	MismatchProbability float64
}

// DefaultGuessConfig returns the production calibration.
func DefaultGuessConfig() GuessConfig {
	return GuessConfig{
		SpeedWeight:    1.2,
		PatternWeight:  1.0,
		MismatchWeight: 0.8,
		Offset:         -1.5,
		ExpectedTimeMs: map[string]float64{
			"easy":   10000,
			"medium": 25000,
			"hard":   40000,
		},
		TimeSigmaMs:          8000,
		SpeedZThreshold:      2.5,
		PatternRunLength:     4,
		EntropyWindow:        10,
		EntropyThresholdBits: 0.5,
		MismatchProbability:  0.3,
	}
}

// GuessResult is the per-answer credibility verdict.
type GuessResult struct {
	Probability  float64
	SpeedFlag    bool
	PatternFlag  bool
	MismatchFlag bool
	Reasons      []string
}

// DetectGuessing estimates the probability that the latest response was a
// guess rather than genuine evidence of knowledge. history contains the
// session's responses up to and including resp; theta is the learner's
// current ability estimate (used only by the mismatch flag, which is
// skipped when the item carries no parameters).
func (cfg GuessConfig) DetectGuessing(resp Response, history []Response, theta float64) GuessResult {
	var res GuessResult

	// Speed: response far faster than the tier's expected time.
	if expected, ok := cfg.ExpectedTimeMs[resp.Difficulty]; ok && cfg.TimeSigmaMs > 0 {
		z := (expected - float64(resp.ResponseTimeMs)) / cfg.TimeSigmaMs
		if z > cfg.SpeedZThreshold {
			res.SpeedFlag = true
			res.Reasons = append(res.Reasons, fmt.Sprintf(
				"answered a %s question in %dms against an expected %.0fms",
				resp.Difficulty, resp.ResponseTimeMs, expected))
		}
	}

	// Pattern: a run of identical selections, or low entropy over the
	// trailing window.
	selections := make([]int, 0, len(history))
	for _, h := range history {
		selections = append(selections, h.SelectedOption)
	}
	if run := trailingRun(selections); run >= cfg.PatternRunLength {
		res.PatternFlag = true
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"selected the same option %d times in a row", run))
	} else if len(selections) >= cfg.EntropyWindow {
		window := selections[len(selections)-cfg.EntropyWindow:]
		if e := OptionEntropy(window); e < cfg.EntropyThresholdBits {
			res.PatternFlag = true
			res.Reasons = append(res.Reasons, fmt.Sprintf(
				"selection entropy %.2f bits over the last %d answers", e, cfg.EntropyWindow))
		}
	}

	// Mismatch: the ability model priced this correct answer as unlikely.
	if resp.Correct && resp.Item != nil {
		if p := irt.ProbCorrect(theta, *resp.Item); p < cfg.MismatchProbability {
			res.MismatchFlag = true
			res.Reasons = append(res.Reasons, fmt.Sprintf(
				"correct despite a predicted %.0f%% chance at current ability", p*100))
		}
	}

	sum := cfg.Offset
	if res.SpeedFlag {
		sum += cfg.SpeedWeight
	}
	if res.PatternFlag {
		sum += cfg.PatternWeight
	}
	if res.MismatchFlag {
		sum += cfg.MismatchWeight
	}
	res.Probability = clamp01(sigmoid(sum))
	return res
}

// trailingRun returns the length of the run of identical values at the end
// of the slice.
func trailingRun(selections []int) int {
	if len(selections) == 0 {
		return 0
	}
	last := selections[len(selections)-1]
	run := 0
	for i := len(selections) - 1; i >= 0 && selections[i] == last; i-- {
		run++
	}
	return run
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
