package mastery

// BKTParams holds the Bayesian knowledge tracing calibration constants.
// These are model parameters, not tunables per request: pick one preset per
// deployment context and keep it fixed so mastery trajectories stay
// comparable over time.
type BKTParams struct {
	Slip    float64 // P(wrong | concept known)
	Guess   float64 // P(correct | concept unknown)
	PLearn  float64 // learning-transition probability applied after each observation
	PInit   float64 // prior for a concept never seen before
	Epsilon float64 // clamp band keeping PMastered away from the absorbing states 0 and 1
}

// DefaultParams is the calibration used for the exam/answer trajectory.
func DefaultParams() BKTParams {
	return BKTParams{
		Slip:    0.10,
		Guess:   0.20,
		PLearn:  0.30,
		PInit:   0.30,
		Epsilon: 0.001,
	}
}

// GalaxyParams is the slower calibration used for the concept-galaxy view,
// where mastery should build over many sessions rather than within one.
func GalaxyParams() BKTParams {
	p := DefaultParams()
	p.PLearn = 0.09
	return p
}

// UpdateMastery folds one observation into the mastery probability:
// Bayesian posterior under the slip/guess model, then the learning
// transition. The result is clamped to [Epsilon, 1-Epsilon] so the
// recursion stays numerically well-defined forever.
func (p BKTParams) UpdateMastery(prev float64, correct bool) float64 {
	prev = clamp(prev, p.Epsilon, 1-p.Epsilon)

	var posterior float64
	if correct {
		pCorrect := prev*(1-p.Slip) + (1-prev)*p.Guess
		if pCorrect < p.Epsilon {
			pCorrect = p.Epsilon
		}
		posterior = prev * (1 - p.Slip) / pCorrect
	} else {
		pWrong := prev*p.Slip + (1-prev)*(1-p.Guess)
		if pWrong < p.Epsilon {
			pWrong = p.Epsilon
		}
		posterior = prev * p.Slip / pWrong
	}

	next := posterior + (1-posterior)*p.PLearn
	return clamp(next, p.Epsilon, 1-p.Epsilon)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
