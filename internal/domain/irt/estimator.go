package irt

import "math"

const (
	// ThetaMin and ThetaMax bound the latent ability scale.
	ThetaMin = -4.0
	ThetaMax = 4.0

	// gridPoints is the quadrature resolution over [ThetaMin, ThetaMax].
	gridPoints = 61

	// massFloor guards against a posterior that underflows to nothing
	// (degenerate all-wrong/all-right sequences with no grid support).
	massFloor = 1e-12
)

// EstimateTheta computes the Expected A Posteriori ability estimate from the
// full response history: likelihood of the observed sequence at each grid
// point, weighted by a standard-normal prior, normalized. With no responses,
// or when the posterior mass underflows, the prior estimate is returned
// unchanged rather than a NaN.
func EstimateTheta(responses []Response, priorTheta float64) float64 {
	if len(responses) == 0 {
		return ClampTheta(priorTheta)
	}

	step := (ThetaMax - ThetaMin) / float64(gridPoints-1)
	var mass, weighted float64
	for i := 0; i < gridPoints; i++ {
		theta := ThetaMin + float64(i)*step
		// Standard-normal prior density; the 1/sqrt(2π) constant cancels
		// in the normalization.
		post := math.Exp(-theta * theta / 2)
		for _, r := range responses {
			p := ProbCorrect(theta, r.Item)
			if r.Correct {
				post *= p
			} else {
				post *= 1 - p
			}
		}
		mass += post
		weighted += theta * post
	}

	if mass < massFloor {
		return ClampTheta(priorTheta)
	}
	return ClampTheta(weighted / mass)
}

// FisherInformation is the closed-form 3PL item information
// a²(1-P)(P-c)² / ((1-c)²·P). Returns 0 when the denominator underflows.
func FisherInformation(theta float64, item ItemParams) float64 {
	p := ProbCorrect(theta, item)
	denom := (1 - item.GuessFloor) * (1 - item.GuessFloor) * p
	if denom < massFloor {
		return 0
	}
	num := item.Discrimination * item.Discrimination * (1 - p) * (p - item.GuessFloor) * (p - item.GuessFloor)
	return num / denom
}

// StandardError is 1/sqrt(total information) over the answered items.
// With no information yet the ability is unknown, not zero: +Inf.
func StandardError(theta float64, responses []Response) float64 {
	var total float64
	for _, r := range responses {
		total += FisherInformation(theta, r.Item)
	}
	if total < massFloor {
		return math.Inf(1)
	}
	return 1 / math.Sqrt(total)
}

// ThetaToScore rescales theta to the human-facing 0-100 scale.
func ThetaToScore(theta float64) int {
	theta = ClampTheta(theta)
	return int(math.Round((theta - ThetaMin) / (ThetaMax - ThetaMin) * 100))
}

// ClampTheta bounds a raw ability value to the supported scale.
func ClampTheta(theta float64) float64 {
	if theta < ThetaMin {
		return ThetaMin
	}
	if theta > ThetaMax {
		return ThetaMax
	}
	return theta
}
