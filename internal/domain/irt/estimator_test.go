package irt_test

import (
	"math"
	"testing"

	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
)

func easyItem() irt.ItemParams {
	return irt.ItemParams{Discrimination: 1.2, Difficulty: -1.0, GuessFloor: 0.25}
}

func hardItem() irt.ItemParams {
	return irt.ItemParams{Discrimination: 1.2, Difficulty: 1.5, GuessFloor: 0.25}
}

func TestProbCorrect_Bounds(t *testing.T) {
	item := easyItem()
	for _, theta := range []float64{-4, -1, 0, 2, 4} {
		p := irt.ProbCorrect(theta, item)
		if p < item.GuessFloor || p > 1 {
			t.Errorf("ProbCorrect(%v) = %v outside [c, 1]", theta, p)
		}
	}
	// At theta == b the logistic term is 1/2.
	atB := irt.ProbCorrect(item.Difficulty, item)
	want := item.GuessFloor + (1-item.GuessFloor)/2
	if math.Abs(atB-want) > 1e-9 {
		t.Errorf("ProbCorrect at b = %v, want %v", atB, want)
	}
}

func TestEstimateTheta_EmptyReturnsPrior(t *testing.T) {
	if got := irt.EstimateTheta(nil, 0); got != 0 {
		t.Errorf("EstimateTheta(nil, 0) = %v, want 0", got)
	}
	if got := irt.EstimateTheta(nil, 1.7); got != 1.7 {
		t.Errorf("EstimateTheta(nil, 1.7) = %v, want 1.7", got)
	}
	if got := irt.EstimateTheta(nil, -9); got != irt.ThetaMin {
		t.Errorf("EstimateTheta(nil, -9) = %v, want clamped to %v", got, irt.ThetaMin)
	}
}

func TestEstimateTheta_CorrectAnswersRaiseTheta(t *testing.T) {
	var responses []irt.Response
	for i := 0; i < 5; i++ {
		responses = append(responses, irt.Response{Item: hardItem(), Correct: true})
	}
	theta := irt.EstimateTheta(responses, 0)
	if theta <= 0 {
		t.Errorf("theta after 5 correct hard answers = %v, want > 0", theta)
	}

	for i := range responses {
		responses[i].Correct = false
	}
	theta = irt.EstimateTheta(responses, 0)
	if theta >= 0 {
		t.Errorf("theta after 5 wrong answers = %v, want < 0", theta)
	}
}

func TestEstimateTheta_MoreEvidenceMovesFurther(t *testing.T) {
	one := []irt.Response{{Item: hardItem(), Correct: true}}
	many := make([]irt.Response, 8)
	for i := range many {
		many[i] = irt.Response{Item: hardItem(), Correct: true}
	}
	if irt.EstimateTheta(many, 0) <= irt.EstimateTheta(one, 0) {
		t.Error("eight correct answers should imply higher theta than one")
	}
}

func TestEstimateTheta_AlwaysInRange(t *testing.T) {
	extreme := make([]irt.Response, 50)
	for i := range extreme {
		extreme[i] = irt.Response{
			Item:    irt.ItemParams{Discrimination: 2.0, Difficulty: -3, GuessFloor: 0},
			Correct: false,
		}
	}
	theta := irt.EstimateTheta(extreme, 0)
	if math.IsNaN(theta) || theta < irt.ThetaMin || theta > irt.ThetaMax {
		t.Errorf("theta = %v, want finite value in [%v, %v]", theta, irt.ThetaMin, irt.ThetaMax)
	}
}

func TestFisherInformation_PeaksNearDifficulty(t *testing.T) {
	item := irt.ItemParams{Discrimination: 1.5, Difficulty: 0.5, GuessFloor: 0.2}
	near := irt.FisherInformation(0.7, item)
	far := irt.FisherInformation(-3, item)
	if near <= far {
		t.Errorf("information near b (%v) should exceed information far away (%v)", near, far)
	}
}

func TestFisherInformation_EasyItemsCarryLittle(t *testing.T) {
	matched := irt.ItemParams{Discrimination: 1.0, Difficulty: 0, GuessFloor: 0.2}
	tooEasy := irt.ItemParams{Discrimination: 1.0, Difficulty: -2, GuessFloor: 0.2}
	if irt.FisherInformation(0, tooEasy) >= irt.FisherInformation(0, matched) {
		t.Error("an item far below theta should be less informative than a matched item")
	}
}

func TestStandardError_NoResponses(t *testing.T) {
	se := irt.StandardError(0, nil)
	if !math.IsInf(se, 1) {
		t.Errorf("StandardError with no responses = %v, want +Inf", se)
	}
}

func TestStandardError_ShrinksWithEvidence(t *testing.T) {
	one := []irt.Response{{Item: easyItem(), Correct: true}}
	four := make([]irt.Response, 4)
	for i := range four {
		four[i] = irt.Response{Item: easyItem(), Correct: true}
	}
	if irt.StandardError(0, four) >= irt.StandardError(0, one) {
		t.Error("standard error should shrink as responses accumulate")
	}
}

func TestThetaToScore_Endpoints(t *testing.T) {
	if got := irt.ThetaToScore(-4); got != 0 {
		t.Errorf("ThetaToScore(-4) = %d, want 0", got)
	}
	if got := irt.ThetaToScore(4); got != 100 {
		t.Errorf("ThetaToScore(4) = %d, want 100", got)
	}
	if got := irt.ThetaToScore(0); got != 50 {
		t.Errorf("ThetaToScore(0) = %d, want 50", got)
	}
	if got := irt.ThetaToScore(12); got != 100 {
		t.Errorf("ThetaToScore(12) = %d, want clamped 100", got)
	}
}
