package irt

import "math"

// ItemParams are the three-parameter-logistic parameters of one question
// instance. They are generated alongside the question and immutable after.
type ItemParams struct {
	Discrimination float64 // a, typically 0.2-2.0
	Difficulty     float64 // b, standard-normal scale
	GuessFloor     float64 // c in [0, 0.5], ~1/choice-count for multiple choice
}

// Response pairs an item with the observed outcome.
type Response struct {
	Item    ItemParams
	Correct bool
}

// BankItem is a selectable item in an adaptive-testing bank.
type BankItem struct {
	ID     string
	Params ItemParams
}

// ProbCorrect is the 3PL model: c + (1-c) / (1 + exp(-a(theta-b))).
func ProbCorrect(theta float64, item ItemParams) float64 {
	return item.GuessFloor + (1-item.GuessFloor)/(1+math.Exp(-item.Discrimination*(theta-item.Difficulty)))
}
