package generator

import (
	"math/rand"

	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
)

// Difficulty tiers map onto disjoint bands of the 3PL difficulty scale.
// Discrimination is drawn from the same band for every tier; the guess
// floor is fixed at chance level for four-option multiple choice.
var difficultyBands = map[string]struct{ bMin, bMax float64 }{
	"easy":   {-2.0, -0.8},
	"medium": {-0.5, 0.7},
	"hard":   {0.8, 2.2},
}

const (
	discriminationMin = 0.8
	discriminationMax = 1.6
	guessFloorChoice  = 0.25
)

// ItemForDifficulty draws calibrated item parameters for a difficulty tier.
// Unknown tiers fall back to medium.
func ItemForDifficulty(rng *rand.Rand, difficulty string) irt.ItemParams {
	band, ok := difficultyBands[difficulty]
	if !ok {
		band = difficultyBands["medium"]
	}
	return irt.ItemParams{
		Discrimination: discriminationMin + rng.Float64()*(discriminationMax-discriminationMin),
		Difficulty:     band.bMin + rng.Float64()*(band.bMax-band.bMin),
		GuessFloor:     guessFloorChoice,
	}
}
