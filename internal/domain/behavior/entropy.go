package behavior

import "math"

// MaxOptionEntropy is the entropy of a uniform choice over four options,
// in bits. An empty selection history returns this maximum: with no data we
// assume the worst case rather than claiming certainty.
const MaxOptionEntropy = 2.0

// OptionEntropy is the Shannon entropy, in bits, of the empirical
// distribution of selected option indices.
func OptionEntropy(selections []int) float64 {
	if len(selections) == 0 {
		return MaxOptionEntropy
	}

	counts := make(map[int]int, 4)
	for _, s := range selections {
		counts[s]++
	}

	n := float64(len(selections))
	var entropy float64
	for _, c := range counts {
		p := float64(c) / n
		entropy -= p * math.Log2(p)
	}
	return entropy
}
