package behavior

// Cheating-risk calibration: each behavioral rate is normalized against
// session length before weighting, and the weights sum to 1.
const (
	tabSwitchWeight = 0.3
	pasteWeight     = 0.3
	fastHardWeight  = 0.4

	// CheatingFlagThreshold is the score above which a session is flagged.
	CheatingFlagThreshold = 0.5
)

// CheatingResult is the session-wide risk breakdown.
type CheatingResult struct {
	Score         float64
	Flagged       bool
	TabSwitchRate float64
	PasteRate     float64
	FastHardRate  float64
}

// DetectCheating aggregates session signals into a cheating-risk score.
// An empty session (zero questions) scores zero rather than dividing by
// zero.
func DetectCheating(s Signals) CheatingResult {
	if s.TotalQuestions <= 0 {
		return CheatingResult{}
	}

	n := float64(s.TotalQuestions)
	res := CheatingResult{
		TabSwitchRate: clamp01(float64(s.TabSwitches) / n),
		PasteRate:     clamp01(float64(s.PasteEvents) / n),
		FastHardRate:  clamp01(float64(s.FastHardAnswers) / n),
	}
	res.Score = tabSwitchWeight*res.TabSwitchRate +
		pasteWeight*res.PasteRate +
		fastHardWeight*res.FastHardRate
	res.Flagged = res.Score > CheatingFlagThreshold
	return res
}
