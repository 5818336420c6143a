package behavior

// InterventionParams carries the already-computed signals the rule engine
// decides on. Nothing here is recomputed; the engine only scores.
type InterventionParams struct {
	Mode             string  // "practice" or "exam"
	Correct          bool
	Mastery          float64 // current mastery estimate for the concept
	MasteryDelta     float64 // change from the previous update (negative on drop)
	WrongStreak      int     // consecutive wrong answers on this concept
	GuessProbability float64
	Confidence       *float64 // self-reported 0-1, nil when not collected
	TimeRemainingSec float64  // remaining session time; <0 means untimed
}

// InterventionDecision is the rule engine's verdict.
type InterventionDecision struct {
	Trigger  bool
	Score    int
	Priority string // "none", "low", "medium", "high"
	Reasons  []string
}

// Rule thresholds. Kept as named constants because this table is the policy
// surface most likely to be retuned in production.
const (
	interventionMasteryCeiling = 0.9  // above this the learner doesn't need help
	minTimeRemainingSec        = 60   // below this an intervention can't finish
	guessProbabilityRule       = 0.6  // +3
	wrongStreakRule            = 2    // +3
	masteryDropRule            = 0.15 // +2
	activeZoneLow              = 0.3  // active learning zone lower bound
	activeZoneHigh             = 0.7  // active learning zone upper bound, +1 on a miss
	lowConfidenceRule          = 0.4  // +2 when correct but unsure

	triggerScore = 2
	mediumScore  = 3
	highScore    = 5
)

// interventionRule is a named, independently-testable predicate.
type interventionRule struct {
	name   string
	points int
	hit    func(p InterventionParams) bool
}

func interventionRules() []interventionRule {
	return []interventionRule{
		{
			name:   "likely guessing",
			points: 3,
			hit:    func(p InterventionParams) bool { return p.GuessProbability > guessProbabilityRule },
		},
		{
			name:   "repeated misses on the same concept",
			points: 3,
			hit:    func(p InterventionParams) bool { return p.WrongStreak >= wrongStreakRule },
		},
		{
			name:   "mastery dropped sharply",
			points: 2,
			hit:    func(p InterventionParams) bool { return p.MasteryDelta < -masteryDropRule },
		},
		{
			name:   "missed a question in the active learning zone",
			points: 1,
			hit: func(p InterventionParams) bool {
				return !p.Correct && p.Mastery >= activeZoneLow && p.Mastery <= activeZoneHigh
			},
		},
		{
			name:   "correct but reported low confidence",
			points: 2,
			hit: func(p InterventionParams) bool {
				return p.Correct && p.Confidence != nil && *p.Confidence < lowConfidenceRule
			},
		},
	}
}

// ShouldTriggerIntervention decides whether to interrupt the learner with a
// probing dialogue instead of the next question. Exam mode, near-complete
// mastery, and near-expired sessions never trigger.
func ShouldTriggerIntervention(p InterventionParams) InterventionDecision {
	if p.Mode == "exam" {
		return InterventionDecision{Priority: "none"}
	}
	if p.Mastery > interventionMasteryCeiling {
		return InterventionDecision{Priority: "none"}
	}
	if p.TimeRemainingSec >= 0 && p.TimeRemainingSec < minTimeRemainingSec {
		return InterventionDecision{Priority: "none"}
	}

	var d InterventionDecision
	for _, rule := range interventionRules() {
		if rule.hit(p) {
			d.Score += rule.points
			d.Reasons = append(d.Reasons, rule.name)
		}
	}

	d.Trigger = d.Score >= triggerScore
	switch {
	case !d.Trigger:
		d.Priority = "none"
	case d.Score >= highScore:
		d.Priority = "high"
	case d.Score >= mediumScore:
		d.Priority = "medium"
	default:
		d.Priority = "low"
	}
	return d
}
