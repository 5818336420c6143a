package knowledgegraph

import (
	"time"

	"github.com/subashmuthub/Hacktivators/internal/curriculum"
)

// dayKey buckets a timestamp into its UTC calendar day. Co-occurrence and
// confusion are computed over day-buckets, not raw event counts, so a burst
// of answers in one sitting counts once.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

type conceptDays struct {
	seen  map[string]bool // days the concept was answered at all
	wrong map[string]bool // days the concept was answered incorrectly
}

// buildEdges computes the three relatedness components for every concept
// pair and materializes edges whose combined weight clears the threshold.
// ids must be sorted; pair iteration order (and therefore edge order) is
// deterministic.
func (b *Builder) buildEdges(logs []SessionLog, ids []string) []Edge {
	days := make(map[string]*conceptDays, len(ids))
	for _, id := range ids {
		days[id] = &conceptDays{seen: make(map[string]bool), wrong: make(map[string]bool)}
	}
	for _, l := range logs {
		id := curriculum.Normalize(l.Concept)
		cd, ok := days[id]
		if !ok {
			continue
		}
		key := dayKey(l.Timestamp)
		cd.seen[key] = true
		if !l.IsCorrect {
			cd.wrong[key] = true
		}
	}

	var edges []Edge
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, bID := ids[i], ids[j]

			prereq := b.table.Strength(a, bID)
			coOccur := jaccardDays(days[a].seen, days[bID].seen)
			confusion := conditionalWrongRate(days[a].wrong, days[bID].wrong)

			weight := b.cfg.PrereqWeight*prereq +
				b.cfg.CoOccurWeight*coOccur +
				b.cfg.ConfusionWeight*confusion
			if weight < b.cfg.EdgeThreshold {
				continue
			}

			edges = append(edges, Edge{
				Source:       a,
				Target:       bID,
				Weight:       weight,
				Prerequisite: prereq,
				CoOccurrence: coOccur,
				Confusion:    confusion,
				Type:         b.edgeType(prereq),
			})
		}
	}
	return edges
}

// jaccardDays is |A∩B| / |A∪B| over day-buckets: the fraction of active
// days in which both concepts appear.
func jaccardDays(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for d := range a {
		if b[d] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// conditionalWrongRate is the fraction of days with a wrong answer on the
// first concept that also saw a wrong answer on the second. The measure is
// directional; the pair's edge stores the value for the pair as listed.
func conditionalWrongRate(aWrong, bWrong map[string]bool) float64 {
	if len(aWrong) == 0 {
		return 0
	}
	both := 0
	for d := range aWrong {
		if bWrong[d] {
			both++
		}
	}
	return float64(both) / float64(len(aWrong))
}

func (b *Builder) edgeType(prereq float64) string {
	switch {
	case prereq > b.cfg.PrereqStrong:
		return "prerequisite"
	case prereq > b.cfg.PrereqWeak:
		return "application"
	default:
		return "similar"
	}
}
