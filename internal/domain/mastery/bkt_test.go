package mastery_test

import (
	"math"
	"testing"
	"time"

	"github.com/subashmuthub/Hacktivators/internal/domain/mastery"
)

func TestUpdateMastery_CorrectIncreases(t *testing.T) {
	p := mastery.DefaultParams()
	for _, prev := range []float64{0.05, 0.3, 0.5, 0.8, 0.95} {
		next := p.UpdateMastery(prev, true)
		if next <= prev {
			t.Errorf("UpdateMastery(%v, true) = %v, want > %v", prev, next, prev)
		}
	}
}

func TestUpdateMastery_ThreeCorrectFromPInit(t *testing.T) {
	p := mastery.DefaultParams()
	prev := p.PInit
	for i := 1; i <= 3; i++ {
		next := p.UpdateMastery(prev, true)
		if next <= prev {
			t.Fatalf("step %d: mastery did not strictly increase (%v -> %v)", i, prev, next)
		}
		prev = next
	}
	if prev <= 0.7 {
		t.Errorf("after 3 correct answers mastery = %v, want > 0.7", prev)
	}
}

func TestUpdateMastery_ConvergesBelowOne(t *testing.T) {
	p := mastery.DefaultParams()
	prev := 0.3
	for i := 0; i < 100; i++ {
		next := p.UpdateMastery(prev, true)
		if next < prev {
			t.Fatalf("iteration %d: mastery decreased (%v -> %v)", i, prev, next)
		}
		if next >= 1 {
			t.Fatalf("iteration %d: mastery reached %v, want < 1", i, next)
		}
		prev = next
	}
	if prev > 1-p.Epsilon {
		t.Errorf("converged to %v, want <= 1-epsilon (%v)", prev, 1-p.Epsilon)
	}
}

func TestUpdateMastery_WrongDecreasesHighMastery(t *testing.T) {
	p := mastery.DefaultParams()
	next := p.UpdateMastery(0.9, false)
	if next >= 0.9 {
		t.Errorf("UpdateMastery(0.9, false) = %v, want < 0.9", next)
	}
}

func TestUpdateMastery_NeverNaNAtBoundaries(t *testing.T) {
	p := mastery.DefaultParams()
	for _, prev := range []float64{0, p.Epsilon, 1 - p.Epsilon, 1} {
		for _, correct := range []bool{true, false} {
			next := p.UpdateMastery(prev, correct)
			if math.IsNaN(next) || math.IsInf(next, 0) {
				t.Errorf("UpdateMastery(%v, %v) = %v", prev, correct, next)
			}
			if next < p.Epsilon || next > 1-p.Epsilon {
				t.Errorf("UpdateMastery(%v, %v) = %v outside clamp band", prev, correct, next)
			}
		}
	}
}

func TestGalaxyParams_SlowerThanDefault(t *testing.T) {
	def := mastery.DefaultParams().UpdateMastery(0.3, true)
	gal := mastery.GalaxyParams().UpdateMastery(0.3, true)
	if gal >= def {
		t.Errorf("galaxy update %v should be below default update %v", gal, def)
	}
}

func TestObserve_Bookkeeping(t *testing.T) {
	p := mastery.DefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := p.NewState(now)

	later := now.Add(48 * time.Hour)
	p.Observe(&st, true, later)

	if st.ReviewCount != 1 {
		t.Errorf("ReviewCount = %d, want 1", st.ReviewCount)
	}
	if !st.LastReviewAt.Equal(later) {
		t.Errorf("LastReviewAt = %v, want %v", st.LastReviewAt, later)
	}
	if st.PMastered <= p.PInit {
		t.Errorf("PMastered = %v, want > %v", st.PMastered, p.PInit)
	}

	p.Observe(&st, false, later.Add(time.Hour))
	if st.ReviewCount != 1 {
		t.Errorf("wrong answer incremented ReviewCount: %d", st.ReviewCount)
	}
}
