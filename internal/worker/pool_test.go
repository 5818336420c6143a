// worker/pool_test.go
package worker_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/subashmuthub/Hacktivators/internal/worker"
)

func TestPoolRunsAllJobs(t *testing.T) {
	p := worker.NewPool[int](4, 10)

	for i := 0; i < 10; i++ {
		i := i
		p.Submit("job", func() int { return i * 2 })
	}
	p.Close()

	sum := 0
	for i := 0; i < 10; i++ {
		res := <-p.Results()
		sum += res.Output
	}
	if sum != 90 {
		t.Errorf("expected sum 90, got %d", sum)
	}
}

func TestMapPreservesOrder(t *testing.T) {
	fns := make([]worker.Job[int], 20)
	for i := range fns {
		i := i
		fns[i] = func() int {
			// Stagger so completion order differs from submission order.
			time.Sleep(time.Duration(20-i) * time.Millisecond)
			return i
		}
	}

	out := worker.Map(8, fns)
	if len(out) != 20 {
		t.Fatalf("expected 20 outputs, got %d", len(out))
	}
	for i, v := range out {
		if v != i {
			t.Errorf("output %d out of order: got %d", i, v)
		}
	}
}

func TestMapBoundsConcurrency(t *testing.T) {
	var active, peak int64

	fns := make([]worker.Job[struct{}], 30)
	for i := range fns {
		fns[i] = func() struct{} {
			n := atomic.AddInt64(&active, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&active, -1)
			return struct{}{}
		}
	}

	worker.Map(3, fns)
	if got := atomic.LoadInt64(&peak); got > 3 {
		t.Errorf("expected at most 3 concurrent jobs, saw %d", got)
	}
}

func TestMapEmpty(t *testing.T) {
	if out := worker.Map[int](4, nil); out != nil {
		t.Errorf("expected nil for empty batch, got %v", out)
	}
}
