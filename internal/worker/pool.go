// worker/pool.go
package worker

import "strconv"

type Job[T any] func() T

type Result[T any] struct {
	JobID  string
	Output T
}

type Pool[T any] struct {
	jobs    chan jobWrapper[T]
	results chan Result[T]
}

type jobWrapper[T any] struct {
	id string
	fn Job[T]
}

func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	p := &Pool[T]{
		jobs:    make(chan jobWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	for job := range p.jobs {
		output := job.fn()
		p.results <- Result[T]{
			JobID:  job.id,
			Output: output,
		}
	}
}

func (p *Pool[T]) Submit(id string, fn Job[T]) {
	p.jobs <- jobWrapper[T]{id: id, fn: fn}
}

func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Close stops accepting jobs. Workers exit after draining the queue.
func (p *Pool[T]) Close() {
	close(p.jobs)
}

// Map runs fns on up to workerCount goroutines and returns the outputs in
// input order. The result buffer is sized to the batch so workers never
// block on delivery.
func Map[T any](workerCount int, fns []Job[T]) []T {
	if len(fns) == 0 {
		return nil
	}
	if workerCount <= 0 {
		workerCount = 1
	}

	p := NewPool[T](workerCount, len(fns))
	for i, fn := range fns {
		p.Submit(strconv.Itoa(i), fn)
	}
	p.Close()

	out := make([]T, len(fns))
	for range fns {
		res := <-p.Results()
		idx, err := strconv.Atoi(res.JobID)
		if err != nil {
			continue
		}
		out[idx] = res.Output
	}
	return out
}
