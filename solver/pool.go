package solver

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/domino14/wordlebits/bucket"
)

// worker is the per-goroutine state of a fan-out. Nothing in it is shared.
type worker struct {
	id      int
	scratch bucket.Scratch
}

func (s *Solver) workers(n int) int {
	return max(1, min(s.threads, n))
}

// parallel calls fn once for every index in [0, n), spread over the
// solver's threads. Indices are handed out through an atomic counter so a
// slow branch does not hold up the others.
func (s *Solver) parallel(n int, fn func(w *worker, i int)) {
	var next, done atomic.Int64
	g := errgroup.Group{}
	for t := 0; t < s.workers(n); t++ {
		w := &worker{id: t}
		g.Go(func() error {
			for {
				i := int(next.Add(1) - 1)
				if i >= n {
					return nil
				}
				fn(w, i)
				d := done.Add(1)
				if s.progress != nil {
					s.progress(int(d), n)
				}
			}
		})
	}
	// Branches never fail.
	_ = g.Wait()
}
