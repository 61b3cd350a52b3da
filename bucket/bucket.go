// Package bucket builds joint histograms of two or three guesses.
package bucket

import (
	"github.com/domino14/wordlebits/outcome"
)

// Scratch holds buffers reused across joins. It carries no meaning from one
// call to the next. The zero value is ready to use; a Scratch must not be
// shared between goroutines.
type Scratch struct {
	hist  []int
	xlate []outcome.Code
	codes []outcome.Code
}

func (s *Scratch) histogram(n int) []int {
	if cap(s.hist) < n {
		s.hist = make([]int, n)
		return s.hist
	}
	s.hist = s.hist[:n]
	clear(s.hist)
	return s.hist
}

// Single returns the histogram of one guess. The slice is owned by s and is
// only valid until the next call.
func (s *Scratch) Single(a outcome.Outcomes) []int {
	h := s.histogram(a.Max)
	for _, c := range a.Codes {
		h[c]++
	}
	return h
}

// Two returns the joint histogram of a and b, keyed by a*b.Max + b. Both
// must cover the same answers in the same order. The slice is owned by s and
// is only valid until the next call.
func (s *Scratch) Two(a, b outcome.Outcomes) []int {
	h := s.histogram(a.Max * b.Max)
	bm := outcome.Code(b.Max)
	for i, ca := range a.Codes {
		h[ca*bm+b.Codes[i]]++
	}
	return h
}

// Three returns the joint histogram of three guesses. a and b are joined and
// compressed first, then the result is joined with c.
func (s *Scratch) Three(a, b, c outcome.Outcomes) []int {
	ab := s.join(a, b)
	return s.Two(ab, c)
}

// join is Join backed by the scratch buffers. The result aliases s.codes.
func (s *Scratch) join(a, b outcome.Outcomes) outcome.Outcomes {
	n := a.Max * b.Max
	if cap(s.xlate) < n {
		s.xlate = make([]outcome.Code, n)
	}
	s.xlate = s.xlate[:n]
	for i := range s.xlate {
		s.xlate[i] = unseen
	}
	if cap(s.codes) < len(a.Codes) {
		s.codes = make([]outcome.Code, len(a.Codes))
	}
	s.codes = s.codes[:len(a.Codes)]
	bm := outcome.Code(b.Max)
	var next outcome.Code
	for i, ca := range a.Codes {
		k := ca*bm + b.Codes[i]
		if s.xlate[k] == unseen {
			s.xlate[k] = next
			next++
		}
		s.codes[i] = s.xlate[k]
	}
	return outcome.Outcomes{Codes: s.codes, Max: int(next)}
}

const unseen = ^outcome.Code(0)

// Join combines a and b into one compressed outcome sequence. Two answers
// share a joint label iff they share a label in both a and b.
func Join(a, b outcome.Outcomes) outcome.Outcomes {
	var s Scratch
	return s.join(a, b)
}
