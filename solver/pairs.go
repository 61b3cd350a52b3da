package solver

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/wordlebits/bucket"
	"github.com/domino14/wordlebits/entropy"
	"github.com/domino14/wordlebits/outcome"
)

// slack absorbs floating point rounding in the sub-additivity bounds.
const slack = 1e-9

// Pair is an unordered pair of guesses and their joint information. First
// is the higher ranked of the two.
type Pair struct {
	First  string  `yaml:"first"`
	Second string  `yaml:"second"`
	Info   float64 `yaml:"info"`

	// ranks of First and Second
	i, j int
}

func (p Pair) String() string {
	return fmt.Sprintf("%s %s (%.3f)", p.First, p.Second, p.Info)
}

func (s *Solver) pair(i, j int, h float64) Pair {
	return Pair{First: s.ranked[i].word, Second: s.ranked[j].word, Info: h, i: i, j: j}
}

func comparePairs(a, b Pair) int {
	return cmp.Or(cmp.Compare(a.i, b.i), cmp.Compare(a.j, b.j))
}

// searchStats counts work done by one search, for debug logs.
type searchStats struct {
	scanned atomic.Int64
	exact   atomic.Int64
}

func (st *searchStats) log(name string, found int) {
	log.Debug().Int64("scanned", st.scanned.Load()).Int64("exact-recomputed", st.exact.Load()).
		Int("found", found).Msg(name)
}

// BestTwo finds the pair of distinct words with the highest joint
// information. It returns false when no pair carries any information.
//
// Branches are first words in ranked order. Each scans only lower-ranked
// partners and stops as soon as a partner's own information can no longer
// close the gap to the best score: joint information never exceeds the sum
// of the two words' information. All branches share one best score.
func (s *Solver) BestTwo() (Pair, bool) {
	n := len(s.ranked)
	var shared atomic.Uint64 // math.Float64bits of the best published score
	var st searchStats
	eps := s.metric.MaxError()
	found := make([]Pair, s.workers(n))
	s.parallel(n, func(w *worker, i int) {
		first := &s.ranked[i]
		bestH := math.Float64frombits(shared.Load())
		if 2*first.info+slack < bestH {
			return
		}
		required := bestH - first.info
		bestJ := -1
		for j := i + 1; j < n; j++ {
			second := &s.ranked[j]
			if second.info+slack < required {
				break
			}
			st.scanned.Add(1)
			hist := w.scratch.Two(first.outs, second.outs)
			if s.metric.Info(hist)+eps+slack <= bestH {
				continue
			}
			st.exact.Add(1)
			if h := entropy.Info(hist); h > bestH {
				bestH, bestJ = h, j
				required = bestH - first.info
			}
		}
		if bestJ < 0 {
			return
		}
		// Publish only over a strictly smaller value; another branch may
		// have published a better score since we read it.
		for {
			cur := shared.Load()
			if math.Float64frombits(cur) >= bestH {
				return
			}
			if shared.CompareAndSwap(cur, math.Float64bits(bestH)) {
				break
			}
		}
		if p := s.pair(i, bestJ, bestH); found[w.id].First == "" || p.Info > found[w.id].Info {
			found[w.id] = p
		}
	})
	var best Pair
	ok := false
	for _, p := range found {
		if p.First == "" {
			continue
		}
		if !ok || p.Info > best.Info || (p.Info == best.Info && comparePairs(p, best) < 0) {
			best, ok = p, true
		}
	}
	st.log("best-two", lo.Ternary(ok, 1, 0))
	return best, ok
}

// PairsAboveThreshold returns every pair whose joint information is at
// least t, highest first.
func (s *Solver) PairsAboveThreshold(t float64) []Pair {
	n := len(s.ranked)
	var st searchStats
	eps := s.metric.MaxError()
	branches := make([][]Pair, n)
	s.parallel(n, func(w *worker, i int) {
		first := &s.ranked[i]
		if 2*first.info+slack < t {
			return
		}
		required := t - first.info
		var rv []Pair
		for j := i + 1; j < n; j++ {
			second := &s.ranked[j]
			if second.info+slack < required {
				break
			}
			st.scanned.Add(1)
			hist := w.scratch.Two(first.outs, second.outs)
			if s.metric.Info(hist)+eps+slack < t {
				continue
			}
			st.exact.Add(1)
			if h := entropy.Info(hist); h >= t {
				rv = append(rv, s.pair(i, j, h))
			}
		}
		branches[i] = rv
	})
	rv := lo.Flatten(branches)
	slices.SortFunc(rv, func(a, b Pair) int {
		return cmp.Or(cmp.Compare(b.Info, a.Info), comparePairs(a, b))
	})
	st.log("pairs-above-threshold", len(rv))
	return rv
}

// PairsBelowThreshold returns every pair whose joint information is at
// most t, lowest first.
//
// Joint information is never below either word's own information, so
// branches run from the least informative word upwards and stop at the
// first partner whose own information already exceeds t.
func (s *Solver) PairsBelowThreshold(t float64) []Pair {
	n := len(s.ranked)
	var st searchStats
	eps := s.metric.MaxError()
	branches := make([][]Pair, n)
	s.parallel(n, func(w *worker, k int) {
		j := n - 1 - k
		second := &s.ranked[j]
		if second.info-slack > t {
			return
		}
		var rv []Pair
		for i := j - 1; i >= 0; i-- {
			first := &s.ranked[i]
			if first.info-slack > t {
				break
			}
			st.scanned.Add(1)
			hist := w.scratch.Two(first.outs, second.outs)
			if s.metric.Info(hist)-eps-slack > t {
				continue
			}
			st.exact.Add(1)
			if h := entropy.Info(hist); h <= t {
				rv = append(rv, s.pair(i, j, h))
			}
		}
		branches[k] = rv
	})
	rv := lo.Flatten(branches)
	slices.SortFunc(rv, func(a, b Pair) int {
		return cmp.Or(cmp.Compare(a.Info, b.Info), comparePairs(a, b))
	})
	st.log("pairs-below-threshold", len(rv))
	return rv
}

// marginal ranks every vocabulary word, except the excluded ones, by the
// information it adds on top of base.
func (s *Solver) marginal(base outcome.Outcomes, exclude ...string) []RankedWord {
	var sc bucket.Scratch
	baseInfo := entropy.Info(sc.Single(base))
	rv := make([]RankedWord, len(s.ranked))
	skip := make([]bool, len(s.ranked))
	s.parallel(len(s.ranked), func(w *worker, i int) {
		e := &s.ranked[i]
		if slices.Contains(exclude, e.word) {
			skip[i] = true
			return
		}
		h := entropy.Info(w.scratch.Two(base, e.outs))
		rv[i] = RankedWord{Word: e.word, Info: h - baseInfo}
	})
	rv = lo.Filter(rv, func(_ RankedWord, i int) bool { return !skip[i] })
	// rv is in ranked order, so ties keep it.
	slices.SortStableFunc(rv, func(a, b RankedWord) int {
		return cmp.Compare(b.Info, a.Info)
	})
	return rv
}

// BestSecondWords ranks every other word by the information it adds when
// played together with first. first need not be in the vocabulary.
func (s *Solver) BestSecondWords(first string) ([]RankedWord, error) {
	o, err := s.outcomes(first)
	if err != nil {
		return nil, err
	}
	return s.marginal(o, first), nil
}

// BestThirdWords ranks every other word by the information it adds on top
// of the fixed pair first, second.
func (s *Solver) BestThirdWords(first, second string) ([]RankedWord, error) {
	o1, err := s.outcomes(first)
	if err != nil {
		return nil, err
	}
	o2, err := s.outcomes(second)
	if err != nil {
		return nil, err
	}
	return s.marginal(bucket.Join(o1, o2), first, second), nil
}
