package solver

import (
	"errors"
	"math"
	"os"
	"slices"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/wordlebits/entropy"
	"github.com/domino14/wordlebits/outcome"
	"github.com/domino14/wordlebits/testhelpers"
	"github.com/domino14/wordlebits/tilemapping"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func fixtureSolver(t *testing.T, opts ...Option) *Solver {
	t.Helper()
	s, err := New(testhelpers.Guesses(), testhelpers.Answers(), 5, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

type scoredPair struct {
	first, second string
	h             float64
}

// allPairs enumerates every unordered pair, oriented the way the searches
// orient them.
func allPairs(t *testing.T, s *Solver) []scoredPair {
	t.Helper()
	words := s.Words()
	var rv []scoredPair
	for i := range words {
		for j := i + 1; j < len(words); j++ {
			h, err := s.JointInfo(words[i].Word, words[j].Word)
			if err != nil {
				t.Fatal(err)
			}
			rv = append(rv, scoredPair{words[i].Word, words[j].Word, h})
		}
	}
	return rv
}

func TestNewValidation(t *testing.T) {
	is := is.New(t)
	_, err := New([]string{"abide", "toolong"}, []string{"abide"}, 5)
	is.True(errors.Is(err, tilemapping.ErrWordLength))
	_, err = New([]string{"abide"}, []string{"Abide"}, 5)
	is.True(errors.Is(err, tilemapping.ErrBadLetter))
	_, err = New(nil, nil, 5)
	is.True(errors.Is(err, ErrEmptyVocabulary))
}

func TestRanking(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	words := s.Words()
	// trace is both a guess and an answer
	is.Equal(len(words), len(testhelpers.Guesses())+len(testhelpers.Answers())-1)
	is.Equal(s.Len(), len(testhelpers.Answers()))
	for i := 1; i < len(words); i++ {
		is.True(words[i-1].Info >= words[i].Info)
	}
	best, ok := s.Best()
	is.True(ok)
	is.Equal(best, words[0])
	for _, w := range words {
		h, err := s.Info(w.Word)
		is.NoErr(err)
		is.Equal(h, w.Info)
	}
}

func TestTwoWordScenario(t *testing.T) {
	is := is.New(t)
	words := []string{"abide", "blimp"}
	s, err := New(words, words, 5)
	is.NoErr(err)
	best, ok := s.Best()
	is.True(ok)
	is.Equal(best.Info, 1.0)

	p, ok := s.BestTwo()
	is.True(ok)
	is.Equal(p.Info, 1.0)
	is.Equal(p.First, "abide")
	is.Equal(p.Second, "blimp")

	for _, guess := range words {
		for _, answer := range words {
			code := outcome.Standard{}.Code(guess, answer)
			next, err := s.PrunedExact(guess, code)
			is.NoErr(err)
			is.True(next.Solved())
			is.Equal(next.Answers(), []string{answer})
		}
	}
}

func TestGuessingTheAnswerSolves(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	for _, a := range testhelpers.Answers() {
		next, err := s.PrunedExact(a, outcome.Solved(5))
		is.NoErr(err)
		is.Equal(next.Answers(), []string{a})
		is.True(!slices.Contains(next.Vocabulary(), a))
	}
}

func TestPrunedExact(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	for _, guess := range []string{"soare", "eeeee", "lolly", "crane"} {
		for _, truth := range testhelpers.Answers() {
			code := outcome.Standard{}.Code(guess, truth)
			next, err := s.PrunedExact(guess, code)
			is.NoErr(err)
			is.True(next.Len() <= s.Len())
			is.True(slices.Contains(next.Answers(), truth))
			for _, a := range next.Answers() {
				is.Equal(outcome.Standard{}.Code(guess, a), code)
			}
			is.True(!slices.Contains(next.Vocabulary(), guess))
		}
	}
	// s itself is untouched
	is.Equal(s.Answers(), testhelpers.Answers())
}

func TestPrunedCoarse(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	truth := "speed"
	hits := int(outcome.Hits{}.Code("soare", truth))
	next, err := s.Pruned("soare", hits)
	is.NoErr(err)
	is.True(slices.Contains(next.Answers(), truth))
	for _, a := range next.Answers() {
		is.Equal(int(outcome.Hits{}.Code("soare", a)), hits)
	}

	next, err = s.PrunedCounts("soare", 1, 1)
	is.NoErr(err)
	for _, a := range next.Answers() {
		is.Equal(outcome.Counts{}.Code("soare", a), outcome.CountsCode(1, 1, 5))
	}

	// a hint nothing can produce leaves an empty, valid snapshot
	next, err = s.Pruned("fuzzy", 5)
	is.NoErr(err)
	is.True(next.Empty())
	_, ok := next.BestTwo()
	is.True(!ok)

	_, err = s.Pruned("soar", 1)
	is.True(errors.Is(err, tilemapping.ErrWordLength))
}

func TestBestTwoMatchesExhaustive(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts []Option
	}{
		{"default", nil},
		{"single thread", []Option{WithThreads(1)}},
		{"exact metric", []Option{WithMetric(entropy.Exact{}), WithThreads(3)}},
		{"hits", []Option{WithEncoder(outcome.Hits{})}},
		{"counts", []Option{WithEncoder(outcome.Counts{}), WithThreads(16)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			s := fixtureSolver(t, tc.opts...)
			want := 0.0
			for _, p := range allPairs(t, s) {
				want = math.Max(want, p.h)
			}
			p, ok := s.BestTwo()
			is.True(ok)
			is.True(p.Info >= want-1e-12)
			h, err := s.JointInfo(p.First, p.Second)
			is.NoErr(err)
			is.True(math.Abs(h-p.Info) < 1e-12)
		})
	}
}

func TestThresholdPartition(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	pairs := allPairs(t, s)
	// use a realized value so that some pair sits exactly on the boundary
	vals := make([]float64, len(pairs))
	for i, p := range pairs {
		vals[i] = p.h
	}
	slices.Sort(vals)
	threshold := vals[len(vals)/2]

	above := s.PairsAboveThreshold(threshold)
	below := s.PairsBelowThreshold(threshold)
	key := func(a, b string) string { return a + " " + b }
	inAbove := map[string]int{}
	inBelow := map[string]int{}
	for i, p := range above {
		inAbove[key(p.First, p.Second)]++
		if i > 0 {
			is.True(above[i-1].Info >= p.Info)
		}
	}
	for i, p := range below {
		inBelow[key(p.First, p.Second)]++
		if i > 0 {
			is.True(below[i-1].Info <= p.Info)
		}
	}
	onBoundary := 0
	for _, p := range pairs {
		k := key(p.first, p.second)
		is.Equal(inAbove[k] == 1, p.h >= threshold)
		is.Equal(inBelow[k] == 1, p.h <= threshold)
		is.True(inAbove[k] <= 1 && inBelow[k] <= 1)
		if p.h == threshold {
			onBoundary++
		}
	}
	is.True(onBoundary >= 1)
	is.Equal(len(above)+len(below), len(pairs)+onBoundary)
}

func TestThresholdExtremes(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	n := len(s.Words())
	is.Equal(len(s.PairsBelowThreshold(100)), n*(n-1)/2)
	is.Equal(len(s.PairsAboveThreshold(100)), 0)
	is.Equal(len(s.PairsAboveThreshold(0)), n*(n-1)/2)
}

func TestBestSecondWords(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	first := "soare"
	firstInfo, err := s.Info(first)
	is.NoErr(err)
	seconds, err := s.BestSecondWords(first)
	is.NoErr(err)
	is.Equal(len(seconds), len(s.Words())-1)
	for i, w := range seconds {
		is.True(w.Word != first)
		if i > 0 {
			is.True(seconds[i-1].Info >= w.Info)
		}
		h, err := s.JointInfo(first, w.Word)
		is.NoErr(err)
		is.True(math.Abs(h-firstInfo-w.Info) < 1e-9)
		is.True(w.Info >= -1e-9)
	}

	// words outside the vocabulary work too
	_, err = s.BestSecondWords("zzzzz")
	is.NoErr(err)
	_, err = s.BestSecondWords("zz")
	is.True(errors.Is(err, tilemapping.ErrWordLength))
}

func TestBestThirdWords(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	base, err := s.JointInfo("soare", "clint")
	is.NoErr(err)
	thirds, err := s.BestThirdWords("soare", "clint")
	is.NoErr(err)
	is.Equal(len(thirds), len(s.Words())-2)
	for _, w := range thirds {
		h, err := s.JointInfo("soare", "clint", w.Word)
		is.NoErr(err)
		is.True(math.Abs(h-base-w.Info) < 1e-9)
	}
}

func TestBestConditionalSecond(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	branches, err := s.BestConditionalSecond("soare")
	is.NoErr(err)
	total := 0
	for _, b := range branches {
		is.True(b.Remaining > 0)
		total += b.Remaining
		if b.Remaining == 1 {
			is.Equal(b.Info, 0.0)
			is.True(slices.Contains(testhelpers.Answers(), b.Word))
		}
		is.True(b.Word != "")
	}
	is.Equal(total, s.Len())
}

func TestBestConditionalSecondSkipsFirst(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	first := s.Answers()[0]
	branches, err := s.BestConditionalSecond(first)
	is.NoErr(err)
	total := 0
	for _, b := range branches {
		total += b.Remaining
		is.True(b.Word != first)
	}
	// every answer but first lands in exactly one part
	is.Equal(total, s.Len()-1)
	is.Equal(len(s.Answers()), s.Len()) // s is unchanged
}

func TestBestSecondByHint(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	for _, enc := range []outcome.Encoder{outcome.Standard{}, outcome.Hits{}, outcome.Counts{}} {
		branches, err := s.BestSecondByHint("clint", enc)
		is.NoErr(err)
		total := 0
		for i, b := range branches {
			total += b.Remaining
			if i > 0 {
				is.True(branches[i-1].Code < b.Code)
			}
			is.True(b.Word != "")
		}
		is.Equal(total, s.Len())
	}
}

func TestBuckets(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	buckets, h, err := s.Buckets("soare")
	is.NoErr(err)
	want, err := s.Info("soare")
	is.NoErr(err)
	is.True(math.Abs(h-want) < 1e-12)
	total := 0
	for i, b := range buckets {
		total += b.Count
		is.Equal(len(b.Answers), b.Count)
		is.Equal(b.Label, outcome.Label(b.Code, 5))
		if i > 0 {
			is.True(buckets[i-1].Count >= b.Count)
		}
	}
	is.Equal(total, s.Len())
}

func TestConfigure(t *testing.T) {
	is := is.New(t)
	s := fixtureSolver(t)
	c := s.Configure(WithThreads(2))
	is.Equal(c.Threads(), 2)
	is.Equal(c.Words(), s.Words())
	h := s.Configure(WithEncoder(outcome.Hits{}))
	is.Equal(h.Encoder().Name(), "hits")
	is.Equal(s.Encoder().Name(), "standard")
	best, _ := h.Best()
	is.True(best.Info <= math.Log2(6)+1e-9)
}

func TestProgress(t *testing.T) {
	is := is.New(t)
	var calls, last int
	s := fixtureSolver(t, WithThreads(1), WithProgress(func(done, total int) {
		calls++
		last = done
		_ = total
	}))
	calls = 0
	s.BestTwo()
	is.Equal(calls, len(s.Words()))
	is.Equal(last, len(s.Words()))
}
