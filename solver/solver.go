// Package solver ranks guesses by the information they carry about the
// remaining answers and searches pairs and triples of guesses for the
// highest joint information.
//
// A Solver is an immutable snapshot of an answer set together with its
// answer table and its ranked vocabulary. Applying a hint never modifies a
// Solver; it returns a new one. A Solver may be shared freely between
// goroutines.
package solver

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/wordlebits/answertable"
	"github.com/domino14/wordlebits/entropy"
	"github.com/domino14/wordlebits/outcome"
	"github.com/domino14/wordlebits/tilemapping"
)

var ErrEmptyVocabulary = errors.New("vocabulary is empty")

type Solver struct {
	length   int
	enc      outcome.Encoder
	metric   entropy.Metric
	threads  int
	progress func(done, total int)

	// vocab keeps the order the words were supplied in.
	vocab   []string
	answers []string
	table   *answertable.Table
	ranked  []entry
	index   map[string]int
}

// Option configures a Solver.
type Option func(*Solver)

// WithEncoder selects the outcome encoding. The default is
// outcome.Standard.
func WithEncoder(enc outcome.Encoder) Option {
	return func(s *Solver) {
		s.enc = enc
	}
}

// WithThreads sets the number of search goroutines. The default is the
// number of CPUs.
func WithThreads(n int) Option {
	return func(s *Solver) {
		s.threads = max(1, n)
	}
}

// WithMetric sets the metric used to pre-filter candidates during pair
// searches. Accept and reject decisions always use the exact value. The
// default is entropy.Fast.
func WithMetric(m entropy.Metric) Option {
	return func(s *Solver) {
		s.metric = m
	}
}

// WithProgress registers a callback invoked after each search branch
// finishes. It is called from several goroutines at once.
func WithProgress(fn func(done, total int)) Option {
	return func(s *Solver) {
		s.progress = fn
	}
}

// New validates both word lists and builds the initial snapshot. The
// vocabulary is words followed by answers, without duplicates.
func New(words, answers []string, length int, opts ...Option) (*Solver, error) {
	if err := tilemapping.ValidateAll(words, length); err != nil {
		return nil, fmt.Errorf("guess list: %w", err)
	}
	if err := tilemapping.ValidateAll(answers, length); err != nil {
		return nil, fmt.Errorf("answer list: %w", err)
	}
	vocab := lo.Uniq(slices.Concat(words, answers))
	if len(vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}
	s := &Solver{
		length:  length,
		enc:     outcome.Standard{},
		metric:  entropy.Fast{},
		threads: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.build(vocab, lo.Uniq(answers))
	return s, nil
}

// Configure returns a copy of s with the options applied. The copy shares
// every immutable part of s; only a change of encoder re-ranks the words.
func (s *Solver) Configure(opts ...Option) *Solver {
	c := *s
	for _, opt := range opts {
		opt(&c)
	}
	if c.enc.Name() != s.enc.Name() {
		c.build(s.vocab, s.answers)
	}
	return &c
}

// successor builds a snapshot with the same settings over new lists.
func (s *Solver) successor(vocab, answers []string) *Solver {
	c := &Solver{
		length:   s.length,
		enc:      s.enc,
		metric:   s.metric,
		threads:  s.threads,
		progress: s.progress,
	}
	c.build(vocab, answers)
	return c
}

func (s *Solver) build(vocab, answers []string) {
	ts := time.Now()
	s.vocab = vocab
	s.answers = answers
	s.table = answertable.New(answers, s.length)
	s.ranked = s.rank(vocab)
	s.index = make(map[string]int, len(s.ranked))
	for i, e := range s.ranked {
		s.index[e.word] = i
	}
	log.Debug().Int("vocabulary", len(vocab)).Int("answers", len(answers)).
		Str("encoding", s.enc.Name()).Dur("elapsed", time.Since(ts)).
		Msg("built-snapshot")
}

// validate rejects words that could never be played against this snapshot.
func (s *Solver) validate(words ...string) error {
	return tilemapping.ValidateAll(words, s.length)
}

// Answers returns the remaining possible answers.
func (s *Solver) Answers() []string {
	return slices.Clone(s.answers)
}

// Vocabulary returns the guessable words in their original order.
func (s *Solver) Vocabulary() []string {
	return slices.Clone(s.vocab)
}

// Len is the number of remaining answers.
func (s *Solver) Len() int {
	return len(s.answers)
}

// Solved reports whether exactly one answer remains.
func (s *Solver) Solved() bool {
	return len(s.answers) == 1
}

// Empty reports whether no answer is consistent with the hints so far.
func (s *Solver) Empty() bool {
	return len(s.answers) == 0
}

func (s *Solver) WordLength() int {
	return s.length
}

func (s *Solver) Encoder() outcome.Encoder {
	return s.enc
}

func (s *Solver) Threads() int {
	return s.threads
}

func (s *Solver) Table() *answertable.Table {
	return s.table
}
