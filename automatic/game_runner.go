// Package automatic plays games by itself: it picks the most informative
// guess, applies the hint the hidden answer would give, and repeats until
// the answer is found. Many games can be played at once to measure how well
// a strategy does.
package automatic

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/wordlebits/outcome"
	"github.com/domino14/wordlebits/solver"
)

const DefaultMaxGuesses = 12

var ErrNotAnAnswer = errors.New("word is not a possible answer")

// Result is the record of one game.
type Result struct {
	Answer  string   `yaml:"answer"`
	Guesses []string `yaml:"guesses"`
	Hints   []string `yaml:"hints"`
	Solved  bool     `yaml:"solved"`
}

// Runner plays games from a fixed starting snapshot. It is safe for
// concurrent use.
type Runner struct {
	root       *solver.Solver
	opener     string
	maxGuesses int
	threads    int
	answers    map[string]bool

	// snapshots after the opening guess, by hint
	mu       sync.Mutex
	openings map[outcome.Code]*solver.Solver
}

// NewRunner creates a runner. An empty opener means the root's best guess.
// threads is the number of games played at once; each game searches on a
// single goroutine.
func NewRunner(root *solver.Solver, opener string, maxGuesses, threads int) (*Runner, error) {
	if opener == "" {
		best, ok := root.Best()
		if !ok {
			return nil, solver.ErrEmptyVocabulary
		}
		opener = best.Word
	}
	if _, err := root.Info(opener); err != nil {
		return nil, err
	}
	if maxGuesses <= 0 {
		maxGuesses = DefaultMaxGuesses
	}
	return &Runner{
		root:       root.Configure(solver.WithThreads(1), solver.WithProgress(nil)),
		opener:     opener,
		maxGuesses: maxGuesses,
		threads:    max(1, threads),
		answers:    lo.SliceToMap(root.Answers(), keep),
		openings:   map[outcome.Code]*solver.Solver{},
	}, nil
}

func keep(a string) (string, bool) {
	return a, true
}

func (r *Runner) Opener() string {
	return r.opener
}

// afterOpener memoizes the first pruning step, which every game shares.
func (r *Runner) afterOpener(code outcome.Code) (*solver.Solver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.openings[code]; ok {
		return s, nil
	}
	s, err := r.root.PrunedExact(r.opener, code)
	if err != nil {
		return nil, err
	}
	r.openings[code] = s
	return s, nil
}

// nextGuess picks the answer itself once it is the only one left.
func nextGuess(s *solver.Solver) (string, bool) {
	if s.Solved() {
		return s.Answers()[0], true
	}
	best, ok := s.Best()
	return best.Word, ok
}

// Play solves one game whose hidden answer is answer.
func (r *Runner) Play(ctx context.Context, answer string) (Result, error) {
	res := Result{Answer: answer}
	if !r.answers[answer] {
		return res, fmt.Errorf("%w: %s", ErrNotAnAnswer, answer)
	}
	length := r.root.WordLength()
	s := r.root
	guess := r.opener
	for turn := 1; turn <= r.maxGuesses; turn++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		code := outcome.Standard{}.Code(guess, answer)
		res.Guesses = append(res.Guesses, guess)
		res.Hints = append(res.Hints, outcome.Label(code, length))
		if code == outcome.Solved(length) {
			res.Solved = true
			return res, nil
		}
		var err error
		if turn == 1 {
			s, err = r.afterOpener(code)
		} else {
			s, err = s.PrunedExact(guess, code)
		}
		if err != nil {
			return res, err
		}
		if s.Empty() {
			return res, fmt.Errorf("%w: %s", ErrNotAnAnswer, answer)
		}
		var ok bool
		if guess, ok = nextGuess(s); !ok {
			break
		}
	}
	log.Debug().Str("answer", answer).Strs("guesses", res.Guesses).Msg("game-not-solved")
	return res, nil
}
