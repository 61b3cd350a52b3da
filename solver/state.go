package solver

import (
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/wordlebits/outcome"
)

// PrunedBy returns the snapshot left after guess received hint code under
// enc. Answers producing a different code are dropped; the guess itself
// stays an answer if it matches, but is no longer offered as a guess.
func (s *Solver) PrunedBy(guess string, enc outcome.Encoder, code outcome.Code) (*Solver, error) {
	if err := s.validate(guess); err != nil {
		return nil, err
	}
	answers := lo.Filter(s.answers, func(a string, _ int) bool {
		return enc.Code(guess, a) == code
	})
	vocab := lo.Filter(s.vocab, func(w string, _ int) bool {
		return w != guess
	})
	log.Debug().Str("guess", guess).Str("hint", enc.Label(code, s.length)).
		Int("before", len(s.answers)).Int("after", len(answers)).Msg("pruned")
	return s.successor(vocab, answers), nil
}

// Pruned keeps the answers sharing exactly hits letters with guess.
func (s *Solver) Pruned(guess string, hits int) (*Solver, error) {
	return s.PrunedBy(guess, outcome.Hits{}, outcome.Code(hits))
}

// PrunedExact keeps the answers for which guess produces the full hint code.
func (s *Solver) PrunedExact(guess string, code outcome.Code) (*Solver, error) {
	return s.PrunedBy(guess, outcome.Standard{}, code)
}

// PrunedCounts keeps the answers with the given number of misplaced and
// exact letters for guess.
func (s *Solver) PrunedCounts(guess string, yellow, green int) (*Solver, error) {
	return s.PrunedBy(guess, outcome.Counts{}, outcome.CountsCode(yellow, green, s.length))
}

// Branch is one possible outcome of a first guess and what to do next.
type Branch struct {
	Code outcome.Code `yaml:"-"`
	Hint string       `yaml:"hint"`
	// Word is the suggested next guess, or the answer itself when only one
	// remains.
	Word      string  `yaml:"word"`
	Info      float64 `yaml:"info"`
	Remaining int     `yaml:"remaining"`
}

// realized lists the distinct codes guess produces against the answers
// under enc, in ascending order.
func (s *Solver) realized(guess string, enc outcome.Encoder) []outcome.Code {
	codes := lo.Uniq(enc.Encode(guess, s.table, nil))
	slices.Sort(codes)
	return codes
}

// BestConditionalSecond splits the answers by how many letters they share
// with first and picks the most informative next guess in each part. No
// hint is committed to. first itself is left out of every part: if it were
// the answer the game would already be over.
func (s *Solver) BestConditionalSecond(first string) ([]Branch, error) {
	if err := s.validate(first); err != nil {
		return nil, err
	}
	rest := s
	if slices.Contains(s.answers, first) {
		rest = s.successor(s.vocab, lo.Without(s.answers, first))
	}
	enc := outcome.Hits{}
	var rv []Branch
	for _, code := range rest.realized(first, enc) {
		child, err := rest.PrunedBy(first, enc, code)
		if err != nil {
			return nil, err
		}
		b := Branch{Code: code, Hint: enc.Label(code, s.length), Remaining: child.Len()}
		if child.Solved() {
			b.Word = child.answers[0]
		} else if best, ok := child.Best(); ok {
			b.Word, b.Info = best.Word, best.Info
		}
		rv = append(rv, b)
	}
	return rv, nil
}

// BestSecondByHint considers every hint first can receive under enc. For
// each it reports the second word with the highest joint information over
// the answers that remain, along with that joint information.
func (s *Solver) BestSecondByHint(first string, enc outcome.Encoder) ([]Branch, error) {
	if err := s.validate(first); err != nil {
		return nil, err
	}
	var rv []Branch
	for _, code := range s.realized(first, enc) {
		child, err := s.PrunedBy(first, enc, code)
		if err != nil {
			return nil, err
		}
		b := Branch{Code: code, Hint: enc.Label(code, s.length), Remaining: child.Len()}
		if child.Solved() {
			b.Word = child.answers[0]
			rv = append(rv, b)
			continue
		}
		firstInfo, err := child.Info(first)
		if err != nil {
			return nil, err
		}
		seconds, err := child.BestSecondWords(first)
		if err != nil {
			return nil, err
		}
		if len(seconds) > 0 {
			b.Word = seconds[0].Word
			b.Info = firstInfo + seconds[0].Info
		}
		rv = append(rv, b)
	}
	return rv, nil
}
