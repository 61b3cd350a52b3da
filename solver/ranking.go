package solver

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/domino14/wordlebits/bucket"
	"github.com/domino14/wordlebits/entropy"
	"github.com/domino14/wordlebits/outcome"
)

// RankedWord is a word with an information value in bits. Depending on the
// query the value is standalone or marginal information.
type RankedWord struct {
	Word string  `yaml:"word"`
	Info float64 `yaml:"info"`
}

func (r RankedWord) String() string {
	return fmt.Sprintf("%s (%.3f)", r.Word, r.Info)
}

type entry struct {
	word string
	info float64
	outs outcome.Outcomes
	// position in the vocabulary, for tie breaks
	order int
}

// rank computes every word's outcomes and exact information, sorted by
// descending information. Ties keep vocabulary order.
func (s *Solver) rank(vocab []string) []entry {
	entries := make([]entry, len(vocab))
	s.parallel(len(vocab), func(w *worker, i int) {
		o := outcome.New(vocab[i], s.enc, s.table)
		entries[i] = entry{
			word:  vocab[i],
			info:  entropy.Info(w.scratch.Single(o)),
			outs:  o,
			order: i,
		}
	})
	slices.SortStableFunc(entries, func(a, b entry) int {
		return cmp.Compare(b.info, a.info)
	})
	return entries
}

// Words returns the whole vocabulary ranked by standalone information.
func (s *Solver) Words() []RankedWord {
	rv := make([]RankedWord, len(s.ranked))
	for i, e := range s.ranked {
		rv[i] = RankedWord{Word: e.word, Info: e.info}
	}
	return rv
}

// Best is the single most informative guess.
func (s *Solver) Best() (RankedWord, bool) {
	if len(s.ranked) == 0 {
		return RankedWord{}, false
	}
	return RankedWord{Word: s.ranked[0].word, Info: s.ranked[0].info}, true
}

// outcomes returns the compressed outcomes of any valid word, reusing the
// ranked copy when the word is in the vocabulary.
func (s *Solver) outcomes(word string) (outcome.Outcomes, error) {
	if i, ok := s.index[word]; ok {
		return s.ranked[i].outs, nil
	}
	if err := s.validate(word); err != nil {
		return outcome.Outcomes{}, err
	}
	return outcome.New(word, s.enc, s.table), nil
}

// Info is the standalone information of a word. The word need not be in
// the vocabulary.
func (s *Solver) Info(word string) (float64, error) {
	if i, ok := s.index[word]; ok {
		return s.ranked[i].info, nil
	}
	o, err := s.outcomes(word)
	if err != nil {
		return 0, err
	}
	return entropy.Info(o.Histogram()), nil
}

// JointInfo is the information of playing one, two or three words together.
func (s *Solver) JointInfo(words ...string) (float64, error) {
	if len(words) < 1 || len(words) > 3 {
		return 0, fmt.Errorf("joint information needs 1 to 3 words, got %d", len(words))
	}
	outs := make([]outcome.Outcomes, len(words))
	for i, w := range words {
		o, err := s.outcomes(w)
		if err != nil {
			return 0, err
		}
		outs[i] = o
	}
	var sc bucket.Scratch
	switch len(outs) {
	case 1:
		return entropy.Info(sc.Single(outs[0])), nil
	case 2:
		return entropy.Info(sc.Two(outs[0], outs[1])), nil
	}
	return entropy.Info(sc.Three(outs[0], outs[1], outs[2])), nil
}

// Bucket is one realized outcome of a word and the answers producing it.
type Bucket struct {
	Code    outcome.Code `yaml:"code"`
	Label   string       `yaml:"label"`
	Count   int          `yaml:"count"`
	Answers []string     `yaml:"answers,omitempty"`
}

// Buckets splits the answers by the raw outcome of word, largest bucket
// first. It also returns the word's information.
func (s *Solver) Buckets(word string) ([]Bucket, float64, error) {
	if err := s.validate(word); err != nil {
		return nil, 0, err
	}
	raw := outcome.Uncompressed(word, s.enc, s.table)
	byCode := map[outcome.Code]*Bucket{}
	var order []outcome.Code
	for i, c := range raw.Codes {
		b, ok := byCode[c]
		if !ok {
			b = &Bucket{Code: c, Label: s.enc.Label(c, s.length)}
			byCode[c] = b
			order = append(order, c)
		}
		b.Count++
		b.Answers = append(b.Answers, s.answers[i])
	}
	rv := make([]Bucket, 0, len(order))
	for _, c := range order {
		rv = append(rv, *byCode[c])
	}
	slices.SortStableFunc(rv, func(a, b Bucket) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Code, b.Code)
	})
	return rv, entropy.Info(raw.Histogram()), nil
}
