// Package outcome turns a guess into one outcome code per remaining answer.
//
// An Encoder decides which hint a guess would receive against an answer.
// The standard encoder produces the full game hint as a base-3 number, one
// digit per position, most significant first: 0 for an absent letter, 1 for
// a letter present elsewhere and 2 for an exact match. The coarse encoders
// only count letters, which gives far fewer possible outcomes.
//
// Letters are credited left to right. A guess letter counts as present only
// while the running tally of that letter in the guess does not exceed the
// number of times it occurs in the answer.
package outcome

import (
	"github.com/domino14/wordlebits/answertable"
	"github.com/domino14/wordlebits/tilemapping"
)

// Code is a raw or compressed outcome label.
type Code uint32

// Digit weights of the standard encoder.
const (
	Absent  Code = 0
	Present Code = 1
	Exact   Code = 2
)

// Encoder is a pluggable outcome-encoding convention.
type Encoder interface {
	// Name identifies the encoder in configuration.
	Name() string
	// Size is the number of possible raw codes for the given word length.
	Size(length int) int
	// Encode writes the raw code of guess against each answer of t into dst,
	// growing it if needed, and returns it.
	Encode(guess string, t *answertable.Table, dst []Code) []Code
	// Code computes the raw code of guess against a single answer. It always
	// agrees with Encode.
	Code(guess, answer string) Code
	// Label renders a raw code for display.
	Label(c Code, length int) string
}

// FromName returns the encoder for a configuration name.
func FromName(name string) (Encoder, bool) {
	switch name {
	case "standard", "exact", "":
		return Standard{}, true
	case "hits":
		return Hits{}, true
	case "counts":
		return Counts{}, true
	}
	return nil, false
}

func resize(dst []Code, n int) []Code {
	if cap(dst) < n {
		return make([]Code, n)
	}
	dst = dst[:n]
	clear(dst)
	return dst
}

// walk feeds the cells that a table column would hold for a single answer.
func walk(guess, answer string, fn func(cell, tally uint8)) {
	counts := tilemapping.Counts(answer)
	var tally tilemapping.LetterCounts
	for pos := 0; pos < len(guess); pos++ {
		li := tilemapping.Index(guess[pos])
		tally[li]++
		fn(answertable.Cell(guess[pos], answer[pos], counts[li]), tally[li])
	}
}
