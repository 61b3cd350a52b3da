// Package testhelpers holds small deterministic word lists for tests.
package testhelpers

import "slices"

// answers is a slice of real five-letter game answers, chosen to include
// repeated letters and near-anagrams.
var answers = []string{
	"abide", "admit", "allay", "arose", "blimp", "brass", "cigar", "crane",
	"eerie", "llama", "react", "rebut", "speed", "trace", "sissy", "humph",
	"awake", "blush", "focal", "evade", "naval", "serve", "heath", "dwarf",
	"model", "karma", "stink", "grade", "quiet", "bench",
}

// guesses are extra words only ever played, never answers.
var guesses = []string{
	"soare", "salet", "clint", "aahed", "lolly", "eeeee", "fuzzy", "pygmy",
	"trace", "roate",
}

// Answers returns a fresh copy of the answer fixture.
func Answers() []string {
	return slices.Clone(answers)
}

// Guesses returns a fresh copy of the guess-only fixture. It overlaps the
// answers in one word.
func Guesses() []string {
	return slices.Clone(guesses)
}
