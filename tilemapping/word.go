package tilemapping

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words are plain lowercase ASCII strings. A letter is addressed by its
// index from 0 ('a') to AlphabetSize-1 ('z').
const (
	AlphabetSize = 26
	// MaxWordLength bounds the word length so that a base-3 outcome code for
	// a full word still fits comfortably in a 32-bit integer, and the raw
	// outcome space (3^L) can be allocated as a lookup table.
	MaxWordLength = 10
)

var (
	ErrWordLength = errors.New("word has the wrong length")
	ErrBadLetter  = errors.New("word contains a letter outside of a-z")
)

// LetterCounts holds the number of times each letter occurs in a word.
type LetterCounts [AlphabetSize]uint8

// Index returns the alphabet index of a lowercase ASCII letter.
func Index(b byte) int {
	return int(b - 'a')
}

// Letter is the inverse of Index.
func Letter(idx int) byte {
	return byte(idx) + 'a'
}

// Counts tallies the letters of an already-validated word.
func Counts(word string) LetterCounts {
	var lc LetterCounts
	for i := 0; i < len(word); i++ {
		lc[Index(word[i])]++
	}
	return lc
}

// Validate checks that word has exactly length letters, all in a-z.
func Validate(word string, length int) error {
	if length < 1 || length > MaxWordLength {
		return fmt.Errorf("%w: length %d is not supported", ErrWordLength, length)
	}
	if len(word) != length {
		return fmt.Errorf("%w: %q has %d letters, expected %d", ErrWordLength,
			word, len(word), length)
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return fmt.Errorf("%w: %q at position %d", ErrBadLetter, word, i)
		}
	}
	return nil
}

// ValidateAll validates every word in the list and reports the first failure.
func ValidateAll(words []string, length int) error {
	for _, w := range words {
		if err := Validate(w, length); err != nil {
			return err
		}
	}
	return nil
}

// Normalize trims and lowercases user-typed text. It does not validate.
func Normalize(s string) string {
	// A Caser keeps state, so we make a fresh one per call.
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
