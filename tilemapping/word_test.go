package tilemapping

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestCounts(t *testing.T) {
	is := is.New(t)
	lc := Counts("brass")
	is.Equal(lc, LetterCounts{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 0, 0, 0, 0, 0, 0, 0})
}

func TestValidate(t *testing.T) {
	is := is.New(t)
	is.NoErr(Validate("crane", 5))
	is.True(errors.Is(Validate("cranes", 5), ErrWordLength))
	is.True(errors.Is(Validate("cran", 5), ErrWordLength))
	is.True(errors.Is(Validate("Crane", 5), ErrBadLetter))
	is.True(errors.Is(Validate("cr4ne", 5), ErrBadLetter))
	is.True(errors.Is(Validate("abcdefghijk", 11), ErrWordLength))
	is.True(errors.Is(Validate("", 0), ErrWordLength))
}

func TestValidateAll(t *testing.T) {
	is := is.New(t)
	is.NoErr(ValidateAll([]string{"abide", "blimp"}, 5))
	err := ValidateAll([]string{"abide", "blim"}, 5)
	is.True(errors.Is(err, ErrWordLength))
}

func TestNormalize(t *testing.T) {
	is := is.New(t)
	is.Equal(Normalize("  SOARE\n"), "soare")
	is.Equal(Normalize("Crane"), "crane")
}

func TestIndexLetter(t *testing.T) {
	is := is.New(t)
	for i := 0; i < AlphabetSize; i++ {
		is.Equal(Index(Letter(i)), i)
	}
	is.Equal(Index('z'), 25)
}
