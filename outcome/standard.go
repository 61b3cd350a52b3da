package outcome

import (
	"github.com/domino14/wordlebits/answertable"
	"github.com/domino14/wordlebits/tilemapping"
)

// Standard encodes the full per-position hint in base 3.
type Standard struct{}

func (Standard) Name() string { return "standard" }

func (Standard) Size(length int) int {
	n := 1
	for i := 0; i < length; i++ {
		n *= 3
	}
	return n
}

func standardDigit(cell, tally uint8) Code {
	switch {
	case answertable.IsExact(cell):
		return Exact
	case answertable.Count(cell) >= tally:
		return Present
	}
	return Absent
}

func (Standard) Encode(guess string, t *answertable.Table, dst []Code) []Code {
	dst = resize(dst, t.Len())
	var tally tilemapping.LetterCounts
	for pos := 0; pos < len(guess); pos++ {
		li := tilemapping.Index(guess[pos])
		tally[li]++
		n := tally[li]
		col := t.Column(pos, guess[pos])
		for i, cell := range col {
			dst[i] = dst[i]*3 + standardDigit(cell, n)
		}
	}
	return dst
}

func (Standard) Code(guess, answer string) Code {
	var c Code
	walk(guess, answer, func(cell, tally uint8) {
		c = c*3 + standardDigit(cell, tally)
	})
	return c
}

func (Standard) Label(c Code, length int) string {
	return Label(c, length)
}

// Solved is the all-exact code for a word length.
func Solved(length int) Code {
	return Code(Standard{}.Size(length) - 1)
}
