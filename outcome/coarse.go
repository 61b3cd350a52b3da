package outcome

import (
	"fmt"

	"github.com/domino14/wordlebits/answertable"
	"github.com/domino14/wordlebits/tilemapping"
)

// Hits counts the guess letters shared with the answer, with repeats
// credited only up to the letter's multiplicity in the answer. Position is
// ignored.
type Hits struct{}

func (Hits) Name() string { return "hits" }

func (Hits) Size(length int) int { return length + 1 }

func (Hits) Encode(guess string, t *answertable.Table, dst []Code) []Code {
	dst = resize(dst, t.Len())
	var tally tilemapping.LetterCounts
	for pos := 0; pos < len(guess); pos++ {
		li := tilemapping.Index(guess[pos])
		tally[li]++
		n := tally[li]
		for i, cell := range t.Column(pos, guess[pos]) {
			if answertable.Count(cell) >= n {
				dst[i]++
			}
		}
	}
	return dst
}

func (Hits) Code(guess, answer string) Code {
	var c Code
	walk(guess, answer, func(cell, tally uint8) {
		if answertable.Count(cell) >= tally {
			c++
		}
	})
	return c
}

func (Hits) Label(c Code, _ int) string {
	if c == 1 {
		return "1 hit"
	}
	return fmt.Sprintf("%d hits", c)
}

// Counts keeps the number of present-elsewhere (yellow) and exact (green)
// letters separately. The code is yellow*(length+1) + green.
type Counts struct{}

func (Counts) Name() string { return "counts" }

func (Counts) Size(length int) int { return (length + 1) * (length + 1) }

func (Counts) Encode(guess string, t *answertable.Table, dst []Code) []Code {
	n := t.Len()
	dst = resize(dst, n)
	// yellows count in units of base, greens in units of one.
	base := Code(t.WordLength() + 1)
	var tally tilemapping.LetterCounts
	for pos := 0; pos < len(guess); pos++ {
		li := tilemapping.Index(guess[pos])
		tally[li]++
		k := tally[li]
		for i, cell := range t.Column(pos, guess[pos]) {
			switch {
			case answertable.IsExact(cell):
				dst[i]++
			case answertable.Count(cell) >= k:
				dst[i] += base
			}
		}
	}
	return dst
}

func (Counts) Code(guess, answer string) Code {
	var yellow, green Code
	walk(guess, answer, func(cell, tally uint8) {
		switch {
		case answertable.IsExact(cell):
			green++
		case answertable.Count(cell) >= tally:
			yellow++
		}
	})
	return yellow*Code(len(guess)+1) + green
}

func (Counts) Label(c Code, length int) string {
	base := Code(length + 1)
	return fmt.Sprintf("%dY %dG", c/base, c%base)
}

// CountsCode builds a Counts code from its parts.
func CountsCode(yellow, green, length int) Code {
	return Code(yellow*(length+1) + green)
}
