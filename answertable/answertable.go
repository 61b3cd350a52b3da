// Package answertable precomputes, for every board position and letter, a
// column with one marker per answer. Outcome encoders read these columns
// instead of re-scanning every answer's text for every guess.
package answertable

import (
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebits/tilemapping"
)

// ExactMask is set on a cell when the answer has exactly this letter at this
// position. The low bits of a cell always hold the number of times the letter
// occurs anywhere in the answer, so encoders that ignore position can still
// read the count.
const (
	ExactMask uint8 = 0x80
	CountMask uint8 = 0x7f
)

// warn if a single table would take more than this fraction of RAM.
const memoryWarnFraction = 0.25

// Table is immutable once built.
type Table struct {
	length int
	n      int
	// cols[pos*AlphabetSize+letter] has n cells, one per answer.
	cols [][]uint8
}

// Cell computes the marker for one answer at one position for one guess
// letter. letter and answerLetter are lowercase ASCII.
func Cell(letter, answerLetter byte, count uint8) uint8 {
	if letter == answerLetter {
		return count | ExactMask
	}
	return count
}

// IsExact reports whether the cell marks an exact positional match.
func IsExact(cell uint8) bool {
	return cell&ExactMask != 0
}

// Count extracts the letter count from a cell.
func Count(cell uint8) uint8 {
	return cell & CountMask
}

// New builds a table for the given answers. The answers must already have
// been validated to be of the given length.
func New(answers []string, length int) *Table {
	n := len(answers)
	t := &Table{
		length: length,
		n:      n,
		cols:   make([][]uint8, length*tilemapping.AlphabetSize),
	}
	if total := memory.TotalMemory(); total > 0 &&
		float64(t.Bytes()) > memoryWarnFraction*float64(total) {
		log.Warn().Int("table-bytes", t.Bytes()).Uint64("total-system-memory-bytes", total).
			Msg("answer-table-is-large")
	}

	counts := make([]tilemapping.LetterCounts, n)
	for i, a := range answers {
		counts[i] = tilemapping.Counts(a)
	}
	// Allocate every column out of one backing slice.
	backing := make([]uint8, len(t.cols)*n)
	for pos := 0; pos < length; pos++ {
		for letter := 0; letter < tilemapping.AlphabetSize; letter++ {
			idx := pos*tilemapping.AlphabetSize + letter
			col := backing[idx*n : (idx+1)*n : (idx+1)*n]
			ch := tilemapping.Letter(letter)
			for i, a := range answers {
				col[i] = Cell(ch, a[pos], counts[i][letter])
			}
			t.cols[idx] = col
		}
	}
	return t
}

// Column returns the cells for a guess letter at a position. The returned
// slice must not be modified.
func (t *Table) Column(pos int, letter byte) []uint8 {
	return t.cols[pos*tilemapping.AlphabetSize+tilemapping.Index(letter)]
}

// Len is the number of answers the table was built for.
func (t *Table) Len() int {
	return t.n
}

// WordLength is the fixed word length the table was built for.
func (t *Table) WordLength() int {
	return t.length
}

// Bytes is the size of the cell storage.
func (t *Table) Bytes() int {
	return t.length * tilemapping.AlphabetSize * t.n
}
