package outcome

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadHint = errors.New("hint is not valid")

// Glyphs used by Label, indexed by digit.
var glyphs = [3]byte{'_', '?', '!'}

// ANSI colors for Colored.
const (
	reset    = "\033[0m"
	grayBg   = "\033[48;5;236m\033[38;5;255m"
	yellowBg = "\033[43m\033[30m"
	greenBg  = "\033[42m\033[30m"
)

// Digits splits a standard code into its per-position digits.
func Digits(c Code, length int) []Code {
	d := make([]Code, length)
	for i := length - 1; i >= 0; i-- {
		d[i] = c % 3
		c /= 3
	}
	return d
}

// Label renders a standard code as one glyph per position: '_' absent,
// '?' present elsewhere, '!' exact.
func Label(c Code, length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for _, d := range Digits(c, length) {
		sb.WriteByte(glyphs[d])
	}
	return sb.String()
}

// Parse reads a hint typed by a user. Exact matches may be written as '!',
// 'y' or 'Y'; present-elsewhere letters as '?', 'g' or 'G'; absent letters
// as '_' or '.'.
func Parse(s string, length int) (Code, error) {
	s = strings.TrimSpace(s)
	if len(s) != length {
		return 0, fmt.Errorf("%w: %q has %d positions, expected %d", ErrBadHint,
			s, len(s), length)
	}
	var c Code
	for i := 0; i < len(s); i++ {
		c *= 3
		switch s[i] {
		case '!', 'y', 'Y':
			c += Exact
		case '?', 'g', 'G':
			c += Present
		case '_', '.':
		default:
			return 0, fmt.Errorf("%w: unknown character %q", ErrBadHint, s[i])
		}
	}
	return c, nil
}

// Colored renders word with a colored background per letter, following the
// hint c.
func Colored(word string, c Code) string {
	var sb strings.Builder
	for i, d := range Digits(c, len(word)) {
		switch d {
		case Absent:
			sb.WriteString(grayBg)
		case Present:
			sb.WriteString(yellowBg)
		case Exact:
			sb.WriteString(greenBg)
		}
		sb.WriteByte(word[i])
		sb.WriteByte(' ')
		sb.WriteString(reset)
	}
	return sb.String()
}
