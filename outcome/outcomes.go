package outcome

import (
	"github.com/domino14/wordlebits/answertable"
)

// Outcomes is a per-answer sequence of labels together with the number of
// labels in use. After compression the labels are dense, 0 to Max-1, in
// order of first appearance.
type Outcomes struct {
	Codes []Code
	Max   int
}

const unseen = ^Code(0)

// Compress relabels raw codes in place. size bounds the raw codes (every
// raw code must be below it). The partition of answers is unchanged: two
// answers share a compressed label iff they shared a raw code.
func Compress(raw []Code, size int) Outcomes {
	xlate := make([]Code, size)
	for i := range xlate {
		xlate[i] = unseen
	}
	var next Code
	for i, c := range raw {
		if xlate[c] == unseen {
			xlate[c] = next
			next++
		}
		raw[i] = xlate[c]
	}
	return Outcomes{Codes: raw, Max: int(next)}
}

// New encodes guess against every answer of t and compresses the result.
func New(guess string, enc Encoder, t *answertable.Table) Outcomes {
	raw := enc.Encode(guess, t, nil)
	return Compress(raw, enc.Size(t.WordLength()))
}

// Uncompressed encodes guess but keeps raw codes; Max is the encoder's
// full code space.
func Uncompressed(guess string, enc Encoder, t *answertable.Table) Outcomes {
	return Outcomes{
		Codes: enc.Encode(guess, t, nil),
		Max:   enc.Size(t.WordLength()),
	}
}

// Len is the number of answers covered.
func (o Outcomes) Len() int {
	return len(o.Codes)
}

// Histogram counts the answers per label. The result has Max entries.
func (o Outcomes) Histogram() []int {
	h := make([]int, o.Max)
	for _, c := range o.Codes {
		h[c]++
	}
	return h
}
