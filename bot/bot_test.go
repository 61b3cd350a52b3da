package bot

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"slices"
	"strconv"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/wordlebits/outcome"
	"github.com/domino14/wordlebits/solver"
	"github.com/domino14/wordlebits/testhelpers"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newBot(t *testing.T) *Bot {
	t.Helper()
	root, err := solver.New(testhelpers.Guesses(), testhelpers.Answers(), 5, solver.WithThreads(2))
	if err != nil {
		t.Fatal(err)
	}
	return NewBot(root)
}

func TestSuggestOpening(t *testing.T) {
	is := is.New(t)
	b := newBot(t)
	resp, err := b.Suggest(Request{ID: "g1"})
	is.NoErr(err)
	best, _ := b.root.Best()
	is.Equal(resp.ID, "g1")
	is.Equal(resp.Guess, best.Word)
	is.Equal(resp.Info, best.Info)
	is.Equal(resp.Remaining, len(testhelpers.Answers()))
	// too many to list
	is.Equal(resp.Answers, nil)
}

// Following the bot's own suggestions always reaches the answer.
func TestSuggestPlaysOut(t *testing.T) {
	is := is.New(t)
	b := newBot(t)
	for _, answer := range testhelpers.Answers() {
		var req Request
		for turn := 0; turn <= len(testhelpers.Answers()); turn++ {
			resp, err := b.Suggest(req)
			is.NoErr(err)
			is.True(slices.Contains(resp.Answers, answer) || resp.Answers == nil)
			code := outcome.Standard{}.Code(resp.Guess, answer)
			req.History = append(req.History, Step{Guess: resp.Guess, Hint: outcome.Label(code, 5)})
			if resp.Guess == answer {
				break
			}
		}
		is.Equal(req.History[len(req.History)-1].Guess, answer)
	}
}

func TestSuggestMixedCaseGuess(t *testing.T) {
	is := is.New(t)
	b := newBot(t)
	hint := outcome.Label(outcome.Standard{}.Code("soare", "speed"), 5)
	lower, err := b.Suggest(Request{History: []Step{{Guess: "soare", Hint: hint}}})
	is.NoErr(err)
	mixed, err := b.Suggest(Request{History: []Step{{Guess: " SoARE", Hint: hint}}})
	is.NoErr(err)
	is.Equal(mixed, lower)
}

func TestSuggestCoarseEncodings(t *testing.T) {
	is := is.New(t)
	b := newBot(t)
	hits := outcome.Hits{}.Code("soare", "speed")
	resp, err := b.Suggest(Request{Encoding: "hits", History: []Step{
		{Guess: "soare", Hint: strconv.Itoa(int(hits))},
	}})
	is.NoErr(err)
	want, err := b.root.Pruned("soare", int(hits))
	is.NoErr(err)
	is.Equal(resp.Remaining, want.Len())

	resp, err = b.Suggest(Request{Encoding: "counts", History: []Step{
		{Guess: "soare", Hint: "1,1"},
	}})
	is.NoErr(err)
	want, err = b.root.PrunedCounts("soare", 1, 1)
	is.NoErr(err)
	is.Equal(resp.Remaining, want.Len())
}

func TestSuggestErrors(t *testing.T) {
	is := is.New(t)
	b := newBot(t)
	for _, req := range []Request{
		{Encoding: "nope"},
		{History: []Step{{Guess: "soare", Hint: "!!"}}},
		{Encoding: "hits", History: []Step{{Guess: "soare", Hint: "9"}}},
		{Encoding: "counts", History: []Step{{Guess: "soare", Hint: "3"}}},
		{History: []Step{{Guess: "soar", Hint: "____"}}},
	} {
		_, err := b.Suggest(req)
		is.True(err != nil)
	}
	// fuzzy shares no letters with any answer
	_, err := b.Suggest(Request{History: []Step{{Guess: "fuzzy", Hint: "!!!!!"}}})
	is.True(errors.Is(err, ErrNoSuggestion))
}

func TestHandle(t *testing.T) {
	is := is.New(t)
	b := newBot(t)
	data, err := json.Marshal(Request{ID: "x", History: []Step{{Guess: "crane", Hint: "!!!!!"}}})
	is.NoErr(err)
	resp := b.Handle(data)
	is.Equal(resp.Error, "")
	is.Equal(resp.Guess, "crane")
	is.Equal(resp.Answers, []string{"crane"})

	resp = b.Handle([]byte("{"))
	is.True(resp.Error != "")
	resp = b.Handle([]byte(`{"id":"y","encoding":"nope"}`))
	is.Equal(resp.ID, "y")
	is.True(resp.Error != "")
}

func TestDecodeResponse(t *testing.T) {
	is := is.New(t)
	resp, err := decodeResponse([]byte(`{"guess":"soare","remaining":3}`))
	is.NoErr(err)
	is.Equal(resp.Guess, "soare")
	_, err = decodeResponse([]byte(`{"error":"boom"}`))
	is.True(err != nil)
}

func TestLocal(t *testing.T) {
	is := is.New(t)
	var s Suggester = Local{newBot(t)}
	_, err := s.Suggest(context.Background(), Request{})
	is.NoErr(err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Suggest(ctx, Request{})
	is.True(errors.Is(err, context.Canceled))
}

func TestFormatHint(t *testing.T) {
	is := is.New(t)
	for _, enc := range []outcome.Encoder{outcome.Standard{}, outcome.Hits{}, outcome.Counts{}} {
		for _, answer := range testhelpers.Answers() {
			code := enc.Code("roate", answer)
			back, err := parseHint(enc, FormatHint(enc, code, 5), 5)
			is.NoErr(err)
			is.Equal(back, code)
		}
	}
	is.Equal(FormatHint(outcome.Counts{}, outcome.CountsCode(2, 1, 5), 5), "2,1")
}
