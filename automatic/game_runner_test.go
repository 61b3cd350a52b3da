package automatic

import (
	"context"
	"errors"
	"os"
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

func newRunner(t *testing.T, opener string) *Runner {
	t.Helper()
	s, err := solver.New(testhelpers.Guesses(), testhelpers.Answers(), 5)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRunner(s, opener, 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestPlaySolvesEveryAnswer(t *testing.T) {
	is := is.New(t)
	r := newRunner(t, "")
	for _, a := range testhelpers.Answers() {
		res, err := r.Play(context.Background(), a)
		is.NoErr(err)
		is.True(res.Solved)
		is.Equal(res.Guesses[len(res.Guesses)-1], a)
		is.Equal(res.Hints[len(res.Hints)-1], outcome.Label(outcome.Solved(5), 5))
		is.Equal(res.Guesses[0], r.Opener())
		is.Equal(len(res.Guesses), len(res.Hints))
	}
}

func TestPlayWithOpener(t *testing.T) {
	is := is.New(t)
	r := newRunner(t, "crane")
	res, err := r.Play(context.Background(), "crane")
	is.NoErr(err)
	is.Equal(res.Guesses, []string{"crane"})
	is.True(res.Solved)

	res, err = r.Play(context.Background(), "sissy")
	is.NoErr(err)
	is.Equal(res.Guesses[0], "crane")
	is.True(res.Solved)
}

func TestPlayRejectsUnknownAnswer(t *testing.T) {
	is := is.New(t)
	r := newRunner(t, "")
	_, err := r.Play(context.Background(), "soare")
	is.True(errors.Is(err, ErrNotAnAnswer))
}

func TestNewRunnerBadOpener(t *testing.T) {
	is := is.New(t)
	s, err := solver.New(testhelpers.Guesses(), testhelpers.Answers(), 5)
	is.NoErr(err)
	_, err = NewRunner(s, "toolong", 0, 1)
	is.True(err != nil)
}
