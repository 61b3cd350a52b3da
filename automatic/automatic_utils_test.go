package automatic

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordlebits/testhelpers"
)

func TestRun(t *testing.T) {
	is := is.New(t)
	r := newRunner(t, "")
	answers := testhelpers.Answers()
	var buf bytes.Buffer
	sum, results, err := r.Run(context.Background(), answers, &buf)
	is.NoErr(err)
	is.Equal(sum.Games, len(answers))
	is.Equal(sum.Solved, len(answers))
	is.Equal(len(sum.Failures), 0)
	is.True(sum.Mean >= 1)
	is.True(float64(sum.Worst) >= sum.Mean)
	total := 0
	for _, c := range sum.Distribution {
		total += c
	}
	is.Equal(total, len(answers))
	for i, res := range results {
		is.Equal(res.Answer, answers[i])
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	is.Equal(len(lines), len(answers)+1)
	is.Equal(lines[0], "answer,guesses,solved,path")

	// the log reads back into the same summary
	read, err := readLog(&buf)
	is.NoErr(err)
	is.Equal(Summarize(read), sum)
	is.Equal(IsPlaying.Value(), int64(0))
}

func TestRunAlreadyPlaying(t *testing.T) {
	is := is.New(t)
	r := newRunner(t, "")
	is.True(playing.CompareAndSwap(false, true))
	_, _, err := r.Run(context.Background(), testhelpers.Answers()[:3], nil)
	is.Equal(err, ErrAlreadyPlaying)
	playing.Store(false)

	before := GamesCounter.Value()
	sum, _, err := r.Run(context.Background(), testhelpers.Answers()[:3], nil)
	is.NoErr(err)
	is.Equal(sum.Games, 3)
	is.Equal(GamesCounter.Value()-before, int64(3))
}

func TestRunCanceled(t *testing.T) {
	is := is.New(t)
	r := newRunner(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := r.Run(ctx, testhelpers.Answers(), nil)
	is.True(err != nil)
}

func TestAnalyzeLogFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "games.csv")
	content := "answer,guesses,solved,path\n" +
		"crane,1,true,crane\n" +
		"brass,3,true,soare clint brass\n" +
		"sissy,2,true,soare sissy\n" +
		"humph,12,false,a b c\n"
	is.NoErr(os.WriteFile(path, []byte(content), 0o644))
	out, err := AnalyzeLogFile(path)
	is.NoErr(err)
	is.True(strings.Contains(out, "Games played: 4\n"))
	is.True(strings.Contains(out, "Solved: 3 (75.000%)\n"))
	is.True(strings.Contains(out, "Mean guesses: 2.0000"))
	is.True(strings.Contains(out, "Not solved: humph\n"))
}

func TestSample(t *testing.T) {
	is := is.New(t)
	answers := testhelpers.Answers()
	s := Sample(answers, 5)
	is.Equal(len(s), 5)
	is.Equal(len(slices.Compact(slices.Sorted(slices.Values(s)))), 5)
	for _, a := range s {
		is.True(slices.Contains(answers, a))
	}
	is.Equal(len(Sample(answers, 1000)), len(answers))
}
