package automatic

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestStore(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	st, err := OpenStore(ctx, filepath.Join(t.TempDir(), "runs.db"))
	is.NoErr(err)
	defer st.Close()

	first := []Result{
		{Answer: "crane", Guesses: []string{"crane"}, Hints: []string{"!!!!!"}, Solved: true},
		{Answer: "brass", Guesses: []string{"soare", "brass"}, Hints: []string{"?_?!_", "!!!!!"}, Solved: true},
	}
	second := []Result{
		{Answer: "humph", Guesses: []string{"soare", "clint"}, Hints: []string{"_____", "_____"}},
	}
	id1, err := st.SaveRun(ctx, "soare", first)
	is.NoErr(err)
	id2, err := st.SaveRun(ctx, "clint", second)
	is.NoErr(err)
	is.True(id2 > id1)

	runs, err := st.Runs(ctx)
	is.NoErr(err)
	is.Equal(len(runs), 2)
	is.Equal(runs[0].ID, id2) // newest first
	is.Equal(runs[0].Opener, "clint")
	is.Equal(runs[1].Games, 2)

	got, err := st.Results(ctx, id1)
	is.NoErr(err)
	is.Equal(got, first)
	is.Equal(Summarize(got), Summarize(first))

	_, err = st.Results(ctx, id2+10)
	is.True(err != nil)
}

func TestStoreReopen(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")
	st, err := OpenStore(ctx, path)
	is.NoErr(err)
	id, err := st.SaveRun(ctx, "soare", []Result{{Answer: "crane", Guesses: []string{"soare", "crane"},
		Hints: []string{"__?!!", "!!!!!"}, Solved: true}})
	is.NoErr(err)
	is.NoErr(st.Close())

	st, err = OpenStore(ctx, path)
	is.NoErr(err)
	defer st.Close()
	got, err := st.Results(ctx, id)
	is.NoErr(err)
	is.Equal(len(got), 1)
	is.Equal(got[0].Guesses, []string{"soare", "crane"})
}
