package dataloaders

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordlebits/config"
	"github.com/domino14/wordlebits/tilemapping"
)

func TestLoadSolver(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	answers := filepath.Join(dir, "answers.txt")
	is.NoErr(os.WriteFile(words, []byte("soare\nclint\n"), 0o644))
	is.NoErr(os.WriteFile(answers, []byte("abide\nblimp\nspeed\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigThreads, 3)
	cfg.Set(config.ConfigEncoding, "counts")
	s, err := LoadSolver(&cfg, words, answers, 5)
	is.NoErr(err)
	is.Equal(s.Len(), 3)
	is.Equal(s.Threads(), 3)
	is.Equal(s.Encoder().Name(), "counts")
	is.Equal(s.Vocabulary(), []string{"soare", "clint", "abide", "blimp", "speed"})

	cfg.Set(config.ConfigThreads, 1)
	again, err := LoadSolver(&cfg, words, answers, 5)
	is.NoErr(err)
	is.Equal(again.Threads(), 1)
	is.Equal(again.Words(), s.Words())

	_, err = LoadSolver(&cfg, words, answers, 6)
	is.True(errors.Is(err, tilemapping.ErrWordLength))
	_, err = LoadSolver(&cfg, filepath.Join(dir, "missing.txt"), answers, 5)
	is.True(errors.Is(err, os.ErrNotExist))
}
