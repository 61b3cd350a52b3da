package dataloaders

import (
	"strconv"

	"github.com/domino14/wordlebits/cache"
	"github.com/domino14/wordlebits/config"
	"github.com/domino14/wordlebits/solver"
)

// LoadSolver reads both word lists and builds the starting snapshot with
// the configured encoding and thread count. Snapshots are cached by the
// content of the lists, so loading the same lists again is cheap.
func LoadSolver(cfg *config.Config, wordsPath, answersPath string, length int) (*solver.Solver, error) {
	enc, err := cfg.Encoder()
	if err != nil {
		return nil, err
	}
	words, err := LoadWordList(wordsPath)
	if err != nil {
		return nil, err
	}
	answers, err := LoadWordList(answersPath)
	if err != nil {
		return nil, err
	}
	threads := cfg.GetInt(config.ConfigThreads)
	key := cache.Key(enc.Name()+"-"+strconv.Itoa(length), words, answers)
	obj, err := cache.Load(cfg, key, func(cfg *config.Config, key string) (any, error) {
		return solver.New(words, answers, length,
			solver.WithEncoder(enc),
			solver.WithThreads(threads))
	})
	if err != nil {
		return nil, err
	}
	return obj.(*solver.Solver).Configure(solver.WithThreads(threads)), nil
}
