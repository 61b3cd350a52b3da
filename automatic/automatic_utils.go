package automatic

// Batch play: solve many answers at once and summarize.

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/wordlebits/stats"
)

var (
	GamesCounter *expvar.Int
	IsPlaying    *expvar.Int
)

func init() {
	GamesCounter = expvar.NewInt("gamesCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// playing guards Run; the expvar only reports it.
var playing atomic.Bool

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// LogHeader is the first line of a game log.
var LogHeader = []string{"answer", "guesses", "solved", "path"}

// Summary aggregates a batch of games.
type Summary struct {
	Games  int     `yaml:"games"`
	Solved int     `yaml:"solved"`
	Mean   float64 `yaml:"mean"`
	Stdev  float64 `yaml:"stdev"`
	// CI95 is the half-width of the 95% confidence interval of Mean.
	CI95  float64 `yaml:"ci95"`
	Worst int     `yaml:"worst"`
	// Distribution maps a guess count to the number of games solved in it.
	Distribution map[int]int `yaml:"distribution"`
	Failures     []string    `yaml:"failures,omitempty"`
}

// Summarize folds results into a Summary. Only solved games count towards
// the guess statistics.
func Summarize(results []Result) Summary {
	var st stats.Statistic
	sum := Summary{Games: len(results), Distribution: map[int]int{}}
	for _, res := range results {
		if !res.Solved {
			sum.Failures = append(sum.Failures, res.Answer)
			continue
		}
		sum.Solved++
		st.Push(float64(len(res.Guesses)))
		sum.Distribution[len(res.Guesses)]++
	}
	sum.Mean = st.Mean()
	sum.Stdev = st.Stdev()
	sum.CI95 = st.CI(95)
	sum.Worst = int(st.Max())
	return sum
}

// Sample picks n distinct answers at random. It returns all of them, in
// random order, if n is not smaller than the number of answers.
func Sample(answers []string, n int) []string {
	perm := frand.Perm(len(answers))
	if n < len(perm) {
		perm = perm[:n]
	}
	rv := make([]string, len(perm))
	for i, p := range perm {
		rv[i] = answers[p]
	}
	return rv
}

func logRecord(res Result) []string {
	return []string{res.Answer, strconv.Itoa(len(res.Guesses)),
		strconv.FormatBool(res.Solved), strings.Join(res.Guesses, " ")}
}

// Run plays one game per answer on the runner's threads. If logw is not
// nil, one CSV record per game is written to it, in the order the answers
// were given. If ctx is done before every game finishes, Run returns only
// the context's error.
func (r *Runner) Run(ctx context.Context, answers []string, logw io.Writer) (Summary, []Result, error) {
	if !playing.CompareAndSwap(false, true) {
		return Summary{}, nil, ErrAlreadyPlaying
	}
	defer playing.Store(false)
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)

	log.Debug().Int("games", len(answers)).Int("threads", r.threads).
		Str("opener", r.opener).Msg("starting-games")
	results := make([]Result, len(answers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.threads)
	for i, a := range answers {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := r.Play(gctx, a)
			if err != nil {
				return err
			}
			results[i] = res
			GamesCounter.Add(1)
			if n := GamesCounter.Value(); n%1000 == 0 {
				log.Info().Int64("played", n).Msg("games-played")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, nil, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, nil, err
	}
	if logw != nil {
		w := csv.NewWriter(logw)
		records := [][]string{slices.Clone(LogHeader)}
		for _, res := range results {
			records = append(records, logRecord(res))
		}
		if err := w.WriteAll(records); err != nil {
			return Summary{}, nil, err
		}
	}
	sum := Summarize(results)
	log.Info().Int("games", sum.Games).Int("solved", sum.Solved).
		Float64("mean", sum.Mean).Float64("stdev", sum.Stdev).Msg("games-finished")
	return sum, results, nil
}
