package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebits/automatic"
	"github.com/domino14/wordlebits/config"
	"github.com/domino14/wordlebits/tilemapping"
)

// autoplay solves answers from the current state on its own and reports
// how many guesses it took.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	options := cmd.options
	n, err := options.IntDefault("n", 0)
	if err != nil {
		return nil, err
	}
	threads, err := options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	maxGuesses, err := options.IntDefault("max", automatic.DefaultMaxGuesses)
	if err != nil {
		return nil, err
	}
	runner, err := automatic.NewRunner(s, tilemapping.Normalize(options.String("opener")), maxGuesses, threads)
	if err != nil {
		return nil, err
	}
	answers := s.Answers()
	if n > 0 {
		answers = automatic.Sample(answers, n)
	}
	var logw io.Writer
	if logfile := options.String("log"); logfile != "" {
		f, err := os.Create(logfile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		logw = f
	}
	sc.showMessage(fmt.Sprintf("Playing %d games with opener %s...", len(answers), runner.Opener()))
	ctx := context.Background()
	sum, results, err := runner.Run(ctx, answers, logw)
	if err != nil {
		return nil, err
	}
	log.Debug().Int64("total-games", automatic.GamesCounter.Value()).Msg("autoplay-done")
	var saved string
	if dbfile := options.String("db"); dbfile != "" {
		st, err := automatic.OpenStore(ctx, dbfile)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		id, err := st.SaveRun(ctx, runner.Opener(), results)
		if err != nil {
			return nil, err
		}
		saved = fmt.Sprintf("\nSaved as run %d", id)
	}
	return sc.render(cmd, sum, func() string {
		return strings.TrimRight(automatic.FormatSummary(sum), "\n") + saved
	})
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	if dbfile := cmd.options.String("db"); dbfile != "" {
		return sc.analyzeStore(cmd, dbfile)
	}
	if cmd.args == nil {
		return nil, errors.New("please provide a log file to analyze")
	}
	analysis, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(analysis), nil
}

// analyzeStore summarizes a saved run, or lists the runs if none is named.
func (sc *ShellController) analyzeStore(cmd *shellcmd, dbfile string) (*Response, error) {
	ctx := context.Background()
	st, err := automatic.OpenStore(ctx, dbfile)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	if cmd.options.String("run") == "" {
		runs, err := st.Runs(ctx)
		if err != nil {
			return nil, err
		}
		return sc.render(cmd, runs, func() string {
			if len(runs) == 0 {
				return "No runs saved"
			}
			var sb strings.Builder
			for _, r := range runs {
				fmt.Fprintf(&sb, "%4d  %s  %-8s %d games\n", r.ID,
					r.Created.Local().Format(time.DateTime), r.Opener, r.Games)
			}
			return strings.TrimRight(sb.String(), "\n")
		})
	}
	id, err := cmd.options.Int("run")
	if err != nil {
		return nil, err
	}
	results, err := st.Results(ctx, int64(id))
	if err != nil {
		return nil, err
	}
	sum := automatic.Summarize(results)
	return sc.render(cmd, sum, func() string {
		return strings.TrimRight(automatic.FormatSummary(sum), "\n")
	})
}
