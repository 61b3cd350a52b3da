package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/domino14/wordlebits/solver"
)

const (
	plotBins  = 15
	plotWidth = 40
	// buckets with more answers than this are shown without them
	maxShownAnswers = 12
)

func (sc *ShellController) buckets(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: buckets <word> [-plot true] [-answers true]")
	}
	word := cmd.args[0]
	buckets, h, err := s.Buckets(word)
	if err != nil {
		return nil, err
	}
	showAll := cmd.options.Bool("answers")
	if cmd.options.Bool("yaml") && !showAll {
		buckets = lo.Map(buckets, func(b solver.Bucket, _ int) solver.Bucket {
			b.Answers = nil
			return b
		})
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s bits, %d buckets over %d answers\n", word, sc.bits(h), len(buckets), s.Len())
	if cmd.options.Bool("plot") && len(buckets) > 0 {
		sizes := lo.Map(buckets, func(b solver.Bucket, _ int) float64 {
			return float64(b.Count)
		})
		sb.WriteString("bucket sizes:\n")
		hist := histogram.Hist(min(plotBins, len(sizes)), sizes)
		if err := histogram.Fprint(&sb, hist, histogram.Linear(plotWidth)); err != nil {
			return nil, err
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	return sc.render(cmd, buckets, func() string {
		for _, b := range buckets {
			fmt.Fprintf(&sb, "%-12s %5d", b.Label, b.Count)
			if showAll || b.Count <= maxShownAnswers {
				fmt.Fprintf(&sb, "  %s", strings.Join(b.Answers, " "))
			}
			sb.WriteString("\n")
		}
		return strings.TrimRight(sb.String(), "\n")
	})
}
