package shell

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"

	"github.com/domino14/wordlebits/config"
	"github.com/domino14/wordlebits/dataloaders"
	"github.com/domino14/wordlebits/outcome"
	"github.com/domino14/wordlebits/solver"
)

const defaultListSize = 10

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func (c CmdOptions) Float(key string) (float64, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.ParseFloat(v[0], 64)
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}

// loaded returns the current snapshot, or an error if nothing is loaded.
func (sc *ShellController) loaded() (*solver.Solver, error) {
	if sc.state == nil {
		return nil, errNotLoaded
	}
	return sc.state, nil
}

func (sc *ShellController) bits(h float64) string {
	return strconv.FormatFloat(h, 'f', sc.config.GetInt(config.ConfigPrecision), 64)
}

// render marshals v as YAML when asked to, and otherwise uses the text
// renderer.
func (sc *ShellController) render(cmd *shellcmd, v any, text func() string) (*Response, error) {
	if cmd.options.Bool("yaml") {
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, err
		}
		return msg(strings.TrimRight(string(out), "\n")), nil
	}
	return msg(text()), nil
}

// withBar returns the current snapshot reporting its search progress to a
// progress bar on stderr.
func (sc *ShellController) withBar(s *solver.Solver, desc string) (*solver.Solver, *progressbar.ProgressBar) {
	bar := progressbar.NewOptions(len(s.Words()),
		progressbar.OptionSetWriter(sc.l.Stderr()),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionClearOnFinish(),
	)
	return s.Configure(solver.WithProgress(func(int, int) {
		bar.Add(1)
	})), bar
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	wordsPath, answersPath := sc.config.WordsPath(), sc.config.AnswersPath()
	switch len(cmd.args) {
	case 0:
	case 2:
		wordsPath, answersPath = cmd.args[0], cmd.args[1]
	default:
		return nil, errors.New("usage: load [<words-file> <answers-file>]")
	}
	length, err := cmd.options.IntDefault("length", sc.config.GetInt(config.ConfigWordLength))
	if err != nil {
		return nil, err
	}
	root, err := dataloaders.LoadSolver(sc.config, wordsPath, answersPath, length)
	if err != nil {
		return nil, err
	}
	sc.root = root
	sc.state = root
	sc.history = nil
	sc.curMode = StandardMode
	return msg(fmt.Sprintf("Loaded %d guesses and %d answers from %s and %s",
		len(root.Vocabulary()), root.Len(), filepath.Base(wordsPath), filepath.Base(answersPath))), nil
}

var settable = []string{
	config.ConfigThreads, config.ConfigPrecision, config.ConfigEncoding,
	config.ConfigWordLength, config.ConfigDebug,
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		var sb strings.Builder
		for _, k := range settable {
			fmt.Fprintf(&sb, "%-12s %v\n", k, sc.config.Get(k))
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	opt := cmd.args[0]
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%v", sc.config.Get(opt))), nil
	}
	val := cmd.args[1]
	switch opt {
	case config.ConfigThreads, config.ConfigPrecision, config.ConfigWordLength:
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		if n < 0 || (opt == config.ConfigThreads && n == 0) {
			return nil, fmt.Errorf("%s must be positive", opt)
		}
		sc.config.Set(opt, n)
		if opt == config.ConfigThreads && sc.state != nil {
			sc.root = sc.root.Configure(solver.WithThreads(n))
			sc.state = sc.state.Configure(solver.WithThreads(n))
		}
		if opt == config.ConfigWordLength {
			return msg("word-length set; run `load` to apply it"), nil
		}
	case config.ConfigEncoding:
		enc, ok := outcome.FromName(val)
		if !ok {
			return nil, fmt.Errorf("unknown encoding %q", val)
		}
		sc.config.Set(opt, val)
		if sc.state != nil {
			sc.root = sc.root.Configure(solver.WithEncoder(enc))
			sc.state = sc.state.Configure(solver.WithEncoder(enc))
		}
	case config.ConfigDebug:
		on, err := strconv.ParseBool(val)
		if err != nil {
			return nil, err
		}
		sc.config.Set(opt, on)
		setLogLevel(on)
	default:
		return nil, fmt.Errorf("option %s cannot be set", opt)
	}
	return msg(fmt.Sprintf("set %s to %v", opt, sc.config.Get(opt))), nil
}

func (sc *ShellController) showState(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	type stateView struct {
		Encoding  string   `yaml:"encoding"`
		Threads   int      `yaml:"threads"`
		Guesses   int      `yaml:"guesses"`
		Remaining int      `yaml:"remaining"`
		History   []string `yaml:"history"`
		Answers   []string `yaml:"answers,omitempty"`
	}
	v := stateView{
		Encoding:  s.Encoder().Name(),
		Threads:   s.Threads(),
		Guesses:   len(s.Vocabulary()),
		Remaining: s.Len(),
		History:   lo.Map(sc.history, func(p played, _ int) string { return p.String() }),
	}
	if s.Len() <= 50 || cmd.options.Bool("all") {
		v.Answers = s.Answers()
	}
	return sc.render(cmd, v, func() string {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Encoding: %s  Threads: %d\n", v.Encoding, v.Threads)
		fmt.Fprintf(&sb, "%d guesses, %d answers remaining\n", v.Guesses, v.Remaining)
		for i, h := range v.History {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, h)
		}
		if v.Answers != nil {
			sb.WriteString(strings.Join(v.Answers, " "))
		}
		return strings.TrimRight(sb.String(), "\n")
	})
}

func (sc *ShellController) reset(cmd *shellcmd) (*Response, error) {
	if sc.root == nil {
		return nil, errNotLoaded
	}
	sc.state = sc.root
	sc.history = nil
	sc.curMode = StandardMode
	return msg(fmt.Sprintf("%d answers remaining", sc.state.Len())), nil
}

// prune applies a hint to the current state. The hint is a full hint
// string, or -hits N, or -yellow Y -green G.
func (sc *ShellController) prune(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: prune <guess> <hint> | <guess> -hits N | <guess> -yellow Y -green G")
	}
	guess := cmd.args[0]
	length := s.WordLength()
	var enc outcome.Encoder
	var code outcome.Code
	switch {
	case len(cmd.args) == 2:
		enc = outcome.Standard{}
		if code, err = outcome.Parse(cmd.args[1], length); err != nil {
			return nil, err
		}
	case cmd.options.String("hits") != "":
		hits, err := cmd.options.Int("hits")
		if err != nil {
			return nil, err
		}
		if hits < 0 || hits > length {
			return nil, fmt.Errorf("%w: %d hits", outcome.ErrBadHint, hits)
		}
		enc, code = outcome.Hits{}, outcome.Code(hits)
	case cmd.options.String("yellow") != "" || cmd.options.String("green") != "":
		yellow, err := cmd.options.IntDefault("yellow", 0)
		if err != nil {
			return nil, err
		}
		green, err := cmd.options.IntDefault("green", 0)
		if err != nil {
			return nil, err
		}
		if yellow < 0 || green < 0 || yellow+green > length {
			return nil, fmt.Errorf("%w: %d yellow, %d green", outcome.ErrBadHint, yellow, green)
		}
		enc, code = outcome.Counts{}, outcome.CountsCode(yellow, green, length)
	default:
		return nil, errors.New("a hint is required")
	}
	next, err := s.PrunedBy(guess, enc, code)
	if err != nil {
		return nil, err
	}
	sc.state = next
	sc.history = append(sc.history, played{guess: guess, enc: enc, code: code})
	if next.Empty() {
		return msg("No answers are consistent with the hints given. Use `reset` to start over."), nil
	}
	if next.Solved() {
		return msg("The answer is " + next.Answers()[0]), nil
	}
	return msg(fmt.Sprintf("%d answers remaining", next.Len())), nil
}

func (sc *ShellController) rankedText(words []solver.RankedWord) string {
	var sb strings.Builder
	for i, w := range words {
		fmt.Fprintf(&sb, "%4d. %s %s\n", i+1, w.Word, sc.bits(w.Info))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (sc *ShellController) top(cmd *shellcmd, words []solver.RankedWord) ([]solver.RankedWord, error) {
	n, err := cmd.options.IntDefault("n", defaultListSize)
	if err != nil {
		return nil, err
	}
	if n > 0 && n < len(words) {
		words = words[:n]
	}
	return words, nil
}

func (sc *ShellController) single(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	words, err := sc.top(cmd, s.Words())
	if err != nil {
		return nil, err
	}
	return sc.render(cmd, words, func() string { return sc.rankedText(words) })
}

func (sc *ShellController) info(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: info <word> [<word> ...]")
	}
	words := make([]solver.RankedWord, 0, len(cmd.args))
	for _, w := range cmd.args {
		h, err := s.Info(w)
		if err != nil {
			return nil, err
		}
		words = append(words, solver.RankedWord{Word: w, Info: h})
	}
	return sc.render(cmd, words, func() string { return sc.rankedText(words) })
}

func (sc *ShellController) joint(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	h, err := s.JointInfo(cmd.args...)
	if err != nil {
		return nil, err
	}
	return msg(strings.Join(cmd.args, " ") + ": " + sc.bits(h) + " bits"), nil
}

func (sc *ShellController) pairsText(pairs []solver.Pair) string {
	var sb strings.Builder
	for i, p := range pairs {
		fmt.Fprintf(&sb, "%4d. %s %s %s\n", i+1, p.First, p.Second, sc.bits(p.Info))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (sc *ShellController) bestTwo(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	s, bar := sc.withBar(s, "best-two")
	p, ok := s.BestTwo()
	bar.Finish()
	if !ok {
		return msg("No pair of guesses tells these answers apart."), nil
	}
	return sc.render(cmd, p, func() string { return sc.pairsText([]solver.Pair{p}) })
}

func (sc *ShellController) thresholdPairs(cmd *shellcmd, above bool) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("a threshold in bits is required")
	}
	t, err := strconv.ParseFloat(cmd.args[0], 64)
	if err != nil {
		return nil, err
	}
	s, bar := sc.withBar(s, "pairs")
	var pairs []solver.Pair
	if above {
		pairs = s.PairsAboveThreshold(t)
	} else {
		pairs = s.PairsBelowThreshold(t)
	}
	bar.Finish()
	total := len(pairs)
	n, err := cmd.options.IntDefault("n", defaultListSize)
	if err != nil {
		return nil, err
	}
	if n > 0 && n < len(pairs) {
		pairs = pairs[:n]
	}
	return sc.render(cmd, pairs, func() string {
		return fmt.Sprintf("%d pairs found\n%s", total, sc.pairsText(pairs))
	})
}

func (sc *ShellController) pairsAbove(cmd *shellcmd) (*Response, error) {
	return sc.thresholdPairs(cmd, true)
}

func (sc *ShellController) pairsBelow(cmd *shellcmd) (*Response, error) {
	return sc.thresholdPairs(cmd, false)
}

func (sc *ShellController) second(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: second <first-word>")
	}
	words, err := s.BestSecondWords(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if words, err = sc.top(cmd, words); err != nil {
		return nil, err
	}
	return sc.render(cmd, words, func() string { return sc.rankedText(words) })
}

func (sc *ShellController) third(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: third <first-word> <second-word>")
	}
	words, err := s.BestThirdWords(cmd.args[0], cmd.args[1])
	if err != nil {
		return nil, err
	}
	if words, err = sc.top(cmd, words); err != nil {
		return nil, err
	}
	return sc.render(cmd, words, func() string { return sc.rankedText(words) })
}

func (sc *ShellController) branchesText(branches []solver.Branch) string {
	var sb strings.Builder
	for _, b := range branches {
		if b.Remaining == 1 {
			fmt.Fprintf(&sb, "%-12s %5d  answer: %s\n", b.Hint, b.Remaining, b.Word)
			continue
		}
		fmt.Fprintf(&sb, "%-12s %5d  %s %s\n", b.Hint, b.Remaining, b.Word, sc.bits(b.Info))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// bestSecond shows, for every hint the first word can get, the best
// second word. -by picks the hint encoding.
func (sc *ShellController) bestSecond(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: bestsecond <first-word> [-by standard|hits|counts]")
	}
	enc := s.Encoder()
	if by := cmd.options.String("by"); by != "" {
		var ok bool
		if enc, ok = outcome.FromName(by); !ok {
			return nil, fmt.Errorf("unknown encoding %q", by)
		}
	}
	branches, err := s.BestSecondByHint(cmd.args[0], enc)
	if err != nil {
		return nil, err
	}
	return sc.render(cmd, branches, func() string { return sc.branchesText(branches) })
}

func (sc *ShellController) conditional(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: conditional <first-word>")
	}
	branches, err := s.BestConditionalSecond(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return sc.render(cmd, branches, func() string { return sc.branchesText(branches) })
}

func setLogLevel(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging on")
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
