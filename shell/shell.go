package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebits/config"
	"github.com/domino14/wordlebits/outcome"
	"github.com/domino14/wordlebits/solver"
	"github.com/domino14/wordlebits/tilemapping"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNotLoaded         = errors.New("please load word lists first with the `load` command")
	errQuit              = errors.New("sending quit signal")
)

type Mode int

const (
	StandardMode Mode = iota
	SolveMode
)

type ShellController struct {
	l        *readline.Instance
	config   *config.Config
	execPath string

	gitVersion string

	// root is the snapshot over the full lists; state is the current one
	// after the hints applied so far.
	root    *solver.Solver
	state   *solver.Solver
	history []played

	curMode Mode
	// the guess suggested in solve mode
	solveGuess string
}

// played is a hint applied to the state.
type played struct {
	guess string
	enc   outcome.Encoder
	code  outcome.Code
}

func (p played) String() string {
	return p.guess + " " + p.enc.Label(p.code, len(p.guess))
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

const standardPrompt = "\033[32mwordlebits>\033[0m "

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := &ShellController{config: cfg, execPath: execPath, gitVersion: gitVersion}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          standardPrompt,
		HistoryFile:     "/tmp/wordlebits-readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stdout())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its positional arguments and
// its -name value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if isOption(fields[idx]) {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			opt := fields[idx][1:]
			options[opt] = append(options[opt], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	if commandMetadata[cmd].Words {
		// guesses may be typed in any case
		for i := range args {
			args[i] = tilemapping.Normalize(args[i])
		}
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// isOption reports whether a token names an option. Negative numbers are
// arguments.
func isOption(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err != nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		sig <- syscall.SIGINT
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "load":
		return sc.load(cmd)
	case "set":
		return sc.set(cmd)
	case "single":
		return sc.single(cmd)
	case "info":
		return sc.info(cmd)
	case "joint":
		return sc.joint(cmd)
	case "buckets":
		return sc.buckets(cmd)
	case "besttwo":
		return sc.bestTwo(cmd)
	case "above":
		return sc.pairsAbove(cmd)
	case "below":
		return sc.pairsBelow(cmd)
	case "second":
		return sc.second(cmd)
	case "third":
		return sc.third(cmd)
	case "bestsecond":
		return sc.bestSecond(cmd)
	case "conditional":
		return sc.conditional(cmd)
	case "prune":
		return sc.prune(cmd)
	case "state":
		return sc.showState(cmd)
	case "reset":
		return sc.reset(cmd)
	case "solve":
		return sc.solve(cmd)
	case "ask":
		return sc.ask(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "analyze":
		return sc.analyze(cmd)
	case "script":
		return sc.script(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("unknown command %q; try `help`", cmd.cmd)
	}
}

// Execute runs a single command line, as given on the command line of the
// binary.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if sc.state == nil {
		if _, err := sc.load(&shellcmd{cmd: "load"}); err != nil {
			sc.showError(err)
			return
		}
	}
	sc.executeLine(sig, line)
}

func (sc *ShellController) executeLine(sig chan os.Signal, line string) bool {
	if sc.curMode == SolveMode {
		resp, err := sc.solveModeSwitch(line)
		if err != nil {
			sc.showError(err)
		} else if resp != nil {
			sc.showMessage(resp.message)
		}
		return true
	}
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		if err == errNoData {
			return true
		}
		if err == errQuit {
			return false
		}
		sc.showError(err)
		return true
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return true
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	if _, err := sc.load(&shellcmd{cmd: "load"}); err != nil {
		sc.showError(err)
	}
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if !sc.executeLine(sig, line) {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	log.Debug().Msg("cleaning up")
}
