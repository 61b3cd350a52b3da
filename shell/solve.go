package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/wordlebits/outcome"
	"github.com/domino14/wordlebits/tilemapping"
)

const solvePrompt = "\033[33msolve>\033[0m "

// solve walks through a game interactively: the shell suggests a guess, the
// user types the hint it got, and so on until the answer is found.
func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	s, err := sc.loaded()
	if err != nil {
		return nil, err
	}
	if s.Empty() {
		return nil, errors.New("no answers remain; use `reset` first")
	}
	sc.curMode = SolveMode
	sc.l.SetPrompt(solvePrompt)
	return msg("Type the hint for each guess ('!' exact, '?' elsewhere, '_' absent), " +
		"or `<word> <hint>` if you played another word. `quit` leaves.\n" + sc.suggest()), nil
}

func (sc *ShellController) leaveSolveMode() {
	sc.curMode = StandardMode
	sc.solveGuess = ""
	sc.l.SetPrompt(standardPrompt)
}

// suggest picks the next guess for the current state.
func (sc *ShellController) suggest() string {
	s := sc.state
	if s.Solved() {
		sc.solveGuess = s.Answers()[0]
		return "The answer is " + sc.solveGuess
	}
	best, ok := s.Best()
	if !ok {
		sc.solveGuess = ""
		return "There are no guesses left to suggest."
	}
	sc.solveGuess = best.Word
	return fmt.Sprintf("Try %s (%s bits, %d answers remaining)",
		best.Word, sc.bits(best.Info), s.Len())
}

func (sc *ShellController) solveModeSwitch(line string) (*Response, error) {
	fields := strings.Fields(line)
	var guess, hint string
	switch len(fields) {
	case 0:
		return nil, nil
	case 1:
		if fields[0] == "quit" || fields[0] == "exit" {
			sc.leaveSolveMode()
			return msg("Back to standard mode"), nil
		}
		guess, hint = sc.solveGuess, fields[0]
	case 2:
		guess, hint = tilemapping.Normalize(fields[0]), fields[1]
	default:
		return nil, errors.New("enter a hint, or a word and its hint")
	}
	if guess == "" {
		return nil, errors.New("no guess to apply the hint to")
	}
	length := sc.state.WordLength()
	code, err := outcome.Parse(hint, length)
	if err != nil {
		return nil, err
	}
	next, err := sc.state.PrunedExact(guess, code)
	if err != nil {
		return nil, err
	}
	sc.state = next
	sc.history = append(sc.history, played{guess: guess, enc: outcome.Standard{}, code: code})
	shown := outcome.Colored(guess, code)
	if code == outcome.Solved(length) {
		sc.leaveSolveMode()
		return msg(fmt.Sprintf("%s\nSolved in %d guesses", shown, len(sc.history))), nil
	}
	if next.Empty() {
		sc.leaveSolveMode()
		return msg(shown + "\nNo answers are consistent with the hints given. Use `reset` to start over."), nil
	}
	return msg(shown + "\n" + sc.suggest()), nil
}
