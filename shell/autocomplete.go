package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/wordlebits/config"
)

// ShellCompleter completes command names, options, option values and
// vocabulary words.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata is what a command accepts after its name.
type CommandMetadata struct {
	Options []string
	// Args are the fixed values of the first argument, if any.
	Args []string
	// Words is true if the arguments are guesses.
	Words bool
}

var commandMetadata = map[string]CommandMetadata{
	"load":        {Options: []string{"-length"}},
	"set":         {Args: settable},
	"single":      {Options: []string{"-n", "-yaml"}},
	"info":        {Options: []string{"-yaml"}, Words: true},
	"joint":       {Words: true},
	"buckets":     {Options: []string{"-plot", "-answers", "-yaml"}, Words: true},
	"besttwo":     {Options: []string{"-yaml"}},
	"above":       {Options: []string{"-n", "-yaml"}},
	"below":       {Options: []string{"-n", "-yaml"}},
	"second":      {Options: []string{"-n", "-yaml"}, Words: true},
	"third":       {Options: []string{"-n", "-yaml"}, Words: true},
	"bestsecond":  {Options: []string{"-by", "-yaml"}, Words: true},
	"conditional": {Options: []string{"-yaml"}, Words: true},
	"prune":       {Options: []string{"-hits", "-yellow", "-green"}, Words: true},
	"state":       {Options: []string{"-all", "-yaml"}},
	"ask":         {Options: []string{"-via", "-yaml"}},
	"autoplay":    {Options: []string{"-n", "-opener", "-threads", "-max", "-log", "-db", "-yaml"}},
	"analyze":     {Options: []string{"-db", "-run", "-yaml"}},
	"help":        {Args: []string{"hints", "encodings", "script"}},
}

var commandNames = []string{
	"help", "load", "set", "single", "info", "joint", "buckets", "besttwo",
	"above", "below", "second", "third", "bestsecond", "conditional", "prune",
	"state", "reset", "solve", "ask", "autoplay", "analyze", "script", "exit",
}

var boolValues = []string{"true", "false"}
var encodingValues = []string{"standard", "hits", "counts"}

// maxWordCompletions caps how many guesses are offered at once.
const maxWordCompletions = 50

// Do implements readline.AutoCompleter. It returns the missing suffixes of
// every candidate that extends the word under the cursor.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// unterminated quote
		fields = strings.Fields(text)
	}

	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]

		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		// the field before the one being typed
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "plot", "answers", "yaml", "all":
				completions = boolValues
			case "by":
				completions = encodingValues
			case "via":
				completions = []string{"local", "nats", "lambda"}
			case "opener":
				completions = c.words(prefix)
			}
		} else if cmdName == "set" && lastCompleteField == config.ConfigEncoding {
			completions = encodingValues
		} else if cmdName == "set" && lastCompleteField == config.ConfigDebug {
			completions = boolValues
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				switch {
				case strings.HasPrefix(prefix, "-"):
					completions = metadata.Options
				case len(metadata.Args) > 0:
					completions = metadata.Args
				case metadata.Words && prefix != "":
					completions = c.words(prefix)
				default:
					completions = metadata.Options
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if rest, ok := strings.CutPrefix(completion, prefix); ok {
			matches = append(matches, []rune(rest))
		}
	}

	return matches, len(prefix)
}

// words lists vocabulary words starting with prefix, most informative
// first.
func (c *ShellCompleter) words(prefix string) []string {
	if c.sc.state == nil {
		return nil
	}
	var rv []string
	for _, w := range c.sc.state.Words() {
		if strings.HasPrefix(w.Word, prefix) {
			rv = append(rv, w.Word)
			if len(rv) == maxWordCompletions {
				break
			}
		}
	}
	return rv
}
