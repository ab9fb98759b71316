package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"autoplay": {
		Options: []string{"-threads", "-stones", "-logfile", "-seeds", "-store"},
		Args:    []string{"stop", "status", "analyze"},
	},
	"store": {
		Args: []string{"save", "list", "load"},
	},
	"remote": {
		Options: []string{"-lambda"},
	},
	"set": {
		Args: []string{"size", "bot", "randomseats", "hints"},
	},
	"setconfig": {
		Args: []string{
			"search-depth", "opening-depth", "opening-threshold",
			"breadth-deep", "breadth-shallow", "breadth-deep-min-depth",
			"board-size", "shapes-file", "nats-url", "bot-channel", "db-path",
			"lambda-function",
		},
	},
	"help": {
		Args: []string{"play", "autoplay", "store", "set", "script", "remote"},
	},
}

// Common command names for command completion
var commandNames = []string{
	"help", "new", "play", "gen", "ai", "hint", "eval", "undo", "show",
	"save", "load", "store", "remote", "autoplay", "set", "setconfig",
	"script", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	// Parse the line using shellquote to handle quoted strings properly
	fields, err := shellquote.Split(text)
	if err != nil {
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

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "store", "lambda":
				completions = boolValues
			}
		} else if cmdName == "set" && lastCompleteField == "bot" {
			completions = []string{"black", "white", "none"}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else if len(fields) == 1 || (len(fields) == 2 && !endsWithSpace) {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
