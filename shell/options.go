package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/turnplayer"
)

const defaultHintCount = 5

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

// ShellOptions configures the games the shell creates.
type ShellOptions struct {
	turnplayer.GameOptions
	hintCount int
}

func NewShellOptions(cfg *config.Config) *ShellOptions {
	opts := &ShellOptions{hintCount: defaultHintCount}
	// The engine takes white unless told otherwise.
	opts.SetBotColor("white")
	opts.SetDefaults(cfg)
	return opts
}

func (opts *ShellOptions) Show(key string) (bool, string) {
	switch key {
	case "size":
		return true, strconv.Itoa(opts.BoardSize)
	case "bot":
		if opts.BotColor.Valid() {
			return true, opts.BotColor.String()
		}
		return true, "none"
	case "randomseats":
		return true, strconv.FormatBool(opts.RandomSeats)
	case "hints":
		return true, strconv.Itoa(opts.hintCount)
	default:
		return false, "No such option: " + key
	}
}

func (opts *ShellOptions) ToDisplayText() string {
	keys := []string{"size", "bot", "randomseats", "hints"}
	out := strings.Builder{}
	out.WriteString("Settings:\n")
	for _, key := range keys {
		_, val := opts.Show(key)
		out.WriteString("  " + key + ": ")
		out.WriteString(val + "\n")
	}
	return out.String()
}

// Set changes an option and returns its new displayed value. The new
// value takes effect with the next game.
func (opts *ShellOptions) Set(key string, values []string) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("no value given for %s", key)
	}
	switch key {
	case "size":
		size, err := strconv.Atoi(values[0])
		if err != nil {
			return "", err
		}
		if err := opts.SetBoardSize(size); err != nil {
			return "", err
		}
	case "bot":
		if err := opts.SetBotColor(values[0]); err != nil {
			return "", err
		}
	case "randomseats":
		b, err := strconv.ParseBool(values[0])
		if err != nil {
			return "", err
		}
		opts.RandomSeats = b
	case "hints":
		n, err := strconv.Atoi(values[0])
		if err != nil {
			return "", err
		}
		if n < 1 {
			return "", errors.New("hints must be at least 1")
		}
		opts.hintCount = n
	default:
		return "", errors.New("option " + key + " not recognized")
	}
	_, val := opts.Show(key)
	return val, nil
}
