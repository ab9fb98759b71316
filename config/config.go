package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug               = "debug"
	ConfigBoardSize           = "board-size"
	ConfigSearchDepth         = "search-depth"
	ConfigOpeningDepth        = "opening-depth"
	ConfigOpeningThreshold    = "opening-threshold"
	ConfigBreadthDeep         = "breadth-deep"
	ConfigBreadthShallow      = "breadth-shallow"
	ConfigBreadthDeepMinDepth = "breadth-deep-min-depth"
	ConfigShapesFile          = "shapes-file"
	ConfigNatsURL             = "nats-url"
	ConfigBotChannel          = "bot-channel"
	ConfigDBPath              = "db-path"
	ConfigCPUProfile          = "cpu-profile"
	ConfigMemProfile          = "mem-profile"
	ConfigLambdaFunction      = "lambda-function"
	ConfigDataPath            = "data-path"
)

const envPrefix = "GOMOKU"

type Config struct {
	viper.Viper
	configFile string
	args       []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigBoardSize, 15)
	v.SetDefault(ConfigSearchDepth, 4)
	v.SetDefault(ConfigOpeningDepth, 2)
	v.SetDefault(ConfigOpeningThreshold, 6)
	v.SetDefault(ConfigBreadthDeep, 12)
	v.SetDefault(ConfigBreadthShallow, 15)
	v.SetDefault(ConfigBreadthDeepMinDepth, 3)
	v.SetDefault(ConfigShapesFile, "")
	v.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	v.SetDefault(ConfigBotChannel, "gomoku.bot")
	v.SetDefault(ConfigDBPath, "./data/games.db")
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigMemProfile, "")
	v.SetDefault(ConfigLambdaFunction, "gomoku-move")
	v.SetDefault(ConfigDataPath, "./data")
}

// DefaultConfig returns a config with every key at its default. It is
// meant for tests; it reads neither flags nor the environment.
func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	setDefaults(&c.Viper)
	return c
}

// Load reads, in increasing order of precedence: defaults, the config
// file, GOMOKU_* environment variables, then command-line flags.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	setDefaults(&c.Viper)

	fs := pflag.NewFlagSet("gomoku", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigBoardSize, 15, "board dimension")
	fs.Int(ConfigSearchDepth, 4, "search depth once the opening is over")
	fs.Int(ConfigOpeningDepth, 2, "search depth during the opening")
	fs.Int(ConfigOpeningThreshold, 6, "number of moves after which the full search depth is used")
	fs.Int(ConfigBreadthDeep, 12, "candidates searched at deep nodes")
	fs.Int(ConfigBreadthShallow, 15, "candidates searched at shallow nodes")
	fs.Int(ConfigBreadthDeepMinDepth, 3, "remaining depth at which a node counts as deep")
	fs.String(ConfigShapesFile, "", "YAML file overriding the shape score table")
	fs.String(ConfigNatsURL, "nats://localhost:4222", "the NATS server URL")
	fs.String(ConfigBotChannel, "gomoku.bot", "the NATS subject the bot answers on")
	fs.String(ConfigDBPath, "./data/games.db", "the sqlite file games are saved to")
	fs.String(ConfigCPUProfile, "", "file to write a CPU profile to")
	fs.String(ConfigMemProfile, "", "file to write a memory profile to")
	fs.String(ConfigLambdaFunction, "gomoku-move", "name of the deployed move function")
	fs.String(ConfigDataPath, "./data", "directory holding data files")
	fs.StringVar(&c.configFile, "config", "", "config file (default $HOME/.gomoku/config.yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if c.configFile == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			c.configFile = filepath.Join(home, ".gomoku", "config.yaml")
		}
	}
	if c.configFile == "" {
		return nil
	}
	c.SetConfigFile(c.configFile)
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("file", c.configFile).Msg("no-config-file")
			return nil
		}
		return fmt.Errorf("reading %s: %w", c.configFile, err)
	}
	return nil
}

// Args are the command-line arguments left after flags were parsed.
func (c *Config) Args() []string {
	return c.args
}

// Write persists the current settings to the config file.
func (c *Config) Write() error {
	if c.configFile == "" {
		return errors.New("no config file to write to")
	}
	if err := os.MkdirAll(filepath.Dir(c.configFile), 0o755); err != nil {
		return err
	}
	return c.WriteConfigAs(c.configFile)
}

// SetConfigPath sets the file Write saves to.
func (c *Config) SetConfigPath(path string) {
	c.configFile = path
}

// AdjustRelativePaths resolves the data path against basepath unless it
// is absolute or already exists relative to the working directory.
func (c *Config) AdjustRelativePaths(basepath string) {
	for _, key := range []string{ConfigDataPath, ConfigDBPath} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		if _, err := os.Stat(filepath.Dir(p)); err == nil {
			continue
		}
		c.Set(key, filepath.Join(basepath, p))
	}
}

// SanitizedSettings lists the settings as key=value pairs, sorted.
func (c *Config) SanitizedSettings() string {
	keys := c.AllKeys()
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c.Get(k)))
	}
	return strings.Join(parts, " ")
}
