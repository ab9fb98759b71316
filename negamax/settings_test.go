package negamax

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/shape"
)

func TestSettingsFromDefaultConfig(t *testing.T) {
	is := is.New(t)
	s, err := SettingsFromConfig(config.DefaultConfig())
	is.NoErr(err)
	is.Equal(s, DefaultSettings())
}

func TestSettingsWithShapesFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "shapes.yaml")
	is.NoErr(os.WriteFile(path, []byte("open_one: 7\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigShapesFile, path)
	cfg.Set(config.ConfigSearchDepth, 3)
	s, err := SettingsFromConfig(cfg)
	is.NoErr(err)
	is.Equal(s.SearchDepth, 3)
	is.Equal(s.Table.OpenOne, 7.0)
	is.Equal(s.Table.Five, shape.DefaultTable().Five)
}

func TestSettingsRejectsBadDepth(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigOpeningDepth, 0)
	_, err := SettingsFromConfig(cfg)
	is.True(err != nil)
}
