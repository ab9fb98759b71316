package negamax

import (
	"github.com/domino14/gomoku/cache"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/shape"
)

func loadShapeTable(cfg *config.Config, path string) (shape.Table, error) {
	return shape.LoadTable(path)
}

// SettingsFromConfig reads the search budget from cfg. A shapes file, if
// configured, is loaded once per process and shared.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	s := Settings{
		BoardSize:           cfg.GetInt(config.ConfigBoardSize),
		SearchDepth:         cfg.GetInt(config.ConfigSearchDepth),
		OpeningDepth:        cfg.GetInt(config.ConfigOpeningDepth),
		OpeningThreshold:    cfg.GetInt(config.ConfigOpeningThreshold),
		BreadthDeep:         cfg.GetInt(config.ConfigBreadthDeep),
		BreadthShallow:      cfg.GetInt(config.ConfigBreadthShallow),
		BreadthDeepMinDepth: cfg.GetInt(config.ConfigBreadthDeepMinDepth),
		Table:               shape.DefaultTable(),
	}
	if path := cfg.GetString(config.ConfigShapesFile); path != "" {
		t, err := cache.Load(cfg, path, loadShapeTable)
		if err != nil {
			return Settings{}, err
		}
		s.Table = t
	}
	return s, s.validate()
}
