package game

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

// Record is the serializable form of a game.
type Record struct {
	ID      string            `yaml:"id" json:"id"`
	Size    int               `yaml:"size" json:"size"`
	Players []PlayerInfo      `yaml:"players" json:"players"`
	Moves   move.History      `yaml:"moves" json:"moves"`
	Over    bool              `yaml:"over" json:"over"`
	Winner  string            `yaml:"winner,omitempty" json:"winner,omitempty"`
	Created time.Time         `yaml:"created" json:"created"`
	Meta    map[string]string `yaml:"meta,omitempty" json:"meta,omitempty"`
}

// Record captures the game for storage. Black's player is listed first.
func (g *Game) Record() Record {
	r := Record{
		ID:      g.id,
		Size:    g.board.Dim(),
		Players: []PlayerInfo{g.players[0].PlayerInfo, g.players[1].PlayerInfo},
		Moves:   g.History(),
		Over:    g.over,
		Created: time.Now().UTC(),
	}
	if g.winner != board.Empty {
		r.Winner = g.winner.String()
	}
	return r
}

// NewFromRecord replays a record through the rules, so an inconsistent
// record is rejected at the first bad move.
func NewFromRecord(r Record) (*Game, error) {
	g, err := NewGame(r.Size, r.Players)
	if err != nil {
		return nil, err
	}
	if r.ID != "" {
		g.id = r.ID
	}
	for i, m := range r.Moves {
		if err := g.Play(m); err != nil {
			return nil, fmt.Errorf("record move %d (%s): %w", i+1, m.ShortDescription(), err)
		}
	}
	if r.Over != g.over {
		return nil, fmt.Errorf("record says over=%v but the moves say %v", r.Over, g.over)
	}
	return g, nil
}

func (r Record) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

func UnmarshalRecord(data []byte) (Record, error) {
	var r Record
	err := yaml.Unmarshal(data, &r)
	return r, err
}

// Save writes the game as YAML.
func (g *Game) Save(path string) error {
	data, err := g.Record().Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a game saved with Save.
func Load(path string) (*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := UnmarshalRecord(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return NewFromRecord(r)
}
