// Package shape scores the line shape a stone takes part in: how many
// stones of one color run through it along a direction, and how many of
// the run's two ends are open.
package shape

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var (
	ErrTableOrder = errors.New("shape table tiers must be strictly decreasing")
)

// Table maps shapes to values. The tiers are fixed contract values; an
// alternate table is only ever used to test the scorer in isolation.
type Table struct {
	Five      float64 `yaml:"five"`
	OpenFour  float64 `yaml:"open_four"`
	HalfFour  float64 `yaml:"half_four"`
	OpenThree float64 `yaml:"open_three"`
	HalfThree float64 `yaml:"half_three"`
	OpenTwo   float64 `yaml:"open_two"`
	HalfTwo   float64 `yaml:"half_two"`
	OpenOne   float64 `yaml:"open_one"`
}

// DefaultTable returns the standard tier values.
func DefaultTable() Table {
	return Table{
		Five:      1000000,
		OpenFour:  100000,
		HalfFour:  10000,
		OpenThree: 5000,
		HalfThree: 500,
		OpenTwo:   200,
		HalfTwo:   50,
		OpenOne:   10,
	}
}

// Score looks up a run of count stones with the given number of open ends.
// Five or more stones always score Five. Anything shorter with no open end
// is dead and scores 0, as does a lone stone with a single open end.
func (t Table) Score(count, openEnds int) float64 {
	if count >= 5 {
		return t.Five
	}
	if openEnds <= 0 {
		return 0
	}
	open := openEnds >= 2
	switch count {
	case 4:
		if open {
			return t.OpenFour
		}
		return t.HalfFour
	case 3:
		if open {
			return t.OpenThree
		}
		return t.HalfThree
	case 2:
		if open {
			return t.OpenTwo
		}
		return t.HalfTwo
	case 1:
		if open {
			return t.OpenOne
		}
	}
	return 0
}

// Validate checks that the tiers form a total order, highest first.
func (t Table) Validate() error {
	tiers := []float64{t.Five, t.OpenFour, t.HalfFour, t.OpenThree,
		t.HalfThree, t.OpenTwo, t.HalfTwo, t.OpenOne}
	for i := 1; i < len(tiers); i++ {
		if tiers[i] >= tiers[i-1] {
			return fmt.Errorf("%w: tier %d (%v) >= tier %d (%v)",
				ErrTableOrder, i, tiers[i], i-1, tiers[i-1])
		}
	}
	if t.OpenOne < 0 {
		return fmt.Errorf("%w: open_one is negative", ErrTableOrder)
	}
	return nil
}

// ReadTable parses a YAML table. Tiers missing from the document keep
// their default values.
func ReadTable(data []byte) (Table, error) {
	t := DefaultTable()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, err
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// LoadTable reads a YAML table from disk.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	t, err := ReadTable(data)
	if err != nil {
		return Table{}, fmt.Errorf("shape table %s: %w", path, err)
	}
	log.Debug().Str("path", path).Interface("table", t).Msg("loaded-shape-table")
	return t, nil
}

// Marshal renders the table as YAML.
func (t Table) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}
