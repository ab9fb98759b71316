package stats

import (
	"fmt"
	"math"
)

// Outcome tallies one player's results over a series of games.
type Outcome struct {
	Wins   int
	Losses int
	Draws  int
}

func (o *Outcome) Games() int {
	return o.Wins + o.Losses + o.Draws
}

// Score counts a draw as half a win.
func (o *Outcome) Score() float64 {
	return float64(o.Wins) + float64(o.Draws)/2
}

// WinRate is Score over games played, 0 with no games.
func (o *Outcome) WinRate() float64 {
	n := o.Games()
	if n == 0 {
		return 0
	}
	return o.Score() / float64(n)
}

// Interval is the normal-approximation confidence interval around the win
// rate, clamped to [0, 1]. ci is a percentage such as 95.
func (o *Outcome) Interval(ci float64) (lo, hi float64) {
	n := o.Games()
	if n == 0 {
		return 0, 1
	}
	p := o.WinRate()
	margin := ZVal(ci) * math.Sqrt(p*(1-p)/float64(n))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

func (o *Outcome) String() string {
	return fmt.Sprintf("%d-%d-%d (%.1f%%)", o.Wins, o.Losses, o.Draws, 100*o.WinRate())
}
