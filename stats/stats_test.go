package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
	}
}

func TestMinMax(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{31, 9, 57, 22} {
		s.Push(v)
	}
	is.Equal(s.Min(), 9.0)
	is.Equal(s.Max(), 57.0)
	is.Equal(s.Last(), 22.0)
	is.Equal(s.Iterations(), 4)
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489))
}

func TestOutcome(t *testing.T) {
	is := is.New(t)
	o := &Outcome{Wins: 60, Losses: 30, Draws: 10}
	is.Equal(o.Games(), 100)
	is.Equal(o.Score(), 65.0)
	is.True(FuzzyEqual(o.WinRate(), 0.65))
	lo, hi := o.Interval(95)
	is.True(lo < 0.65 && hi > 0.65)
	is.True(FuzzyEqual(hi-0.65, 0.65-lo))
	is.Equal(o.String(), "60-30-10 (65.0%)")

	empty := &Outcome{}
	lo, hi = empty.Interval(95)
	is.Equal(lo, 0.0)
	is.Equal(hi, 1.0)

	perfect := &Outcome{Wins: 10}
	lo, hi = perfect.Interval(95)
	is.Equal(lo, 1.0)
	is.Equal(hi, 1.0)
}
