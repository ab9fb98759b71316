package automatic

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/domino14/gomoku/stats"
)

const (
	histogramBins  = 10
	histogramWidth = 50
	// ConfidenceInterval is the percentage used for win rate intervals.
	ConfidenceInterval = 95.0
)

// LogSummary is what AnalyzeLog finds in a game log.
type LogSummary struct {
	P1, P2      string
	P1Outcome   stats.Outcome
	FirstPlayer stats.Outcome
	// Lengths are the move counts of every game.
	Lengths []float64
}

// AnalyzeLog reads a log written by CompVComp.
func AnalyzeLog(r io.Reader) (*LogSummary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6
	sum := &LogSummary{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			continue
		}
		sum.P1, sum.P2 = record[1], record[2]
		winner, firstPlayer := record[3], record[5]
		moves, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, err
		}
		sum.Lengths = append(sum.Lengths, float64(moves))
		switch winner {
		case "draw":
			sum.P1Outcome.Draws++
			sum.FirstPlayer.Draws++
			continue
		case sum.P1:
			sum.P1Outcome.Wins++
		default:
			sum.P1Outcome.Losses++
		}
		if winner == firstPlayer {
			sum.FirstPlayer.Wins++
		} else {
			sum.FirstPlayer.Losses++
		}
	}
	if len(sum.Lengths) == 0 {
		return nil, errors.New("no games in log")
	}
	return sum, nil
}

// String renders the summary with a histogram of game lengths.
func (s *LogSummary) String() string {
	var b bytes.Buffer
	lengths := &stats.Statistic{}
	lo.ForEach(s.Lengths, func(l float64, _ int) { lengths.Push(l) })
	p1lo, p1hi := s.P1Outcome.Interval(ConfidenceInterval)

	fmt.Fprintf(&b, "Games played: %d\n", s.P1Outcome.Games())
	fmt.Fprintf(&b, "%v: %v, %.0f%% CI [%.3f, %.3f]\n", s.P1, s.P1Outcome.String(),
		ConfidenceInterval, p1lo, p1hi)
	fmt.Fprintf(&b, "Player who went first: %v\n", s.FirstPlayer.String())
	fmt.Fprintf(&b, "Game length: mean %.2f stdev %.2f min %.0f max %.0f\n",
		lengths.Mean(), lengths.Stdev(), lengths.Min(), lengths.Max())
	// Hist needs a non-zero range.
	if len(lo.Uniq(s.Lengths)) > 1 {
		histogram.Fprint(&b, histogram.Hist(histogramBins, s.Lengths), histogram.Linear(histogramWidth))
	}
	return b.String()
}

// AnalyzeLogFile analyzes the given game CSV file and spits out a bunch of
// statistics.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	sum, err := AnalyzeLog(file)
	if err != nil {
		return "", err
	}
	return sum.String(), nil
}
