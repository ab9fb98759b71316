package automatic

// Data collection for automatic games: computer vs computer, with results
// written to a CSV log and optionally stored.

import (
	"context"
	"errors"
	"expvar"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/gamestore"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

const logHeader = "gameID,p1,p2,winner,moves,firstPlayer\n"

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// CompVCompOptions are optional knobs for a batch of automatic games.
type CompVCompOptions struct {
	// OpeningStones overrides DefaultOpeningStones when positive.
	OpeningStones int
	// Seeds makes the openings reproducible; game i uses
	// Seeds[i%len(Seeds)].
	Seeds [][32]byte
	// Store receives every finished game when set.
	Store *gamestore.Store
}

type job struct {
	idx  int
	swap bool
}

// CompVComp plays numGames engine games on threads workers and writes
// one CSV line per game to w. Colors swap every game. It returns when all
// games are done or ctx is cancelled.
func CompVComp(ctx context.Context, cfg *config.Config, numGames, threads int,
	w io.Writer, opts CompVCompOptions) error {

	if threads < 1 {
		threads = 1
	}
	log.Debug().Int("games", numGames).Int("threads", threads).Msg("starting-cvc")

	CVCCounter.Set(0)
	jobs := make(chan job, 100)
	logChan := make(chan string, 100)
	gameChan := make(chan game.Record, 100)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- job{idx: i, swap: i%2 == 1}:
			case <-gctx.Done():
				log.Info().Msg("got-stop-signal")
				return nil
			}
			if (i+1)%1000 == 0 {
				log.Info().Int("queued", i+1).Msg("queued-jobs")
			}
		}
		return nil
	})

	workers, wctx := errgroup.WithContext(gctx)
	for i := 0; i < threads; i++ {
		workers.Go(func() error {
			r, err := NewGameRunner(logChan, cfg)
			if err != nil {
				return err
			}
			if opts.OpeningStones > 0 {
				r.SetOpeningStones(opts.OpeningStones)
			}
			if opts.Store != nil {
				r.gamechan = gameChan
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for j := range jobs {
				if wctx.Err() != nil {
					return nil
				}
				if len(opts.Seeds) > 0 {
					r.SetSeed(opts.Seeds[j.idx%len(opts.Seeds)])
				}
				if err := r.playFull(j.swap); err != nil {
					return err
				}
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	g.Go(func() error {
		err := workers.Wait()
		close(logChan)
		close(gameChan)
		return err
	})

	g.Go(func() error {
		for rec := range gameChan {
			if err := opts.Store.Save(ctx, rec); err != nil {
				log.Err(err).Str("game", rec.ID).Msg("store-game")
			}
		}
		return nil
	})

	g.Go(func() error {
		var werr error
		if _, err := io.WriteString(w, logHeader); err != nil {
			werr = err
		}
		// Keep draining so the workers never block on a failed writer.
		for msg := range logChan {
			if werr != nil {
				continue
			}
			_, werr = io.WriteString(w, msg)
		}
		return werr
	})

	err := g.Wait()
	log.Info().Int64("games", CVCCounter.Value()).Msg("all-games-finished")
	return err
}

// StartCompVComp runs CompVComp in the background, logging to
// outputFilename. Use IsPlaying and CVCCounter to follow progress.
func StartCompVComp(ctx context.Context, cfg *config.Config, numGames, threads int,
	outputFilename string, opts CompVCompOptions) error {

	if IsPlaying.Value() > 0 {
		return ErrAlreadyPlaying
	}
	logfile, err := os.Create(outputFilename)
	if err != nil {
		return err
	}
	go func() {
		defer logfile.Close()
		if err := CompVComp(ctx, cfg, numGames, threads, logfile, opts); err != nil {
			log.Err(err).Msg("cvc-failed")
		}
	}()
	return nil
}
