package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/automatic"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/bot"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/equity"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/gamestore"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/negamax"
	"github.com/domino14/gomoku/turnplayer"
)

const (
	defaultAutoplayGames = 100
	defaultAutoplayLog   = "/tmp/gomoku_autoplay.txt"
	remoteTimeout        = 30 * time.Second
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(sc.options.ToDisplayText()), nil
	}
	opt := cmd.args[0]
	if len(cmd.args) == 1 {
		_, val := sc.options.Show(opt)
		return msg(val), nil
	}
	ret, err := sc.options.Set(opt, cmd.args[1:])
	if err != nil {
		return nil, err
	}
	return msg("set " + opt + " to " + ret), nil
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}
	key := cmd.args[0]
	value := cmd.args[1]
	sc.config.Set(key, value)
	if err := sc.config.Write(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return msg(fmt.Sprintf("set config %s to %s and saved to file", key, value)), nil
}

func (sc *ShellController) settings() (negamax.Settings, error) {
	return negamax.SettingsFromConfig(sc.config)
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	if sc.botBusy.Load() {
		return nil, errEngineBusy
	}
	opts := sc.options.GameOptions
	if len(cmd.args) > 0 {
		size, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		if err := opts.SetBoardSize(size); err != nil {
			return nil, err
		}
	}
	human := game.PlayerInfo{Nickname: "you", RealName: "Human"}
	engine := game.PlayerInfo{Nickname: "gomoku", RealName: "Gomoku Bot", Bot: true}
	var players []game.PlayerInfo
	switch opts.BotColor {
	case board.Black:
		players = []game.PlayerInfo{engine, human}
	case board.White:
		players = []game.PlayerInfo{human, engine}
	default:
		players = []game.PlayerInfo{
			{Nickname: "black", RealName: "Black"},
			{Nickname: "white", RealName: "White"},
		}
	}
	g, err := turnplayer.NewBotTurnPlayer(sc.config, &opts, players)
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.curGenPlays = nil
	return sc.replyIfBotOnTurn("")
}

// replyIfBotOnTurn lets the engine move when it holds the color on turn,
// then shows the board with prefix above it.
func (sc *ShellController) replyIfBotOnTurn(prefix string) (*Response, error) {
	if !sc.game.Over() && sc.game.Player(sc.game.PlayerOnTurn()).Bot {
		m, err := sc.think()
		if err != nil {
			return nil, err
		}
		prefix += fmt.Sprintf("%s plays %s\n", sc.game.Player(m.Color).Nickname, m.Coords())
	}
	return msg(prefix + sc.game.ToDisplayText()), nil
}

// think runs the engine for the player on turn and plays its move.
func (sc *ShellController) think() (move.Move, error) {
	if !sc.botBusy.CompareAndSwap(false, true) {
		return move.Move{}, errEngineBusy
	}
	defer sc.botBusy.Store(false)
	start := time.Now()
	m, err := sc.game.PlayBest(context.Background())
	if err != nil {
		return move.Move{}, err
	}
	s := sc.game.Solver()
	log.Info().Str("move", m.ShortDescription()).Str("reason", string(s.LastReason())).
		Uint64("nodes", s.Nodes()).Float64("time-elapsed-sec", time.Since(start).Seconds()).
		Msg("engine-moved")
	return m, nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.botBusy.Load() {
		return nil, errEngineBusy
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <coords> or play #<hint number>")
	}
	var m move.Move
	var err error
	if strings.HasPrefix(cmd.args[0], "#") {
		idx, err := strconv.Atoi(cmd.args[0][1:])
		if err != nil {
			return nil, err
		}
		if idx < 1 || idx > len(sc.curGenPlays) {
			return nil, errors.New("play outside range")
		}
		m = sc.curGenPlays[idx-1].Move
		if err := sc.game.Play(m); err != nil {
			return nil, err
		}
	} else {
		m, err = sc.game.PlayCoords(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	sc.curGenPlays = nil
	return sc.replyIfBotOnTurn("")
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	m, err := sc.think()
	if err != nil {
		return nil, err
	}
	sc.curGenPlays = nil
	s := sc.game.Solver()
	out := fmt.Sprintf("%s (%s, %d nodes)\n", m.ShortDescription(), s.LastReason(), s.Nodes())
	if s.LastReason() == negamax.ReasonSearch {
		out += s.Variation().NLBString() + "\n"
	}
	return sc.replyIfBotOnTurn(out)
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	numPlays := sc.options.hintCount
	if len(cmd.args) > 0 {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		numPlays = n
	}
	if !sc.botBusy.CompareAndSwap(false, true) {
		return nil, errEngineBusy
	}
	defer sc.botBusy.Store(false)
	ranked, err := sc.game.GenerateMoves(numPlays)
	if err != nil {
		return nil, err
	}
	sc.curGenPlays = ranked
	return msg(moveTable(ranked)), nil
}

func moveTable(ranked []negamax.RankedMove) string {
	var sb strings.Builder
	sb.WriteString("     Move    Score        Line\n")
	for i, r := range ranked {
		line := make([]string, 0, len(r.Variation.Moves))
		for _, m := range r.Variation.Moves {
			line = append(line, m.Coords())
		}
		fmt.Fprintf(&sb, "%3d: %-8s%-13.1f%s\n", i+1, r.Move.Coords(), r.Score, strings.Join(line, " "))
	}
	return sb.String()
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	c := sc.game.PlayerOnTurn()
	scorer := equity.NewScorer(sc.game.Solver().Settings().Table, c)
	totals := scorer.Tally(sc.game.Board())
	return msg(fmt.Sprintf("Black shapes: %.1f\nWhite shapes: %.1f\nScore for %s (on turn): %.1f",
		totals.Black, totals.White, c, scorer.BoardScore(sc.game.Board()))), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.botBusy.Load() {
		return nil, errEngineBusy
	}
	if err := sc.game.Undo(); err != nil {
		return nil, err
	}
	sc.curGenPlays = nil
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: save <path>")
	}
	if err := sc.game.Save(cmd.args[0]); err != nil {
		return nil, err
	}
	return msg("saved game " + sc.game.ID() + " to " + cmd.args[0]), nil
}

func (sc *ShellController) attach(g *game.Game) error {
	settings, err := sc.settings()
	if err != nil {
		return err
	}
	p, err := turnplayer.NewBotTurnPlayerFromGame(g, settings)
	if err != nil {
		return err
	}
	sc.game = p
	sc.curGenPlays = nil
	return nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <path>")
	}
	if sc.botBusy.Load() {
		return nil, errEngineBusy
	}
	g, err := game.Load(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.attach(g); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) openStore(ctx context.Context) (*gamestore.Store, error) {
	if sc.store != nil {
		return sc.store, nil
	}
	st, err := gamestore.Open(ctx, sc.config.GetString(config.ConfigDBPath))
	if err != nil {
		return nil, err
	}
	sc.store = st
	return st, nil
}

func (sc *ShellController) storeCmd(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: store save | store list [n] | store load <id>")
	}
	ctx := context.Background()
	st, err := sc.openStore(ctx)
	if err != nil {
		return nil, err
	}
	switch cmd.args[0] {
	case "save":
		if sc.game == nil {
			return nil, errNoGame
		}
		if err := st.Save(ctx, sc.game.Record()); err != nil {
			return nil, err
		}
		return msg("stored game " + sc.game.ID()), nil
	case "list":
		limit := 20
		if len(cmd.args) > 1 {
			if limit, err = strconv.Atoi(cmd.args[1]); err != nil {
				return nil, err
			}
		}
		games, err := st.List(ctx, limit)
		if err != nil {
			return nil, err
		}
		var sb strings.Builder
		for _, g := range games {
			fmt.Fprintf(&sb, "%s  %dx%d  %s vs %s  winner: %s  moves: %d  %s\n",
				g.ID, g.Size, g.Size, g.Black, g.White, g.Winner, g.NumMoves,
				g.Created.Format(time.DateTime))
		}
		if sb.Len() == 0 {
			return msg("No stored games."), nil
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	case "load":
		if len(cmd.args) != 2 {
			return nil, errors.New("usage: store load <id>")
		}
		rec, err := st.Get(ctx, cmd.args[1])
		if err != nil {
			return nil, err
		}
		g, err := game.NewFromRecord(rec)
		if err != nil {
			return nil, err
		}
		if err := sc.attach(g); err != nil {
			return nil, err
		}
		return msg(sc.game.ToDisplayText()), nil
	}
	return nil, errors.New("unknown store command " + cmd.args[0])
}

// moveRequester is satisfied by both remote clients.
type moveRequester interface {
	RequestMove(ctx context.Context, g *game.Game) (move.Move, error)
}

func (sc *ShellController) remote(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.Over() {
		return nil, turnplayer.ErrGameIsOver
	}
	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	var client moveRequester
	if cmd.options.Bool("lambda") {
		lc, err := bot.NewLambdaClient(ctx, sc.config.GetString(config.ConfigLambdaFunction))
		if err != nil {
			return nil, err
		}
		client = lc
	} else {
		c, nc, err := bot.Connect(sc.config)
		if err != nil {
			return nil, err
		}
		defer nc.Close()
		client = c
	}
	m, err := client.RequestMove(ctx, sc.game.Game)
	if err != nil {
		return nil, err
	}
	if err := sc.game.Play(m); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("remote bot plays %s\n%s", m.Coords(), sc.game.ToDisplayText())), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		switch cmd.args[0] {
		case "stop":
			if sc.autoplayCancel == nil || automatic.IsPlaying.Value() == 0 {
				return nil, errors.New("no automatic games are running")
			}
			sc.autoplayCancel()
			return msg("stopping automatic games"), nil
		case "status":
			return msg(fmt.Sprintf("%d games finished; %d workers playing",
				automatic.CVCCounter.Value(), automatic.IsPlaying.Value())), nil
		case "analyze":
			if len(cmd.args) != 2 {
				return nil, errors.New("usage: autoplay analyze <logfile>")
			}
			summary, err := automatic.AnalyzeLogFile(cmd.args[1])
			if err != nil {
				return nil, err
			}
			return msg(summary), nil
		}
	}
	numGames := defaultAutoplayGames
	if len(cmd.args) > 0 {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		numGames = n
	}
	threads, err := cmd.options.IntDefault("threads", 1)
	if err != nil {
		return nil, err
	}
	stones, err := cmd.options.IntDefault("stones", automatic.DefaultOpeningStones)
	if err != nil {
		return nil, err
	}
	logfile := cmd.options.String("logfile")
	if logfile == "" {
		logfile = defaultAutoplayLog
	}
	opts := automatic.CompVCompOptions{OpeningStones: stones}
	if seedFile := cmd.options.String("seeds"); seedFile != "" {
		seeds, err := automatic.LoadSeeds(seedFile)
		if err != nil {
			return nil, err
		}
		opts.Seeds = seeds
	}
	if cmd.options.Bool("store") {
		st, err := sc.openStore(context.Background())
		if err != nil {
			return nil, err
		}
		opts.Store = st
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := automatic.StartCompVComp(ctx, sc.config, numGames, threads, logfile, opts); err != nil {
		cancel()
		return nil, err
	}
	sc.autoplayCancel = cancel
	return msg(fmt.Sprintf("playing %d games on %d threads; results go to %s", numGames, threads, logfile)), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}
