package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chessdelux/engine"
	"chessdelux/game"
	pos "chessdelux/position"
)

var (
	configPath = flag.String("config", "", "Optional JSON file with engine options")
	verbose    = flag.Bool("v", false, "Debug logging on stderr")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	opts := engine.DefaultOptions()
	if *configPath != "" {
		var err error
		if opts, err = engine.LoadOptions(*configPath); err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("loading options")
		}
	}
	if *verbose {
		opts.LogLevel = "debug"
	}
	if err := opts.Apply(); err != nil {
		log.Fatal().Err(err).Msg("applying options")
	}
	uciLoop(context.Background(), os.Stdin, os.Stdout, opts)
}

type uciState struct {
	out      io.Writer
	opts     engine.Options
	strategy engine.Strategy
	game     *game.Manager
}

func newUCIState(out io.Writer, opts engine.Options) *uciState {
	u := &uciState{out: out, opts: opts}
	u.newGame()
	return u
}

func (u *uciState) newGame() {
	g, err := game.NewManager(game.Config{Depth: u.opts.Depth})
	if err != nil {
		// the start position always parses
		panic(err)
	}
	u.game = g
}

func (u *uciState) info(a ...any) {
	fmt.Fprintln(u.out, append([]any{"info string"}, a...)...)
}

func uciLoop(ctx context.Context, in io.Reader, out io.Writer, opts engine.Options) {
	scanner := bufio.NewScanner(in)
	u := newUCIState(out, opts)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Fprintln(out, "id name chessdelux")
			fmt.Fprintln(out, "id author chessdelux developers")
			fmt.Fprintf(out, "option name Strategy type combo default %s var %s var %s var %s var %s\n",
				u.opts.Strategy, engine.StrategyFirst, engine.StrategyRandom, engine.StrategyBest, engine.StrategyParallel)
			fmt.Fprintf(out, "option name Evaluator type combo default %s var best var draw\n", u.opts.Evaluator)
			fmt.Fprintf(out, "option name Depth type spin default %d min 1 max 12\n", u.opts.Depth)
			fmt.Fprintf(out, "option name Workers type spin default %d min 0 max 256\n", u.opts.Workers)
			fmt.Fprintf(out, "option name Cooperative type check default %t\n", u.opts.Cooperative)
			fmt.Fprintf(out, "option name PrintCutStats type check default %t\n", u.opts.PrintCutStats)
			fmt.Fprintln(out, "uciok")
		case "isready":
			fmt.Fprintln(out, "readyok")
		case "ucinewgame":
			u.newGame()
		case "quit":
			return
		case "stop":
			// searches run to completion before the next command is read
			u.info("stop ignored, no search running")
		case "d":
			fmt.Fprintln(out, u.game.FEN())
		case "eval":
			p := u.game.Position()
			u.info("static eval", strconv.FormatFloat(engine.Evaluate(p, u.game.Repetitions(), 1), 'f', 2, 64))
		case "perft":
			depth := 1
			if len(tokens) > 1 {
				if d, err := strconv.Atoi(tokens[1]); err == nil {
					depth = d
				}
			}
			var total uint64
			for m, n := range pos.PerftDivide(u.game.Position(), depth) {
				fmt.Fprintf(out, "%s: %d\n", m, n)
				total += n
			}
			fmt.Fprintf(out, "Nodes searched: %d\n", total)
		case "go":
			u.goCommand(ctx, tokens[1:])
		case "position":
			u.positionCommand(tokens[1:])
		case "setoption":
			u.setOption(tokens[1:])
		default:
			u.info("Unknown command:", line)
		}
	}
}

func (u *uciState) goCommand(ctx context.Context, args []string) {
	var wTime, bTime, depth int
	for i := 0; i < len(args); i++ {
		var target *int
		switch strings.ToLower(args[i]) {
		case "infinite":
			continue
		case "wtime":
			target = &wTime
		case "btime":
			target = &bTime
		case "depth":
			target = &depth
		case "winc", "binc", "movestogo", "movetime":
			i++ // accepted, no time management
			continue
		default:
			u.info("Unknown go subcommand", args[i])
			continue
		}
		i++
		if i >= len(args) {
			u.info("Malformed go command option", args[i-1])
			break
		}
		v, err := strconv.Atoi(args[i])
		if err != nil {
			u.info("Malformed go command option; could not convert", args[i-1])
			continue
		}
		*target = v
	}

	if depth <= 0 {
		depth = u.opts.Depth
	}
	timeLeft := wTime
	if u.game.SideToMove() == pos.Black {
		timeLeft = bTime
	}

	if u.strategy == nil {
		s, err := u.opts.NewStrategy()
		if err != nil {
			u.info("invalid options:", err)
			return
		}
		u.strategy = s
	}
	if u.game.Result().Finished() {
		u.info("game over:", u.game.Result())
		fmt.Fprintln(u.out, "bestmove 0000")
		return
	}
	move, err := u.strategy.SelectMove(ctx, u.game.Position(), u.game.Repetitions(), float64(timeLeft)/1000, depth)
	if err != nil {
		log.Error().Err(err).Str("fen", u.game.FEN()).Msg("search failed")
		fmt.Fprintln(u.out, "bestmove 0000")
		return
	}
	if r, ok := u.strategy.(engine.StatsReporter); ok && engine.PrintCutStats {
		r.Stats().Dump(u.out)
	}
	fmt.Fprintln(u.out, "bestmove", move)
}

func (u *uciState) positionCommand(args []string) {
	if len(args) == 0 {
		u.info("Malformed position command")
		return
	}
	fen := pos.StartFEN
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
	case "fen":
		i := 0
		for i < len(rest) && strings.ToLower(rest[i]) != "moves" {
			i++
		}
		if i == 0 {
			u.info("Invalid fen position")
			return
		}
		fen, rest = strings.Join(rest[:i], " "), rest[i:]
	default:
		u.info("Invalid position subcommand")
		return
	}

	g, err := game.NewManager(game.Config{FEN: fen, Depth: u.opts.Depth})
	if err != nil {
		u.info("Invalid fen position:", err)
		return
	}
	u.game = g
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return
	}
	for _, s := range rest[1:] {
		if err := u.game.MakeUCIMove(strings.ToLower(s)); err != nil {
			u.info("Move", s, "not played for position", u.game.FEN()+":", err)
			return
		}
	}
}

// setOption handles "setoption name <id> value <x>".
func (u *uciState) setOption(args []string) {
	if len(args) < 4 || strings.ToLower(args[0]) != "name" || strings.ToLower(args[2]) != "value" {
		u.info("Malformed setoption command")
		return
	}
	name, value := strings.ToLower(args[1]), args[3]
	next := u.opts
	var err error
	switch name {
	case "strategy":
		next.Strategy = strings.ToLower(value)
	case "evaluator":
		next.Evaluator = strings.ToLower(value)
	case "depth":
		next.Depth, err = strconv.Atoi(value)
	case "workers":
		next.Workers, err = strconv.Atoi(value)
	case "cooperative":
		next.Cooperative, err = strconv.ParseBool(value)
	case "printcutstats":
		next.PrintCutStats, err = strconv.ParseBool(value)
	default:
		u.info("Unknown option", args[1])
		return
	}
	if err == nil {
		err = next.Validate()
	}
	if err != nil {
		u.info("Invalid value for", args[1]+":", err)
		return
	}
	u.opts = next
	engine.PrintCutStats = next.PrintCutStats
	u.strategy = nil
}
