package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chessdelux/engine"
	"chessdelux/game"
)

func main() {
	fen := flag.String("fen", "", "starting FEN (empty = startpos)")
	white := flag.String("white", engine.StrategyParallel, "strategy for White")
	black := flag.String("black", engine.StrategyBest, "strategy for Black")
	depth := flag.Int("depth", 3, "search depth in plies")
	maxPlies := flag.Int("plies", 200, "stop after this many plies")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	opts := engine.DefaultOptions()
	opts.Depth = *depth
	if *verbose {
		opts.LogLevel = "debug"
	}
	if err := opts.Apply(); err != nil {
		log.Fatal().Err(err).Msg("applying options")
	}
	ws, err := engine.StrategyByName(*white, opts)
	if err != nil {
		log.Fatal().Err(err).Str("strategy", *white).Msg("white")
	}
	bs, err := engine.StrategyByName(*black, opts)
	if err != nil {
		log.Fatal().Err(err).Str("strategy", *black).Msg("black")
	}

	m, err := game.NewManager(game.Config{FEN: *fen, Depth: *depth})
	if err != nil {
		log.Fatal().Err(err).Msg("new game")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	result, err := m.AutoPlay(ctx, ws, bs, *maxPlies)
	if err != nil {
		log.Error().Err(err).Int("plies", len(m.Moves())).Msg("self play stopped")
	}
	log.Info().Str("result", result.String()).Int("plies", len(m.Moves())).Msg("self play finished")

	pgn, err := m.PGN([2]string{"White", *white}, [2]string{"Black", *black})
	if err != nil {
		log.Fatal().Err(err).Msg("writing pgn")
	}
	fmt.Println(pgn)
}
