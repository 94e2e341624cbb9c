package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chessdelux/engine"
	pos "chessdelux/position"
)

func main() {
	depthFlag := flag.Int("depth", 4, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	workersFlag := flag.Int("workers", 0, "parallel worker limit (0 = one per root move)")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := pos.StartFEN
	if *fenFlag != "" {
		fen = *fenFlag
	}
	board, err := pos.ParseFEN(fen)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing fen")
	}
	maximizing := board.SideToMove() == pos.White

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", fen, *depthFlag, *repeatFlag)

	single := engine.NewSearcher(nil, nil)
	parallel := &engine.ParallelSearch{MaxWorkers: *workersFlag}
	ctx := context.Background()

	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		iterStart := time.Now()
		s, err := single.Search(ctx, board, nil, *depthFlag, maximizing)
		if err != nil {
			log.Fatal().Err(err).Msg("single search")
		}
		singleElapsed := time.Since(iterStart)

		iterStart = time.Now()
		p, err := parallel.Search(ctx, board, nil, *depthFlag, maximizing)
		if err != nil {
			log.Fatal().Err(err).Msg("parallel search")
		}
		parallelElapsed := time.Since(iterStart)

		fmt.Printf("iteration %d: single %v (%.2f) nodes=%d time=%v | parallel %v (%.2f) nodes=%d time=%v\n",
			i+1, s.Move, s.Score, single.Stats().Nodes, singleElapsed,
			p.Move, p.Score, parallel.Stats().Nodes, parallelElapsed)
		if s.Score != p.Score {
			log.Warn().Float64("single", s.Score).Float64("parallel", p.Score).Msg("root scores differ")
		}
	}
	fmt.Printf("total time: %v\n", time.Since(startAll))

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}
