package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	pos "chessdelux/position"
)

// Strategy picks a move for the side to move. Callers must check for game over first:
// a position without legal moves yields ErrNoLegalMoves.
//
// secondsRemaining is the mover's clock. It is logged but no strategy enforces it.
type Strategy interface {
	SelectMove(ctx context.Context, p *pos.Position, rs *RepetitionStack, secondsRemaining float64, maxDepth int) (pos.Move, error)
}

// FirstMove plays the first legal move in generation order.
type FirstMove struct{}

func (FirstMove) SelectMove(ctx context.Context, p *pos.Position, rs *RepetitionStack, secondsRemaining float64, maxDepth int) (pos.Move, error) {
	legal := p.LegalMoves()
	if len(legal) == 0 {
		return pos.NullMove, fmt.Errorf("first move: %w", ErrNoLegalMoves)
	}
	return legal[0], nil
}

// RandomMove plays a uniformly random legal move.
type RandomMove struct{}

func (RandomMove) SelectMove(ctx context.Context, p *pos.Position, rs *RepetitionStack, secondsRemaining float64, maxDepth int) (pos.Move, error) {
	legal := p.LegalMoves()
	if len(legal) == 0 {
		return pos.NullMove, fmt.Errorf("random move: %w", ErrNoLegalMoves)
	}
	return legal[frand.Intn(len(legal))], nil
}

// BestMove runs a single-threaded alpha-beta search, yielding between nodes.
type BestMove struct {
	Searcher *Searcher
}

// NewBestMove returns a cooperative searcher strategy.
func NewBestMove(eval Evaluator, y Yielder) *BestMove {
	return &BestMove{Searcher: NewSearcher(eval, y)}
}

func (b *BestMove) SelectMove(ctx context.Context, p *pos.Position, rs *RepetitionStack, secondsRemaining float64, maxDepth int) (pos.Move, error) {
	if !p.HasLegalMoves() {
		return pos.NullMove, fmt.Errorf("best move: %w", ErrNoLegalMoves)
	}
	log.Debug().
		Float64("secondsRemaining", secondsRemaining).
		Dur("budget", MoveBudget(p, secondsRemaining)).
		Int("depth", maxDepth).
		Msg("searching")
	if maxDepth < 1 {
		maxDepth = 1
	}
	r, err := b.Searcher.Search(ctx, p, rs, maxDepth, p.SideToMove() == pos.White)
	if err != nil {
		return pos.NullMove, fmt.Errorf("best move: %w", err)
	}
	log.Info().
		Str("move", r.Move.String()).
		Float64("score", r.Score).
		Uint64("evaluated", b.Searcher.stats.Evaluated).
		Uint64("skipped", b.Searcher.stats.TotalSkipped()).
		Msg("evaluation complete")
	return r.Move, nil
}

// ParallelBestMove searches each root move on its own worker.
type ParallelBestMove struct {
	Search *ParallelSearch
}

// NewParallelBestMove returns a root-parallel strategy; maxWorkers 0 means one running
// worker per root move.
func NewParallelBestMove(eval Evaluator, maxWorkers int) *ParallelBestMove {
	return &ParallelBestMove{Search: &ParallelSearch{Evaluator: eval, MaxWorkers: maxWorkers}}
}

func (pb *ParallelBestMove) SelectMove(ctx context.Context, p *pos.Position, rs *RepetitionStack, secondsRemaining float64, maxDepth int) (pos.Move, error) {
	log.Debug().
		Float64("secondsRemaining", secondsRemaining).
		Dur("budget", MoveBudget(p, secondsRemaining)).
		Int("depth", maxDepth).
		Msg("searching in parallel")
	r, err := pb.Search.Search(ctx, p, rs, maxDepth, p.SideToMove() == pos.White)
	if err != nil {
		return pos.NullMove, fmt.Errorf("parallel best move: %w", err)
	}
	stats := pb.Search.Stats()
	log.Info().
		Str("move", r.Move.String()).
		Float64("score", r.Score).
		Uint64("evaluated", stats.Evaluated).
		Uint64("skipped", stats.TotalSkipped()).
		Msg("evaluation complete")
	return r.Move, nil
}

// Strategy names accepted by StrategyByName.
const (
	StrategyFirst    = "first"
	StrategyRandom   = "random"
	StrategyBest     = "best"
	StrategyParallel = "parallel"
)

// StrategyByName builds the named strategy configured by opts.
func StrategyByName(name string, opts Options) (Strategy, error) {
	switch name {
	case StrategyFirst:
		return FirstMove{}, nil
	case StrategyRandom:
		return RandomMove{}, nil
	}
	eval, err := opts.NewEvaluator()
	if err != nil {
		return nil, err
	}
	switch name {
	case StrategyBest:
		y := NopYielder
		if opts.Cooperative {
			y = GoschedYielder
		}
		return NewBestMove(eval, y), nil
	case StrategyParallel:
		return NewParallelBestMove(eval, opts.Workers), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// StatsReporter is implemented by strategies that search.
type StatsReporter interface {
	Stats() CutStatistics
}

func (b *BestMove) Stats() CutStatistics          { return b.Searcher.Stats() }
func (pb *ParallelBestMove) Stats() CutStatistics { return pb.Search.Stats() }
