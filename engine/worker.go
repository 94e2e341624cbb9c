package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	pos "chessdelux/position"
)

// Command is a coordinator to worker message.
type Command interface{ isCommand() }

// StartCommand hands a worker its root move. Root and Reps are owned by the worker from
// then on.
type StartCommand struct {
	Move           pos.Move
	Root           *pos.Position
	Reps           *RepetitionStack
	MaxDepth       int
	Maximizing     bool
	RootLegalMoves []pos.Move
	Index          int
}

// UpdateAlphaCommand carries a tightened lower bound from a sibling.
type UpdateAlphaCommand struct{ Alpha float64 }

// UpdateBetaCommand carries a tightened upper bound from a sibling.
type UpdateBetaCommand struct{ Beta float64 }

// ResetCommand drops every advisory bound.
type ResetCommand struct{}

func (StartCommand) isCommand()       {}
func (UpdateAlphaCommand) isCommand() {}
func (UpdateBetaCommand) isCommand()  {}
func (ResetCommand) isCommand()       {}

// Report is a worker to coordinator message.
type Report interface{ isReport() }

// CompleteReport is the single terminal message of a worker.
type CompleteReport struct {
	Worker int
	Result ScoredMove
	Stats  CutStatistics
}

// AlphaReport announces an exact root score for a maximizing root.
type AlphaReport struct {
	Worker int
	Alpha  float64
}

// BetaReport announces an exact root score for a minimizing root.
type BetaReport struct {
	Worker int
	Beta   float64
}

func (CompleteReport) isReport() {}
func (AlphaReport) isReport()    {}
func (BetaReport) isReport()     {}

const workerInboxSize = 16

type worker struct {
	index    int
	inbox    chan Command
	reports  chan<- Report
	searcher *Searcher
	logger   zerolog.Logger
}

func newWorker(index int, reports chan<- Report, eval Evaluator) *worker {
	w := &worker{
		index:    index,
		inbox:    make(chan Command, workerInboxSize),
		reports:  reports,
		searcher: NewSearcher(eval, NopYielder),
		logger:   log.With().Int("worker", index).Logger(),
	}
	w.searcher.poll = w.poll
	return w
}

// run waits for a StartCommand, searches it and reports. Hints arriving before the
// start are kept.
func (w *worker) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-w.inbox:
			if start, ok := cmd.(StartCommand); ok {
				return w.start(ctx, start)
			}
			w.apply(cmd)
		}
	}
}

func (w *worker) start(ctx context.Context, c StartCommand) error {
	if slices.IndexFunc(c.RootLegalMoves, c.Move.SameAs) < 0 {
		return fmt.Errorf("worker %d: %s: %w", w.index, c.Move, pos.ErrUnknownMove)
	}
	w.logger.Debug().Str("move", c.Move.String()).Int("depth", c.MaxDepth).Msg("starting worker")

	c.Root.MakeMove(c.Move)
	c.Reps.Record(c.Root)
	r, err := w.searcher.Search(ctx, c.Root, c.Reps, c.MaxDepth-1, !c.Maximizing)
	if err != nil {
		return err
	}
	result := ScoredMove{Move: c.Move, Score: r.Score, Bounded: r.Bounded}

	w.logger.Debug().
		Str("move", c.Move.String()).
		Float64("score", result.Score).
		Bool("bounded", result.Bounded).
		Uint64("evaluated", w.searcher.stats.Evaluated).
		Msg("worker done")

	if !result.Bounded {
		var bound Report = BetaReport{Worker: w.index, Beta: result.Score}
		if c.Maximizing {
			bound = AlphaReport{Worker: w.index, Alpha: result.Score}
		}
		if err := w.send(ctx, bound); err != nil {
			return err
		}
	}
	return w.send(ctx, CompleteReport{Worker: w.index, Result: result, Stats: w.searcher.Stats()})
}

func (w *worker) send(ctx context.Context, r Report) error {
	select {
	case w.reports <- r:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// poll drains pending hints without blocking. Called by the searcher at every node.
func (w *worker) poll() {
	for {
		select {
		case cmd := <-w.inbox:
			w.apply(cmd)
		default:
			return
		}
	}
}

func (w *worker) apply(cmd Command) {
	s := w.searcher
	switch c := cmd.(type) {
	case UpdateAlphaCommand:
		s.hintAlpha = Max(s.hintAlpha, c.Alpha)
	case UpdateBetaCommand:
		s.hintBeta = Min(s.hintBeta, c.Beta)
	case ResetCommand:
		s.hintAlpha, s.hintBeta = -ScoreInfinity, ScoreInfinity
	case StartCommand:
		w.logger.Warn().Str("move", c.Move.String()).Msg("ignoring start for a busy worker")
	}
}
