package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	pos "chessdelux/position"
)

// ParallelSearch searches every root move on its own goroutine. Workers share nothing but
// advisory root bounds, relayed through the coordinator.
type ParallelSearch struct {
	Evaluator Evaluator
	// MaxWorkers caps the number of workers running at once; 0 runs them all.
	MaxWorkers int

	stats CutStatistics
}

// Stats returns the merged counters of every worker of the last search.
func (ps *ParallelSearch) Stats() CutStatistics { return ps.stats }

type coordinator struct {
	maximizing bool
	inboxes    []chan Command
	alpha      float64
	beta       float64
	results    []ScoredMove
	stats      CutStatistics
}

// Search returns the best root move of p for the side given by maximizing. It waits for
// every worker; only ctx can cut the wait short.
func (ps *ParallelSearch) Search(ctx context.Context, p *pos.Position, rs *RepetitionStack, depth int, maximizing bool) (ScoredMove, error) {
	moves := slices.Clone(p.LegalMoves())
	if len(moves) == 0 {
		return ScoredMove{}, ErrNoLegalMoves
	}
	if depth < 1 {
		depth = 1
	}
	if rs == nil {
		rs = NewRepetitionStack()
	}

	g, gctx := errgroup.WithContext(ctx)
	if ps.MaxWorkers > 0 {
		g.SetLimit(ps.MaxWorkers)
	}
	// every worker sends at most one bound and one completion
	reports := make(chan Report, 2*len(moves))
	c := &coordinator{
		maximizing: maximizing,
		alpha:      -ScoreInfinity,
		beta:       ScoreInfinity,
	}

	for i, m := range moves {
		w := newWorker(i, reports, ps.Evaluator)
		c.inboxes = append(c.inboxes, w.inbox)
		w.inbox <- ResetCommand{}
		w.inbox <- StartCommand{
			Move:           m,
			Root:           p.Clone(),
			Reps:           rs.Clone(),
			MaxDepth:       depth,
			Maximizing:     maximizing,
			RootLegalMoves: moves,
			Index:          i,
		}
		// late starters begin with the bound found so far
		if maximizing && c.alpha > -ScoreInfinity {
			w.inbox <- UpdateAlphaCommand{Alpha: c.alpha}
		} else if !maximizing && c.beta < ScoreInfinity {
			w.inbox <- UpdateBetaCommand{Beta: c.beta}
		}
		g.Go(func() error { return w.run(gctx) })
		c.drain(reports)
	}

	for len(c.results) < len(moves) {
		select {
		case r := <-reports:
			c.handle(r)
		case <-gctx.Done():
			if err := g.Wait(); err != nil {
				return ScoredMove{}, fmt.Errorf("parallel search: %w", err)
			}
			return ScoredMove{}, gctx.Err()
		}
	}
	if err := g.Wait(); err != nil {
		return ScoredMove{}, fmt.Errorf("parallel search: %w", err)
	}

	ps.stats = c.stats
	best := c.best()
	log.Debug().
		Int("workers", len(moves)).
		Str("best", best.Move.String()).
		Float64("score", best.Score).
		Object("cuts", ps.stats).
		Msg("parallel search complete")
	return best, nil
}

// drain handles every report already queued.
func (c *coordinator) drain(reports <-chan Report) {
	for {
		select {
		case r := <-reports:
			c.handle(r)
		default:
			return
		}
	}
}

func (c *coordinator) handle(r Report) {
	switch r := r.(type) {
	case CompleteReport:
		c.results = append(c.results, r.Result)
		c.stats.Merge(r.Stats)
	case AlphaReport:
		if r.Alpha > c.alpha {
			c.alpha = r.Alpha
			c.broadcast(UpdateAlphaCommand{Alpha: r.Alpha})
		}
	case BetaReport:
		if r.Beta < c.beta {
			c.beta = r.Beta
			c.broadcast(UpdateBetaCommand{Beta: r.Beta})
		}
	}
}

// broadcast is best effort: a full inbox drops the hint.
func (c *coordinator) broadcast(cmd Command) {
	for _, inbox := range c.inboxes {
		select {
		case inbox <- cmd:
		default:
		}
	}
}

// best picks the extreme score. Among equal scores an exact result beats a bound, and
// exact ties are broken at random.
func (c *coordinator) best() ScoredMove {
	best := c.results[0]
	for _, r := range c.results[1:] {
		better := r.Score > best.Score
		if !c.maximizing {
			better = r.Score < best.Score
		}
		switch {
		case better:
			best = r
		case r.Score != best.Score:
		case best.Bounded && !r.Bounded:
			best = r
		case best.Bounded == r.Bounded && frand.Intn(2) == 0:
			best = r
		}
	}
	return best
}
