package engine

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	pos "chessdelux/position"
)

// ErrNoLegalMoves is returned when a move is requested for a finished position.
var ErrNoLegalMoves = errors.New("no legal moves")

// ScoredMove is a move with its minimax score from White's point of view.
type ScoredMove struct {
	Move  pos.Move
	Score float64
	// Bounded is set when the score is only an upper or lower bound: it fell outside the
	// search window, as narrowed by the parent or by advisory bounds from sibling workers.
	Bounded bool
}

// node is one arena slot: the position reached at a ply, its repetition history and
// the move buffer used to iterate its children.
type node struct {
	position pos.Position
	reps     RepetitionStack
	moves    moveList
}

// Searcher runs alpha-beta minimax. All search state lives here, one Searcher per
// goroutine.
type Searcher struct {
	Evaluator Evaluator
	Yielder   Yielder

	stats CutStatistics
	plies []node

	// advisory window from sibling workers, polled with poll
	hintAlpha float64
	hintBeta  float64
	poll      func()
}

// NewSearcher returns a searcher with the given evaluator, defaulting to BestEvaluator
// and no yielding.
func NewSearcher(eval Evaluator, y Yielder) *Searcher {
	if eval == nil {
		eval = BestEvaluator{}
	}
	if y == nil {
		y = NopYielder
	}
	return &Searcher{Evaluator: eval, Yielder: y, hintAlpha: -ScoreInfinity, hintBeta: ScoreInfinity}
}

// Stats returns the counters of the last search.
func (s *Searcher) Stats() CutStatistics { return s.stats }

// Search explores depth plies below p and returns the best move for the side given by
// maximizing (true = White). rs is the history up to and including p; neither argument is
// modified. A terminal root or depth 0 yields a null move with the static score.
func (s *Searcher) Search(ctx context.Context, p *pos.Position, rs *RepetitionStack, depth int, maximizing bool) (ScoredMove, error) {
	if depth < 0 {
		depth = 0
	}
	s.stats.reset(depth)
	if cap(s.plies) < depth+1 {
		s.plies = make([]node, depth+1)
	}
	s.plies = s.plies[:depth+1]

	root := &s.plies[0]
	root.position.CopyFrom(p)
	if rs != nil {
		root.reps.CopyFrom(rs)
	} else {
		root.reps.entries = root.reps.entries[:0]
	}

	result, err := s.alphaBeta(ctx, 0, depth, -ScoreInfinity, ScoreInfinity, maximizing)
	if err != nil {
		return ScoredMove{}, err
	}
	log.Debug().
		Str("best", result.Move.String()).
		Float64("score", result.Score).
		Bool("bounded", result.Bounded).
		Object("cuts", s.stats).
		Msg("search complete")
	return result, nil
}

// child makes m from the node at ply into the slot at ply+1.
func (s *Searcher) child(ply int, m pos.Move) {
	parent, next := &s.plies[ply], &s.plies[ply+1]
	next.position.CopyFrom(&parent.position)
	next.position.MakeMove(m)
	next.reps.CopyFrom(&parent.reps)
	next.reps.Record(&next.position)
}

func (s *Searcher) clampWindow(alpha, beta float64) (float64, float64) {
	if s.poll != nil {
		s.poll()
	}
	return Max(alpha, s.hintAlpha), Min(beta, s.hintBeta)
}

func (s *Searcher) alphaBeta(ctx context.Context, ply, depth int, alpha, beta float64, maximizing bool) (ScoredMove, error) {
	if err := ctx.Err(); err != nil {
		return ScoredMove{}, err
	}
	s.Yielder.Yield()
	s.stats.Nodes++

	n := &s.plies[ply]
	if depth == 0 || !n.position.HasLegalMoves() {
		s.stats.Evaluated++
		// horizon leaves are scored with depth 1
		evalDepth := depth
		if depth == 0 {
			evalDepth = 1
		}
		return ScoredMove{Score: s.Evaluator.Evaluate(&n.position, &n.reps, evalDepth)}, nil
	}

	alpha, beta = s.clampWindow(alpha, beta)
	lo, hi := alpha, beta

	scoreMovesList(&n.moves, n.position.LegalMoves())
	total := len(n.moves.moves)

	best := ScoredMove{Move: pos.NullMove, Score: ScoreInfinity}
	if maximizing {
		best.Score = -ScoreInfinity
	}
	for i := 0; i < total; i++ {
		orderNextMove(i, &n.moves)
		m := n.moves.moves[i].move

		s.child(ply, m)
		reply, err := s.alphaBeta(ctx, ply+1, depth-1, alpha, beta, !maximizing)
		if err != nil {
			return ScoredMove{}, err
		}

		switch {
		case best.Move.IsNull(),
			maximizing && reply.Score > best.Score,
			!maximizing && reply.Score < best.Score:
			best.Move, best.Score = m, reply.Score
		case reply.Score == best.Score && !reply.Bounded && frand.Intn(2) == 0:
			// a bound equal to best may hide a worse move
			best.Move = m
		}

		alpha, beta = s.clampWindow(alpha, beta)
		lo, hi = Max(lo, s.hintAlpha), Min(hi, s.hintBeta)
		if maximizing {
			alpha = Max(alpha, best.Score)
		} else {
			beta = Min(beta, best.Score)
		}
		// strict, so a score equal to a window edge is still exact
		if beta < alpha {
			s.stats.addSkips(depth-1, total-(i+1))
			break
		}
	}
	best.Bounded = best.Score < lo || best.Score > hi
	return best, nil
}
