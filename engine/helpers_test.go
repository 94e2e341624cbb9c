package engine

import (
	"testing"

	pos "chessdelux/position"
)

const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// mate in one for White (a1a8) and its colour-flipped twin for Black (a8a1)
const (
	whiteMateInOneFEN = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	blackMateInOneFEN = "r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1"
	foolsMateFEN      = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemateFEN      = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
)

func mustFEN(t testing.TB, fen string) *pos.Position {
	t.Helper()
	p, err := pos.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

// rootNode returns a position and a history holding just that position.
func rootNode(t testing.TB, fen string) (*pos.Position, *RepetitionStack) {
	t.Helper()
	p := mustFEN(t, fen)
	rs := NewRepetitionStack()
	rs.Record(p)
	return p, rs
}

func playMoves(t testing.TB, p *pos.Position, rs *RepetitionStack, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := pos.ParseUCIMove(p, s)
		if err != nil {
			t.Fatalf("move %s: %v", s, err)
		}
		p.MakeMove(m)
		if rs != nil {
			rs.Record(p)
		}
	}
}

// minimax is the unpruned reference search.
func minimax(p *pos.Position, rs *RepetitionStack, depth int, maximizing bool) float64 {
	return minimaxWith(BestEvaluator{}, p, rs, depth, maximizing)
}

func minimaxWith(eval Evaluator, p *pos.Position, rs *RepetitionStack, depth int, maximizing bool) float64 {
	if depth == 0 || !p.HasLegalMoves() {
		evalDepth := depth
		if depth == 0 {
			evalDepth = 1
		}
		return eval.Evaluate(p, rs, evalDepth)
	}
	best := ScoreInfinity
	if maximizing {
		best = -ScoreInfinity
	}
	for _, m := range p.LegalMoves() {
		child := p.Clone()
		child.MakeMove(m)
		reps := rs.Clone()
		reps.Record(child)
		v := minimaxWith(eval, child, reps, depth-1, !maximizing)
		if maximizing {
			best = Max(best, v)
		} else {
			best = Min(best, v)
		}
	}
	return best
}
