package engine

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/exp/slices"

	pos "chessdelux/position"
)

func allStrategies(t *testing.T) map[string]Strategy {
	t.Helper()
	opts := DefaultOptions()
	out := make(map[string]Strategy)
	for _, name := range []string{StrategyFirst, StrategyRandom, StrategyBest, StrategyParallel} {
		s, err := StrategyByName(name, opts)
		if err != nil {
			t.Fatalf("StrategyByName(%q): %v", name, err)
		}
		out[name] = s
	}
	return out
}

func TestStrategiesRejectFinishedPositions(t *testing.T) {
	for _, fen := range []string{foolsMateFEN, stalemateFEN} {
		p, rs := rootNode(t, fen)
		for name, s := range allStrategies(t) {
			if _, err := s.SelectMove(context.Background(), p, rs, 10, 2); !errors.Is(err, ErrNoLegalMoves) {
				t.Fatalf("%s on %s: expected ErrNoLegalMoves, got %v", name, fen, err)
			}
		}
	}
}

func TestStrategiesReturnLegalMoves(t *testing.T) {
	p, rs := rootNode(t, kiwipeteFEN)
	for name, s := range allStrategies(t) {
		m, err := s.SelectMove(context.Background(), p, rs, 10, 2)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if slices.IndexFunc(p.LegalMoves(), m.SameAs) < 0 {
			t.Fatalf("%s returned illegal move %s", name, m)
		}
	}
	first, _ := FirstMove{}.SelectMove(context.Background(), p, rs, 0, 0)
	if first != p.LegalMoves()[0] {
		t.Fatalf("first move: got %s want %s", first, p.LegalMoves()[0])
	}
}

func TestRandomMoveCoversLegalMoves(t *testing.T) {
	p, rs := rootNode(t, pos.StartFEN)
	seen := make(map[pos.Move]bool)
	for i := 0; i < 2000 && len(seen) < 20; i++ {
		m, err := RandomMove{}.SelectMove(context.Background(), p, rs, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		seen[m] = true
	}
	if len(seen) != 20 {
		t.Fatalf("random move reached %d of 20 moves", len(seen))
	}
}

func TestSearchStrategiesFindMate(t *testing.T) {
	strategies := allStrategies(t)
	for _, name := range []string{StrategyBest, StrategyParallel} {
		for fen, want := range map[string]string{whiteMateInOneFEN: "a1a8", blackMateInOneFEN: "a8a1"} {
			p, rs := rootNode(t, fen)
			m, err := strategies[name].SelectMove(context.Background(), p, rs, 5, 3)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if m.String() != want {
				t.Fatalf("%s on %s: got %s want %s", name, fen, m, want)
			}
			if stats := strategies[name].(StatsReporter).Stats(); stats.Nodes == 0 {
				t.Fatalf("%s reported no nodes", name)
			}
		}
	}
}

// A side that is down a queen takes the threefold as soon as it is on offer.
func TestSearchClaimsRepetitionWhenLosing(t *testing.T) {
	p, rs := rootNode(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	playMoves(t, p, rs, "e1f1", "e8f8", "f1e1", "f8e8", "e1f1", "e8f8", "f1e1")
	// f8e8 reaches the start position for the third time
	s := NewBestMove(BestEvaluator{}, NopYielder)
	m, err := s.SelectMove(context.Background(), p, rs, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "f8e8" {
		t.Fatalf("expected Black to repeat with f8e8, got %s", m)
	}
}

func TestStrategyByNameUnknown(t *testing.T) {
	if _, err := StrategyByName("alphazero", DefaultOptions()); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
	opts := DefaultOptions()
	opts.Evaluator = "nnue"
	if _, err := StrategyByName(StrategyBest, opts); !errors.Is(err, ErrUnknownEvaluator) {
		t.Fatalf("expected ErrUnknownEvaluator, got %v", err)
	}
}
