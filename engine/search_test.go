package engine

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/exp/slices"

	pos "chessdelux/position"
)

type searchCase struct {
	name  string
	fen   string
	depth int
}

var searchPositions = []searchCase{
	{"start", pos.StartFEN, 2},
	{"kiwipete", kiwipeteFEN, 2},
	{"rook endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
	{"black to move", "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 3 2", 2},
	{"mate threat", whiteMateInOneFEN, 3},
	{"minor pieces", "4k3/3n4/8/2b5/8/4N3/3B4/4K3 b - - 0 1", 3},
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	for _, tc := range searchPositions {
		t.Run(tc.name, func(t *testing.T) {
			p, rs := rootNode(t, tc.fen)
			maximizing := p.SideToMove() == pos.White

			want := minimax(p, rs, tc.depth, maximizing)
			got, err := NewSearcher(nil, nil).Search(context.Background(), p, rs, tc.depth, maximizing)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if got.Score != want {
				t.Fatalf("alpha-beta %v, minimax %v", got.Score, want)
			}
			if got.Bounded {
				t.Fatalf("a full window search must be exact")
			}
			if slices.IndexFunc(p.LegalMoves(), got.Move.SameAs) < 0 {
				t.Fatalf("best move %s is not legal", got.Move)
			}
		})
	}
}

// The chosen move must be worth the reported score, including when pruned siblings
// returned bounds equal to it.
func TestSearchMoveIsWorthItsScore(t *testing.T) {
	positions := append(slices.Clone(searchPositions),
		searchCase{"back rank", "4r1k1/5ppp/8/8/8/8/5PPP/6K1 w - - 0 2", 2},
		searchCase{"back rank black", "6k1/5ppp/8/8/8/8/5PPP/4R1K1 b - - 0 2", 2},
	)
	evaluators := map[string]Evaluator{"best": BestEvaluator{}, "draw": DrawEvaluator{}}
	for _, tc := range positions {
		for name, eval := range evaluators {
			t.Run(tc.name+"/"+name, func(t *testing.T) {
				p, rs := rootNode(t, tc.fen)
				maximizing := p.SideToMove() == pos.White
				s := NewSearcher(eval, nil)
				for i := 0; i < 8; i++ {
					got, err := s.Search(context.Background(), p, rs, tc.depth, maximizing)
					if err != nil {
						t.Fatalf("search: %v", err)
					}
					child := p.Clone()
					child.MakeMove(got.Move)
					reps := rs.Clone()
					reps.Record(child)
					if exact := minimaxWith(eval, child, reps, tc.depth-1, !maximizing); exact != got.Score {
						t.Fatalf("%s reported %v, worth %v", got.Move, got.Score, exact)
					}
				}
			})
		}
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	cases := []struct {
		fen  string
		move string
		want float64
	}{
		{whiteMateInOneFEN, "a1a8", WhiteCheckmateScore + 1},
		{blackMateInOneFEN, "a8a1", BlackCheckmateScore - 1},
	}
	for _, tc := range cases {
		p, rs := rootNode(t, tc.fen)
		s := NewSearcher(BestEvaluator{}, nil)
		got, err := s.Search(context.Background(), p, rs, 2, p.SideToMove() == pos.White)
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if got.Move.String() != tc.move || got.Score != tc.want {
			t.Fatalf("%s: got %s (%v), want %s (%v)", tc.fen, got.Move, got.Score, tc.move, tc.want)
		}
	}
}

// Deeper searches see a mate with more remaining depth and score it further from zero.
func TestMateScoreGrowsWithRemainingDepth(t *testing.T) {
	p, rs := rootNode(t, whiteMateInOneFEN)
	s := NewSearcher(DrawEvaluator{}, nil)
	shallow, err := s.Search(context.Background(), p, rs, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	deep, err := s.Search(context.Background(), p, rs, 3, true)
	if err != nil {
		t.Fatal(err)
	}
	if shallow.Move.String() != "a1a8" || deep.Move.String() != "a1a8" {
		t.Fatalf("expected a1a8 at both depths, got %s and %s", shallow.Move, deep.Move)
	}
	if !(deep.Score > shallow.Score && IsMateScore(shallow.Score)) {
		t.Fatalf("mate scores: depth1 %v depth3 %v", shallow.Score, deep.Score)
	}
}

func TestSearchTerminalRoot(t *testing.T) {
	p, rs := rootNode(t, foolsMateFEN)
	got, err := NewSearcher(nil, nil).Search(context.Background(), p, rs, 3, true)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !got.Move.IsNull() || got.Score != BlackCheckmateScore-3 {
		t.Fatalf("terminal root: got %s %v", got.Move, got.Score)
	}
}

func TestSearchHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, rs := rootNode(t, pos.StartFEN)
	if _, err := NewSearcher(nil, nil).Search(ctx, p, rs, 3, true); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSearchLeavesInputsUntouched(t *testing.T) {
	p, rs := rootNode(t, kiwipeteFEN)
	fen, entries := p.FEN(), rs.Entries()
	if _, err := NewSearcher(nil, nil).Search(context.Background(), p, rs, 2, true); err != nil {
		t.Fatal(err)
	}
	if p.FEN() != fen || len(p.LegalMoves()) != 48 {
		t.Fatalf("search mutated the root position")
	}
	if !slices.EqualFunc(entries, rs.Entries(), func(a, b RepetitionEntry) bool {
		return a.Count == b.Count && a.Signature.Equal(b.Signature)
	}) {
		t.Fatalf("search mutated the repetition stack")
	}
}

func TestCooperativeSearchYieldsEveryNode(t *testing.T) {
	var yields uint64
	s := NewSearcher(nil, YieldFunc(func() { yields++ }))
	p, rs := rootNode(t, pos.StartFEN)
	if _, err := s.Search(context.Background(), p, rs, 3, true); err != nil {
		t.Fatal(err)
	}
	stats := s.Stats()
	if yields == 0 || yields != stats.Nodes {
		t.Fatalf("yields %d, nodes %d", yields, stats.Nodes)
	}
	if stats.BetaCutoffs == 0 || stats.TotalSkipped() == 0 {
		t.Fatalf("expected pruning at depth 3, got %+v", stats)
	}
	if stats.Evaluated >= 8902 {
		t.Fatalf("alpha-beta evaluated %d leaves, no fewer than minimax", stats.Evaluated)
	}
}

func TestMoveOrdering(t *testing.T) {
	p := mustFEN(t, kiwipeteFEN)
	legal := p.LegalMoves()
	ordered := OrderMoves(legal)
	if len(ordered) != len(legal) {
		t.Fatalf("ordering changed the move count: %d vs %d", len(ordered), len(legal))
	}
	for _, m := range legal {
		if slices.IndexFunc(ordered, m.SameAs) < 0 {
			t.Fatalf("ordering lost %s", m)
		}
	}
	seenQuiet := false
	for _, m := range ordered {
		if !m.IsCapture() {
			seenQuiet = true
		} else if seenQuiet {
			t.Fatalf("capture %s ordered after a quiet move", m)
		}
	}
	// among the captures the queen moves first
	if ordered[0].Piece.Type() != pos.PieceTypeQueen || !ordered[0].IsCapture() {
		t.Fatalf("expected a queen capture first, got %s", ordered[0])
	}

	start := OrderMoves(mustFEN(t, pos.StartFEN).LegalMoves())
	for i := 1; i < len(start); i++ {
		if moveOrderScore(start[i]) > moveOrderScore(start[i-1]) {
			t.Fatalf("ordering keys not descending at %d: %s before %s", i, start[i-1], start[i])
		}
	}
	if start[0].Piece.Type() != pos.PieceTypeKnight {
		t.Fatalf("knights outrank pawns, got %s first", start[0])
	}
}

func TestEnPassantOrdersAsQuiet(t *testing.T) {
	p := mustFEN(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	var ep, push pos.Move
	for _, m := range p.LegalMoves() {
		switch m.String() {
		case "e5d6":
			ep = m
		case "e5e6":
			push = m
		}
	}
	if !ep.IsEnPassant() || push.IsNull() {
		t.Fatalf("expected e5d6 en passant and e5e6, got %s and %s", ep, push)
	}
	if moveOrderScore(ep) != moveOrderScore(push) {
		t.Fatalf("en passant key %d, quiet push key %d", moveOrderScore(ep), moveOrderScore(push))
	}
}
