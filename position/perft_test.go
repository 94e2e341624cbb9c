package position

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func mustParse(t testing.TB, fen string) *Position {
	t.Helper()
	p, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

func TestPerftInitialPosition(t *testing.T) {
	p := mustParse(t, StartFEN)
	if got := Perft(p, 1); got != 20 {
		t.Fatalf("perft depth1: got %d want %d", got, 20)
	}
	if got := Perft(p, 2); got != 400 {
		t.Fatalf("perft depth2: got %d want %d", got, 400)
	}
	if got := Perft(p, 3); got != 8902 {
		t.Fatalf("perft depth3: got %d want %d", got, 8902)
	}
}

func TestPerftKnownPositions(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		depth int
		want  uint64
	}{
		{"kiwipete d1", kiwipeteFEN, 1, 48},
		{"kiwipete d2", kiwipeteFEN, 2, 2039},
		{"position3 d3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
		{"position4 d2", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2, 264},
		{"position5 d2", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 2, 1486},
		{"en passant d1", "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", 1, 5},
		{"en passant d2", "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", 2, 19},
		{"promotion d1", "1n5k/P7/8/8/8/8/8/7K w - - 0 1", 1, 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParse(t, tc.fen)
			if got := Perft(p, tc.depth); got != tc.want {
				t.Fatalf("perft(%d): got %d want %d", tc.depth, got, tc.want)
			}
		})
	}
}

func dragonPerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragonPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// The independent generator must agree with ours move for move at the root and in
// total below it.
func TestPerftMatchesDragontooth(t *testing.T) {
	fens := []string{
		StartFEN,
		kiwipeteFEN,
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10",
	}
	for _, fen := range fens {
		p := mustParse(t, fen)
		b := dragontoothmg.ParseFen(fen)

		want := make(map[string]bool)
		for _, m := range b.GenerateLegalMoves() {
			want[m.String()] = true
		}
		got := p.LegalMoves()
		if len(got) != len(want) {
			t.Fatalf("%s: %d legal moves, dragontooth has %d", fen, len(got), len(want))
		}
		for _, m := range got {
			if !want[m.String()] {
				t.Fatalf("%s: move %s not generated by dragontooth", fen, m)
			}
		}
		if g, w := Perft(p, 2), dragonPerft(&b, 2); g != w {
			t.Fatalf("%s: perft(2) got %d, dragontooth %d", fen, g, w)
		}
	}
}

func TestPerftDivideInitialDepth2(t *testing.T) {
	div := PerftDivide(mustParse(t, StartFEN), 2)
	if len(div) != 20 {
		t.Fatalf("divide length: got %d want %d", len(div), 20)
	}
	var sum uint64
	for m, v := range div {
		sum += v
		if v != 20 {
			t.Fatalf("child %s: got %d want 20", m, v)
		}
	}
	if sum != 400 {
		t.Fatalf("divide sum: got %d want %d", sum, 400)
	}
}
