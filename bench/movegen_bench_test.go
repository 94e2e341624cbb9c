package bench

import (
	"testing"

	pos "chessdelux/position"
)

const (
	kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos6FEN     = "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
)

func benchGenerateMoves(b *testing.B, fen string) {
	board, err := pos.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	var buf pos.Position
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// MakeMove regenerates the legal moves of the child
		buf.CopyFrom(board)
		buf.MakeMove(board.LegalMoves()[0])
	}
}

func BenchmarkGenerateMoves_Initial(b *testing.B) {
	benchGenerateMoves(b, pos.StartFEN)
}

func BenchmarkGenerateMoves_Kiwipete(b *testing.B) {
	benchGenerateMoves(b, kiwipeteFEN)
}

func BenchmarkGenerateMoves_Pos6(b *testing.B) {
	benchGenerateMoves(b, pos6FEN)
}

func BenchmarkPseudoMoves_Kiwipete(b *testing.B) {
	board, err := pos.ParseFEN(kiwipeteFEN)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.GeneratePseudoMoves()
	}
}

func BenchmarkMakeMove_AllMoves_Initial(b *testing.B) {
	board := pos.New()
	moves := board.LegalMoves()
	var child pos.Position
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			child.CopyFrom(board)
			child.MakeMove(m)
		}
	}
}
