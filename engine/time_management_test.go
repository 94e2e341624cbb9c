package engine

import (
	"testing"
	"time"

	pos "chessdelux/position"
)

func TestMoveBudget(t *testing.T) {
	start := mustFEN(t, pos.StartFEN)
	if got := MoveBudget(start, 0); got != 0 {
		t.Fatalf("no clock: got %v", got)
	}
	// 45 moves left in the opening
	if got, want := MoveBudget(start, 90), 2*time.Second; got != want {
		t.Fatalf("opening budget: got %v, want %v", got, want)
	}
	endgame := mustFEN(t, whiteMateInOneFEN)
	if MoveBudget(endgame, 90) <= MoveBudget(start, 90) {
		t.Fatalf("endgames should get a larger share of the clock")
	}
	if got := MoveBudget(start, 0.001); got != minMoveMs*time.Millisecond {
		t.Fatalf("floor: got %v", got)
	}
}
