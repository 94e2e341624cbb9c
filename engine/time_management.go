package engine

import (
	"time"

	pos "chessdelux/position"
)

// Budget knobs, in milliseconds.
const (
	overheadMs = 30  // reserve for UCI/IO jitter
	minMoveMs  = 5   // never less than this
	maxFrac    = 0.7 // never spend more than 70% of remaining time
)

var phaseWeight = [...]int{
	pos.PieceTypeKnight: 1,
	pos.PieceTypeBishop: 1,
	pos.PieceTypeRook:   2,
	pos.PieceTypeQueen:  4,
}

// piecePhase is 24 with all minor and major pieces on the board and 0 with none.
func piecePhase(p *pos.Position) int {
	phase := 0
	for _, pc := range p.Placement() {
		if pc == pos.NoPiece {
			continue
		}
		if t := int(pc.Type()); t < len(phaseWeight) {
			phase += phaseWeight[t]
		}
	}
	return Min(phase, 24)
}

// MoveBudget suggests how long to think about p given secondsRemaining on the clock.
// Searches are bounded by depth only; the budget is reported, not enforced. A
// non-positive clock yields 0.
func MoveBudget(p *pos.Position, secondsRemaining float64) time.Duration {
	rem := int(secondsRemaining * 1000)
	if rem <= 0 {
		return 0
	}
	moveTime := rem / estimateMovesRemaining(piecePhase(p))
	moveTime = Min(moveTime, int(float64(rem)*maxFrac))
	moveTime = Min(moveTime, rem-overheadMs)
	moveTime = Max(moveTime, minMoveMs)
	return time.Duration(moveTime) * time.Millisecond
}

func estimateMovesRemaining(phase int) int {
	// 20 in bare endgames up to 45 in the opening
	return (phase*25)/24 + 20
}
