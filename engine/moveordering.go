package engine

import (
	pos "chessdelux/position"
)

type orderedMove struct {
	move  pos.Move
	score uint16
}

type moveList struct {
	moves []orderedMove
}

/*
	Move ordering offsets!
	- Captures first, so tactical lines get their cutoffs early.
	- Then the heavier moving piece; a queen move refutes more often than a pawn push.
	- Then pieces standing further up the board, from the mover's point of view.
	- Finally pieces closer to the centre files.
	Each key fits below the next one's unit, so the composite sorts lexicographically.
*/
var captureOffset uint16 = 1000
var pieceWeight uint16 = 100
var advancementWeight uint16 = 10

const centerFile = 4

// Ordering the moves one at a time, at index given
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := bestIndex + 1; index < len(moves.moves); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}

	moves.moves[currIndex], moves.moves[bestIndex] = moves.moves[bestIndex], moves.moves[currIndex]
}

func moveOrderScore(m pos.Move) uint16 {
	var score uint16
	// en passant leaves the target square empty, so it is ordered as a quiet move
	if m.IsCapture() {
		score += captureOffset
	}
	score += pieceWeight * uint16(m.Piece.Type().Value())

	advancement := m.From.Rank()
	if m.Piece.Color() == pos.Black {
		advancement = 7 - advancement
	}
	score += advancementWeight * uint16(advancement)
	score += uint16(centerFile - abs(m.From.File()-centerFile))
	return score
}

// scoreMovesList fills dst with the legal moves and their ordering keys. dst's buffer is
// reused across calls.
func scoreMovesList(dst *moveList, legal []pos.Move) {
	dst.moves = dst.moves[:0]
	for _, m := range legal {
		dst.moves = append(dst.moves, orderedMove{move: m, score: moveOrderScore(m)})
	}
}

// OrderMoves returns a copy of legal in search order.
func OrderMoves(legal []pos.Move) []pos.Move {
	var list moveList
	scoreMovesList(&list, legal)
	out := make([]pos.Move, len(list.moves))
	for i := range list.moves {
		orderNextMove(i, &list)
		out[i] = list.moves[i].move
	}
	return out
}
