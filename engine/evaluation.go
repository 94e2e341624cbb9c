package engine

import (
	pos "chessdelux/position"
)

// Score bounds. Mate scores sit well inside the search window.
const (
	ScoreInfinity       = 10000.0
	WhiteCheckmateScore = 1000.0
	BlackCheckmateScore = -1000.0
	DrawScore           = 0.0
	mateThreshold       = 900.0
)

// Evaluation weights
var PawnChainScore = 0.6
var PawnAdvancementScore = 0.05

var AttackedSquareScore = 0.02
var CenterAttackScore = 0.1
var CenterRingAttackScore = 0.05
var EnemyPieceAttackScore = 0.05
var DefenseScore = 0.02
var KingAttackScore = 0.3

// d4 e4 d5 e5, then d3 e3 d6 e6
var centerSquares = [...]pos.Square{pos.SquareAt(3, 3), pos.SquareAt(4, 3), pos.SquareAt(3, 4), pos.SquareAt(4, 4)}
var centerRingSquares = [...]pos.Square{pos.SquareAt(3, 2), pos.SquareAt(4, 2), pos.SquareAt(3, 5), pos.SquareAt(4, 5)}

const (
	sqOutside = iota
	sqCenter
	sqCenterRing
)

var centerClass [64]uint8

func init() {
	for _, sq := range centerSquares {
		centerClass[sq] = sqCenter
	}
	for _, sq := range centerRingSquares {
		centerClass[sq] = sqCenterRing
	}
}

// Evaluator scores a node from White's point of view. depth is the remaining search
// depth at the node, used to prefer faster mates.
type Evaluator interface {
	Evaluate(p *pos.Position, rs *RepetitionStack, depth int) float64
}

// BestEvaluator is the full static evaluation.
type BestEvaluator struct{}

func (BestEvaluator) Evaluate(p *pos.Position, rs *RepetitionStack, depth int) float64 {
	return Evaluate(p, rs, depth)
}

// DrawEvaluator scores every position as a draw, except for mates and stalemates. Useful as a
// baseline: a search using it only finds forced mates.
type DrawEvaluator struct{}

func (DrawEvaluator) Evaluate(p *pos.Position, rs *RepetitionStack, depth int) float64 {
	if !p.HasLegalMoves() {
		return terminalScore(p, depth)
	}
	return DrawScore
}

// Evaluate returns the static score of p, positive when White is better.
func Evaluate(p *pos.Position, rs *RepetitionStack, depth int) float64 {
	if !p.HasLegalMoves() {
		return terminalScore(p, depth)
	}
	if rs != nil && rs.Drawn() {
		return DrawScore
	}

	board := p.Placement()
	score := 0.0
	for sq, pc := range board {
		if pc == pos.NoPiece {
			continue
		}
		sign := float64(pc.Color().Sign())
		score += sign * float64(pc.Type().Value())
		if pc.Type() == pos.PieceTypePawn {
			score += sign * (pawnChain(&board, pos.Square(sq), pc) + pawnAdvancement(pos.Square(sq), pc))
		}
	}
	score += attackScore(p, pos.White) - attackScore(p, pos.Black)
	return score
}

func terminalScore(p *pos.Position, depth int) float64 {
	switch {
	case p.InCheck(pos.White):
		return BlackCheckmateScore - float64(depth)
	case p.InCheck(pos.Black):
		return WhiteCheckmateScore + float64(depth)
	}
	return DrawScore
}

// IsMateScore reports whether a score came from a forced mate.
func IsMateScore(score float64) bool {
	return abs(score) >= mateThreshold && abs(score) < ScoreInfinity
}

// pawnChain counts the friendly pawns this pawn supports from behind.
func pawnChain(board *[64]pos.Piece, sq pos.Square, pawn pos.Piece) float64 {
	forward := 1
	if pawn.Color() == pos.Black {
		forward = -1
	}
	rank := sq.Rank() + forward
	if rank < 0 || rank > 7 {
		return 0
	}
	chain := 0.0
	for _, df := range [2]int{-1, 1} {
		file := sq.File() + df
		if file < 0 || file > 7 {
			continue
		}
		if board[pos.SquareAt(file, rank)] == pawn {
			chain += PawnChainScore
		}
	}
	return chain
}

func pawnAdvancement(sq pos.Square, pawn pos.Piece) float64 {
	if pawn.Color() == pos.White {
		return float64(sq.Rank()-1) * PawnAdvancementScore
	}
	return float64(6-sq.Rank()) * PawnAdvancementScore
}

// attackScore sums the mobility and pressure terms of one side's attack list. The
// caller applies the sign.
func attackScore(p *pos.Position, c pos.Color) float64 {
	score := 0.0
	for _, a := range p.Attacks(c) {
		score += AttackedSquareScore
		switch centerClass[a.Target] {
		case sqCenter:
			score += CenterAttackScore
		case sqCenterRing:
			score += CenterRingAttackScore
		}
		target := p.PieceAt(a.Target)
		switch {
		case target == pos.NoPiece:
		case target.Color() == c:
			score += DefenseScore
		case target.Type() == pos.PieceTypeKing:
			score += KingAttackScore
		default:
			score += EnemyPieceAttackScore * float64(target.Type().Value())
		}
	}
	return score
}
