package position

import "fmt"

// MakeMove plays m in place and refreshes the attack map and the legal move cache. m is
// expected to come from LegalMoves.
func (p *Position) MakeMove(m Move) {
	p.applyMove(m)
	p.refresh()
}

// applyMove updates placement, clocks, rights, en passant target and side to move.
func (p *Position) applyMove(m Move) {
	mover := m.Piece.Color()
	captured := p.pieces[m.To]
	pawnMove := m.Piece.Type() == PieceTypePawn

	p.movePieces(m)

	if pawnMove || captured != NoPiece {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if mover == Black {
		p.fullmoveNumber++
	}

	p.enPassantSquare = NoSquare
	if pawnMove && abs(m.To.Rank()-m.From.Rank()) == 2 {
		p.enPassantSquare = SquareAt(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	p.updateCastlingRights(m)
	p.sideToMove = mover.Other()
}

// movePieces relocates the moving piece and performs the side effects of castling,
// en passant and promotion on the placement.
func (p *Position) movePieces(m Move) {
	placed := m.Piece
	if m.Promotion != PieceTypeNone {
		placed = NewPiece(m.Piece.Color(), m.Promotion)
	}
	p.pieces[m.From] = NoPiece
	p.pieces[m.To] = placed

	switch {
	case m.Flag == FlagEnPassant:
		// the captured pawn sits beside the destination, on the mover's starting rank
		p.pieces[SquareAt(m.To.File(), m.From.Rank())] = NoPiece
	case m.Flag == FlagCastle || (m.Piece.Type() == PieceTypeKing && abs(m.To.File()-m.From.File()) == 2):
		p.moveCastlingRook(m)
	}
}

func (p *Position) moveCastlingRook(m Move) {
	home := E1
	if m.Piece.Color() == Black {
		home = E8
	}
	if m.From != home {
		panic(fmt.Sprintf("position: castling king on %s, expected %s", m.From, home))
	}
	base := home - 4
	var rookFrom, rookTo Square
	switch m.To {
	case base + 6:
		rookFrom, rookTo = base+7, base+5
	case base + 2:
		rookFrom, rookTo = base, base+3
	default:
		panic(fmt.Sprintf("position: invalid castling destination %s", m.To))
	}
	p.pieces[rookTo] = p.pieces[rookFrom]
	p.pieces[rookFrom] = NoPiece
}

// updateCastlingRights clears rights when a king moves, and when anything leaves or lands
// on a rook home square.
func (p *Position) updateCastlingRights(m Move) {
	if m.Piece.Type() == PieceTypeKing {
		p.castlingRights &^= KingSide(m.Piece.Color()) | QueenSide(m.Piece.Color())
	}
	p.castlingRights &^= rookSquareRight(m.From) | rookSquareRight(m.To)
}

func rookSquareRight(sq Square) CastlingRights {
	switch sq {
	case A1:
		return CastlingWhiteQ
	case H1:
		return CastlingWhiteK
	case A8:
		return CastlingBlackQ
	case H8:
		return CastlingBlackK
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
