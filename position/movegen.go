package position

// LegalMoves returns the cached legal moves for the side to move. The slice is owned by
// the position and is overwritten by the next MakeMove; copy it to keep it.
func (p *Position) LegalMoves() []Move { return p.legal }

// HasLegalMoves reports whether the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool { return len(p.legal) > 0 }

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return !p.HasLegalMoves() && p.InCheck(p.sideToMove)
}

// IsStalemate reports whether the side to move is stalemated.
func (p *Position) IsStalemate() bool {
	return !p.HasLegalMoves() && !p.InCheck(p.sideToMove)
}

// refresh rebuilds the attack map and then the legal move cache. Castling generation reads
// the attack map, so the order matters.
func (p *Position) refresh() {
	p.updateAttacks()
	p.legal = p.generateLegal(p.legal[:0])
}

// generateLegal appends the pseudo-legal moves of the side to move to dst and keeps
// those that do not leave the mover's king attacked.
func (p *Position) generateLegal(dst []Move) []Move {
	start := len(dst)
	dst = p.generatePseudo(dst)
	n := start
	for i := start; i < len(dst); i++ {
		if p.leavesKingSafe(dst[i]) {
			dst[n] = dst[i]
			n++
		}
	}
	return dst[:n]
}

// leavesKingSafe applies m to the placement only, asks whether the mover's king is
// attacked, and restores the placement.
func (p *Position) leavesKingSafe(m Move) bool {
	saved := p.pieces
	p.movePieces(m)
	us := m.Piece.Color()
	safe := true
	if k := p.KingSquare(us); k != NoSquare {
		safe = !p.squareAttackedBy(k, us.Other())
	}
	p.pieces = saved
	return safe
}

// GeneratePseudoMoves returns moves that follow piece movement rules without checking
// whether they expose the mover's king.
func (p *Position) GeneratePseudoMoves() []Move {
	return p.generatePseudo(make([]Move, 0, 64))
}

func (p *Position) generatePseudo(dst []Move) []Move {
	us := p.sideToMove
	for sq := Square(0); sq < 64; sq++ {
		pc := p.pieces[sq]
		if pc == NoPiece || pc.Color() != us {
			continue
		}
		switch pc.Type() {
		case PieceTypePawn:
			dst = p.appendPawnMoves(dst, sq, pc)
		case PieceTypeKnight:
			dst = p.appendStepMoves(dst, sq, pc, knightOffsets[:])
		case PieceTypeBishop:
			dst = p.appendSlideMoves(dst, sq, pc, bishopDirections[:])
		case PieceTypeRook:
			dst = p.appendSlideMoves(dst, sq, pc, rookDirections[:])
		case PieceTypeQueen:
			dst = p.appendSlideMoves(dst, sq, pc, queenDirections[:])
		case PieceTypeKing:
			dst = p.appendStepMoves(dst, sq, pc, kingOffsets[:])
			dst = p.appendCastles(dst, sq, pc)
		}
	}
	return dst
}

func (p *Position) appendStepMoves(dst []Move, from Square, pc Piece, offsets []offset) []Move {
	file, rank := from.File(), from.Rank()
	for _, o := range offsets {
		f, r := file+o.df, rank+o.dr
		if !onBoard(f, r) {
			continue
		}
		to := SquareAt(f, r)
		target := p.pieces[to]
		if target != NoPiece && target.Color() == pc.Color() {
			continue
		}
		dst = append(dst, Move{From: from, To: to, Piece: pc, Captured: target})
	}
	return dst
}

func (p *Position) appendSlideMoves(dst []Move, from Square, pc Piece, dirs []offset) []Move {
	file, rank := from.File(), from.Rank()
	for _, o := range dirs {
		p.castRay(file, rank, o, func(f, r int) {
			to := SquareAt(f, r)
			target := p.pieces[to]
			if target != NoPiece && target.Color() == pc.Color() {
				return
			}
			dst = append(dst, Move{From: from, To: to, Piece: pc, Captured: target})
		})
	}
	return dst
}

func (p *Position) appendPawnMoves(dst []Move, from Square, pc Piece) []Move {
	us := pc.Color()
	file, rank := from.File(), from.Rank()
	fwd := pawnForward(us)
	startRank, lastRank := 1, 7
	if us == Black {
		startRank, lastRank = 6, 0
	}

	addPawnMove := func(to Square, captured Piece, flag uint8) {
		if to.Rank() == lastRank {
			for _, pt := range PromotionTypes {
				dst = append(dst, Move{From: from, To: to, Piece: pc, Captured: captured, Promotion: pt})
			}
			return
		}
		dst = append(dst, Move{From: from, To: to, Piece: pc, Captured: captured, Flag: flag})
	}

	r := rank + fwd
	if !onBoard(file, r) {
		return dst
	}
	one := SquareAt(file, r)
	if p.pieces[one] == NoPiece {
		addPawnMove(one, NoPiece, FlagNone)
		if rank == startRank {
			two := SquareAt(file, r+fwd)
			if p.pieces[two] == NoPiece {
				addPawnMove(two, NoPiece, FlagNone)
			}
		}
	}
	for _, df := range [2]int{1, -1} {
		if !onBoard(file+df, r) {
			continue
		}
		to := SquareAt(file+df, r)
		target := p.pieces[to]
		switch {
		case target != NoPiece && target.Color() != us:
			addPawnMove(to, target, FlagNone)
		case target == NoPiece && to == p.enPassantSquare:
			addPawnMove(to, NoPiece, FlagEnPassant)
		}
	}
	return dst
}

// appendCastles adds castling moves when the right is held, the king and rook stand on
// their home squares, the squares between them are empty, the king is not in check and
// neither its transit nor its destination square is attacked.
func (p *Position) appendCastles(dst []Move, from Square, king Piece) []Move {
	us := king.Color()
	home := E1
	if us == Black {
		home = E8
	}
	if from != home {
		return dst
	}
	them := us.Other()
	if p.IsAttacked(them, from) {
		return dst
	}
	rook := NewPiece(us, PieceTypeRook)
	base := home - 4 // a1 or a8

	if p.castlingRights&KingSide(us) != 0 && p.pieces[base+7] == rook &&
		p.pieces[base+5] == NoPiece && p.pieces[base+6] == NoPiece &&
		!p.IsAttacked(them, base+5) && !p.IsAttacked(them, base+6) {
		dst = append(dst, Move{From: from, To: base + 6, Piece: king, Flag: FlagCastle})
	}
	if p.castlingRights&QueenSide(us) != 0 && p.pieces[base] == rook &&
		p.pieces[base+1] == NoPiece && p.pieces[base+2] == NoPiece && p.pieces[base+3] == NoPiece &&
		!p.IsAttacked(them, base+3) && !p.IsAttacked(them, base+2) {
		dst = append(dst, Move{From: from, To: base + 2, Piece: king, Flag: FlagCastle})
	}
	return dst
}
