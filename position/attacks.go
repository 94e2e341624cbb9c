package position

type offset struct{ df, dr int }

var (
	rookDirections   = [4]offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirections = [4]offset{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	queenDirections  = [8]offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	knightOffsets    = [8]offset{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingOffsets      = queenDirections
)

// pawnForward is the rank step of a pawn of the given color.
func pawnForward(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// Attacks returns every attack made by side c in the current position.
func (p *Position) Attacks(c Color) []Attack { return p.attacks[c] }

// AttackedSquares returns the set of squares attacked by side c as a bitboard.
func (p *Position) AttackedSquares(c Color) uint64 { return p.attacked[c] }

// IsAttacked reports whether side c attacks sq according to the cached attack map.
func (p *Position) IsAttacked(c Color, sq Square) bool { return p.attacked[c]&sq.bit() != 0 }

// InCheck reports whether c's king is attacked by the opponent.
func (p *Position) InCheck(c Color) bool {
	k := p.KingSquare(c)
	return k != NoSquare && p.IsAttacked(c.Other(), k)
}

// updateAttacks recomputes both sides' attack lists from scratch.
func (p *Position) updateAttacks() {
	p.attacks[White] = p.attacks[White][:0]
	p.attacks[Black] = p.attacks[Black][:0]
	p.attacked = [2]uint64{}
	for sq := Square(0); sq < 64; sq++ {
		pc := p.pieces[sq]
		if pc == NoPiece {
			continue
		}
		c := pc.Color()
		p.attacks[c] = p.appendPieceAttacks(p.attacks[c], sq, pc)
	}
	for c := White; c <= Black; c++ {
		for _, a := range p.attacks[c] {
			p.attacked[c] |= a.Target.bit()
		}
	}
}

// appendPieceAttacks appends the direct attacks of pc standing on sq. Own pieces are
// included as targets so defended squares count.
func (p *Position) appendPieceAttacks(dst []Attack, sq Square, pc Piece) []Attack {
	file, rank := sq.File(), sq.Rank()
	add := func(f, r int) {
		dst = append(dst, Attack{Attacker: pc, From: sq, Target: SquareAt(f, r)})
	}
	switch pc.Type() {
	case PieceTypePawn:
		r := rank + pawnForward(pc.Color())
		for _, df := range [2]int{1, -1} {
			if onBoard(file+df, r) {
				add(file+df, r)
			}
		}
	case PieceTypeKnight:
		for _, o := range knightOffsets {
			if onBoard(file+o.df, rank+o.dr) {
				add(file+o.df, rank+o.dr)
			}
		}
	case PieceTypeKing:
		for _, o := range kingOffsets {
			if onBoard(file+o.df, rank+o.dr) {
				add(file+o.df, rank+o.dr)
			}
		}
	case PieceTypeBishop:
		for _, o := range bishopDirections {
			p.castRay(file, rank, o, add)
		}
	case PieceTypeRook:
		for _, o := range rookDirections {
			p.castRay(file, rank, o, add)
		}
	case PieceTypeQueen:
		for _, o := range queenDirections {
			p.castRay(file, rank, o, add)
		}
	}
	return dst
}

// castRay walks from (file, rank) along o, visiting each square up to and including the
// first occupied one.
func (p *Position) castRay(file, rank int, o offset, visit func(f, r int)) {
	f, r := file+o.df, rank+o.dr
	for onBoard(f, r) {
		visit(f, r)
		if p.pieces[SquareAt(f, r)] != NoPiece {
			return
		}
		f += o.df
		r += o.dr
	}
}

// squareAttackedBy answers the attack-map membership question for a single square
// directly from the placement, without building the lists.
func (p *Position) squareAttackedBy(sq Square, by Color) bool {
	file, rank := sq.File(), sq.Rank()

	// a pawn of color `by` attacks sq from one rank behind it
	pr := rank - pawnForward(by)
	for _, df := range [2]int{1, -1} {
		if onBoard(file+df, pr) && p.pieces[SquareAt(file+df, pr)] == NewPiece(by, PieceTypePawn) {
			return true
		}
	}
	for _, o := range knightOffsets {
		if onBoard(file+o.df, rank+o.dr) && p.pieces[SquareAt(file+o.df, rank+o.dr)] == NewPiece(by, PieceTypeKnight) {
			return true
		}
	}
	for _, o := range kingOffsets {
		if onBoard(file+o.df, rank+o.dr) && p.pieces[SquareAt(file+o.df, rank+o.dr)] == NewPiece(by, PieceTypeKing) {
			return true
		}
	}
	if p.sliderAttacks(file, rank, rookDirections[:], by, PieceTypeRook) {
		return true
	}
	return p.sliderAttacks(file, rank, bishopDirections[:], by, PieceTypeBishop)
}

func (p *Position) sliderAttacks(file, rank int, dirs []offset, by Color, slider PieceType) bool {
	for _, o := range dirs {
		f, r := file+o.df, rank+o.dr
		for onBoard(f, r) {
			pc := p.pieces[SquareAt(f, r)]
			if pc != NoPiece {
				if pc.Color() == by && (pc.Type() == slider || pc.Type() == PieceTypeQueen) {
					return true
				}
				break
			}
			f += o.df
			r += o.dr
		}
	}
	return false
}
