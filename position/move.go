package position

import (
	"errors"
	"fmt"

	"github.com/dylhunn/dragontoothmg"
)

// Move flags
const (
	FlagNone      = 0
	FlagCastle    = 1
	FlagEnPassant = 2
	// (Promotion is indicated by a non-zero promotion type)
)

// Move is a from-square with its piece, a to-square with whatever stood on it, and an
// optional promotion type.
type Move struct {
	From      Square
	To        Square
	Piece     Piece
	Captured  Piece
	Promotion PieceType
	Flag      uint8
}

// NullMove is the zero Move; it never appears in a legal move list.
var NullMove Move

// IsNull reports whether m is the zero move.
func (m Move) IsNull() bool { return m == NullMove }

// IsCapture reports whether the destination held a piece. En passant does not count,
// the captured pawn is not on the destination square.
func (m Move) IsCapture() bool { return m.Captured != NoPiece }

// IsCastle reports whether m is a castling king move.
func (m Move) IsCastle() bool { return m.Flag == FlagCastle }

// IsEnPassant reports whether m is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Flag == FlagEnPassant }

// SameAs compares the identity used for repetition signatures: squares, promotion and
// moved piece.
func (m Move) SameAs(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion && m.Piece == o.Piece
}

// Key packs the signature identity of a move into an integer.
func (m Move) Key() uint32 {
	return uint32(m.From&0x3F) | uint32(m.To&0x3F)<<6 | uint32(m.Promotion&0x7)<<12 | uint32(m.Piece&0xF)<<15
}

// String returns the UCI long algebraic form, e.g. e2e4 or e7e8q.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	switch m.Promotion {
	case PieceTypeQueen:
		s += "q"
	case PieceTypeRook:
		s += "r"
	case PieceTypeBishop:
		s += "b"
	case PieceTypeKnight:
		s += "n"
	}
	return s
}

// Attack is one attacked square together with the attacking piece.
type Attack struct {
	Attacker Piece
	From     Square
	Target   Square
}

var ErrUnknownMove = errors.New("move not legal in position")

// ParseUCIMove decodes a UCI move string and resolves it against p's legal moves.
func ParseUCIMove(p *Position, s string) (Move, error) {
	dm, err := dragontoothmg.ParseMove(s)
	if err != nil {
		return NullMove, fmt.Errorf("parse move %q: %w", s, err)
	}
	from, to := Square(dm.From()), Square(dm.To())
	promo := fromDragonPiece(dm.Promote())
	for _, m := range p.LegalMoves() {
		if m.From == from && m.To == to && m.Promotion == promo {
			return m, nil
		}
	}
	return NullMove, fmt.Errorf("%s in %s: %w", s, p.FEN(), ErrUnknownMove)
}

func fromDragonPiece(p dragontoothmg.Piece) PieceType {
	switch p {
	case dragontoothmg.Knight:
		return PieceTypeKnight
	case dragontoothmg.Bishop:
		return PieceTypeBishop
	case dragontoothmg.Rook:
		return PieceTypeRook
	case dragontoothmg.Queen:
		return PieceTypeQueen
	default:
		return PieceTypeNone
	}
}
