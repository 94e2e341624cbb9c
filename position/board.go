package position

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// PromotionTypes lists the piece types a pawn may promote to, in generation order.
var PromotionTypes = [4]PieceType{PieceTypeBishop, PieceTypeKnight, PieceTypeRook, PieceTypeQueen}

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// NewPiece combines a colorless type with a side.
func NewPiece(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	if color == Black {
		return Piece(pt) | 8
	}
	return Piece(pt)
}

// Value is the material value of a piece type (king counts as 0).
func (pt PieceType) Value() int {
	switch pt {
	case PieceTypePawn:
		return 1
	case PieceTypeKnight, PieceTypeBishop:
		return 3
	case PieceTypeRook:
		return 5
	case PieceTypeQueen:
		return 9
	default:
		return 0
	}
}

func (pt PieceType) String() string {
	switch pt {
	case PieceTypePawn:
		return "pawn"
	case PieceTypeKnight:
		return "knight"
	case PieceTypeBishop:
		return "bishop"
	case PieceTypeRook:
		return "rook"
	case PieceTypeQueen:
		return "queen"
	case PieceTypeKing:
		return "king"
	default:
		return "none"
	}
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

// Sign is +1 for White and -1 for Black.
func (c Color) Sign() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ
)

// KingSide returns the king-side flag for a color.
func KingSide(c Color) CastlingRights {
	if c == White {
		return CastlingWhiteK
	}
	return CastlingBlackK
}

// QueenSide returns the queen-side flag for a color.
func QueenSide(c Color) CastlingRights {
	if c == White {
		return CastlingWhiteQ
	}
	return CastlingBlackQ
}

// Square represents a board position (0-63), a1 = 0, h8 = 63.
type Square int

const NoSquare Square = -1

// Named squares used by castling.
const (
	A1 Square = 0
	C1 Square = 2
	D1 Square = 3
	E1 Square = 4
	F1 Square = 5
	G1 Square = 6
	H1 Square = 7
	A8 Square = 56
	C8 Square = 58
	D8 Square = 59
	E8 Square = 60
	F8 Square = 61
	G8 Square = 62
	H8 Square = 63
)

// SquareAt builds a square from file and rank indices (0-7).
func SquareAt(file, rank int) Square { return Square(rank*8 + file) }

// File returns the file index 0 (a) .. 7 (h).
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns the rank index 0 (rank 1) .. 7 (rank 8).
func (sq Square) Rank() int { return int(sq) >> 3 }

func (sq Square) String() string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

func (sq Square) bit() uint64 { return 1 << uint(sq) }

func onBoard(file, rank int) bool { return file >= 0 && file < 8 && rank >= 0 && rank < 8 }

// Position is the full game state: placement, side to move, rights, clocks and the
// derived attack and legal move caches.
type Position struct {
	pieces [64]Piece

	sideToMove     Color
	castlingRights CastlingRights

	// En passant target square (the square a double-pushed pawn passed over), or NoSquare
	enPassantSquare Square

	// Half-moves since the last capture or pawn move
	halfmoveClock int

	// Starts at 1, incremented after Black's move
	fullmoveNumber int

	// attacks[c] lists every attack by side c; attacked[c] is the matching square set
	attacks  [2][]Attack
	attacked [2]uint64

	legal []Move
}

// PieceAt returns the piece on a square.
func (p *Position) PieceAt(sq Square) Piece { return p.pieces[int(sq)] }

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// CastlingRights returns the current castling rights mask.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (p *Position) EnPassantSquare() Square { return p.enPassantSquare }

// HalfmoveClock accessor for consumers that want read-only access.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// FullmoveNumber returns the full move counter.
func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

// Placement returns a copy of the piece array.
func (p *Position) Placement() [64]Piece { return p.pieces }

// KingSquare returns the square of the given side's king, or NoSquare.
func (p *Position) KingSquare(c Color) Square {
	king := NewPiece(c, PieceTypeKing)
	for sq, pc := range p.pieces {
		if pc == king {
			return Square(sq)
		}
	}
	return NoSquare
}

// Clone returns a fully independent copy.
func (p *Position) Clone() *Position {
	c := &Position{}
	c.CopyFrom(p)
	return c
}

// CopyFrom overwrites p with src, reusing p's cache buffers.
func (p *Position) CopyFrom(src *Position) {
	attacks, legal := p.attacks, p.legal
	*p = *src
	p.attacks[White] = append(attacks[White][:0], src.attacks[White]...)
	p.attacks[Black] = append(attacks[Black][:0], src.attacks[Black]...)
	p.legal = append(legal[:0], src.legal...)
}
