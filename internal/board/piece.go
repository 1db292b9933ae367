package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return "pnbrqk"[pt]
}

// Piece is either empty or a (Color, PieceType) pair.
// Encoded as: 1 + pieceType + color*6, so the zero value is an empty square.
type Piece uint8

const (
	NoPiece Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return 1 + Piece(pt) + Piece(c)*6
}

// IsEmpty reports whether p is the empty piece.
func (p Piece) IsEmpty() bool {
	return p == NoPiece || p > BlackKing
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p.IsEmpty() {
		return NoPieceType
	}
	return PieceType((p - 1) % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p.IsEmpty() {
		return NoColor
	}
	return Color((p - 1) / 6)
}

// Is reports whether p is a piece of type pt and color c.
func (p Piece) Is(c Color, pt PieceType) bool {
	return !p.IsEmpty() && p.Color() == c && p.Type() == pt
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	return string("PNBRQKpnbrqk"[p-1])
}

// Name returns a human readable name such as "White Knight".
func (p Piece) Name() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Color().String() + " " + p.Type().String()
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}
