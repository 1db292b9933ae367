// Package board implements the chess board, move generation and check detection.
package board

import "fmt"

// Square is a (row, column) pair on the 8x8 grid.
// Row 0 is Black's back rank (rank 8), row 7 is White's (rank 1);
// column 0 is the a-file.
type Square struct {
	Row, Col int
}

// NoSquare is the sentinel for "no square".
var NoSquare = Square{Row: -1, Col: -1}

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square{Row: row, Col: col}
}

// IsValid returns true if the square lies on the board.
func (sq Square) IsValid() bool {
	return sq.Row >= 0 && sq.Row < 8 && sq.Col >= 0 && sq.Col < 8
}

// Offset returns the square shifted by (dr, dc). The result may be off the board.
func (sq Square) Offset(dr, dc int) Square {
	return Square{Row: sq.Row + dr, Col: sq.Col + dc}
}

// Mirror returns the square mirrored vertically (row -> 7-row).
func (sq Square) Mirror() Square {
	return Square{Row: 7 - sq.Row, Col: sq.Col}
}

// File returns the file letter ('a'..'h').
func (sq Square) File() byte {
	return 'a' + byte(sq.Col)
}

// Rank returns the rank digit ('1'..'8').
func (sq Square) Rank() byte {
	return '8' - byte(sq.Row)
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{sq.File(), sq.Rank()})
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	col := int(s[0]) - 'a'
	row := '8' - int(s[1])

	sq := NewSquare(row, col)
	if !sq.IsValid() {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}
