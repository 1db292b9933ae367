package board

import (
	"fmt"
	"strings"
)

// Move is an immutable description of a move, captured from the board as it
// stood before the move was applied. It carries everything UndoMove needs.
//
// Two moves are the same move when their start and end squares coincide;
// use Equal rather than == when comparing moves from different sources.
type Move struct {
	from, to  Square
	moved     Piece
	captured  Piece
	promotion bool
}

// NoMove is the zero Move. No generated move is ever equal to it.
var NoMove = Move{}

// NewMove builds a move from start to end, reading the moved and captured
// pieces from b.
func NewMove(from, to Square, b *Board) Move {
	moved := b.At(from)
	m := Move{
		from:     from,
		to:       to,
		moved:    moved,
		captured: b.At(to),
	}
	m.promotion = (moved == WhitePawn && to.Row == 0) || (moved == BlackPawn && to.Row == 7)
	return m
}

// From returns the origin square.
func (m Move) From() Square {
	return m.from
}

// To returns the destination square.
func (m Move) To() Square {
	return m.to
}

// Moved returns the piece that moves.
func (m Move) Moved() Piece {
	return m.moved
}

// Captured returns the piece on the destination square, or NoPiece.
func (m Move) Captured() Piece {
	return m.captured
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return !m.captured.IsEmpty()
}

// IsPromotion returns true if a pawn reaches the far back rank.
func (m Move) IsPromotion() bool {
	return m.promotion
}

// Equal reports whether m and o share start and end squares.
func (m Move) Equal(o Move) bool {
	return m.from == o.from && m.to == o.to
}

// Notation returns the file-rank pair notation, e.g. "e2e4".
func (m Move) Notation() string {
	return m.from.String() + m.to.String()
}

// String returns the same as Notation, or "0000" for NoMove.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.Notation()
}

// UCI returns the UCI form of the move: the notation plus "q" for promotions.
func (m Move) UCI() string {
	if m == NoMove {
		return "0000"
	}
	if m.promotion {
		return m.Notation() + "q"
	}
	return m.Notation()
}

// ParseMove builds a move from a UCI string ("e2e4", "e7e8q") against the
// current board. It does not check legality; match the result against
// LegalMoves with MatchLegal.
func (gs *GameState) ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
	}
	if from == to {
		return NoMove, fmt.Errorf("%w: %q: null move", ErrInvalidMove, s)
	}

	m := NewMove(from, to, &gs.board)
	if m.moved.IsEmpty() {
		return NoMove, fmt.Errorf("%w: no piece at %s", ErrInvalidMove, from)
	}

	// Only queen promotion exists; the suffix is optional.
	if len(s) == 5 {
		if s[4] != 'q' && s[4] != 'Q' {
			return NoMove, fmt.Errorf("%w: %q: unsupported promotion %q", ErrInvalidMove, s, s[4])
		}
		if !m.promotion {
			return NoMove, fmt.Errorf("%w: %q: not a promotion", ErrInvalidMove, s)
		}
	}

	return m, nil
}

// MatchLegal returns the entry of moves equal to m, if any.
func MatchLegal(moves []Move, m Move) (Move, bool) {
	for _, lm := range moves {
		if lm.Equal(m) {
			return lm, true
		}
	}
	return NoMove, false
}
