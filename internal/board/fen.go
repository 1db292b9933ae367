package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// ParseFEN sets up a GameState from a FEN string. Only piece placement and
// side to move are used; castling and en passant fields are accepted but
// ignored, and the move log starts empty.
func ParseFEN(fen string) (*GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 fields, got %d", ErrInvalidFEN, len(parts))
	}

	gs := &GameState{
		moveLog:    make([]Move, 0, 64),
		kingSquare: [2]Square{NoSquare, NoSquare},
	}

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(gs, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		gs.sideToMove = White
	case "b":
		gs.sideToMove = Black
	default:
		return nil, fmt.Errorf("%w: invalid side to move: %s", ErrInvalidFEN, parts[1])
	}

	// Half-move clock and full-move number are checked for shape only.
	for _, f := range parts[min(len(parts), 4):] {
		if _, err := strconv.Atoi(f); err != nil {
			return nil, fmt.Errorf("%w: invalid move counter: %s", ErrInvalidFEN, f)
		}
	}

	if err := gs.validate(); err != nil {
		return nil, err
	}

	return gs, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
// FEN lists rank 8 first, which is row 0.
func parsePiecePlacement(gs *GameState, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(rows))
	}

	kings := [2]int{}
	for row, rowStr := range rows {
		col := 0

		for _, c := range rowStr {
			if col > 7 {
				return fmt.Errorf("%w: too many squares in rank %c", ErrInvalidFEN, '8'-row)
			}

			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}

			if c > unicode.MaxASCII {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, c)
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, c)
			}
			sq := NewSquare(row, col)
			gs.board.set(sq, piece)
			if piece.Type() == King {
				gs.kingSquare[piece.Color()] = sq
				kings[piece.Color()]++
			}
			col++
		}

		if col != 8 {
			return fmt.Errorf("%w: invalid number of squares in rank %c: got %d", ErrInvalidFEN, '8'-row, col)
		}
	}

	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("%w: each side must have exactly one king", ErrInvalidFEN)
	}
	return nil
}

// validate rejects positions the move generator cannot handle.
func (gs *GameState) validate() error {
	for col := 0; col < 8; col++ {
		for _, row := range [2]int{0, 7} {
			if gs.board[row][col].Type() == Pawn {
				return fmt.Errorf("%w: pawns cannot be on rank 1 or 8", ErrInvalidFEN)
			}
		}
	}
	return nil
}

// FEN returns the FEN string of the current position. Castling and en passant
// are always "-"; the full-move number is derived from the move log.
func (gs *GameState) FEN() string {
	var sb strings.Builder

	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := gs.board[row][col]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	if gs.sideToMove == White {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}

	fmt.Fprintf(&sb, " - - 0 %d", 1+len(gs.moveLog)/2)
	return sb.String()
}
