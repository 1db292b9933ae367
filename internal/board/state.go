package board

import (
	"fmt"
	"strings"
)

// Board is the 8x8 grid, indexed [row][col].
type Board [8][8]Piece

// At returns the piece on sq, or NoPiece if sq is off the board.
func (b *Board) At(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b[sq.Row][sq.Col]
}

func (b *Board) set(sq Square, p Piece) {
	b[sq.Row][sq.Col] = p
}

// initialBoard is the standard starting arrangement, Black on row 0.
var initialBoard = Board{
	{BlackRook, BlackKnight, BlackBishop, BlackQueen, BlackKing, BlackBishop, BlackKnight, BlackRook},
	{BlackPawn, BlackPawn, BlackPawn, BlackPawn, BlackPawn, BlackPawn, BlackPawn, BlackPawn},
	{},
	{},
	{},
	{},
	{WhitePawn, WhitePawn, WhitePawn, WhitePawn, WhitePawn, WhitePawn, WhitePawn, WhitePawn},
	{WhiteRook, WhiteKnight, WhiteBishop, WhiteQueen, WhiteKing, WhiteBishop, WhiteKnight, WhiteRook},
}

// GameState is the single mutable game record: board, side to move, move log
// and the cached king squares. It is mutated only through MakeMove and
// UndoMove, which must be paired in strict LIFO order by any caller that
// explores moves (search, check detection). It is not safe for concurrent
// use; Clone it to search on another goroutine.
type GameState struct {
	board      Board
	sideToMove Color
	moveLog    []Move
	kingSquare [2]Square

	// Valid only immediately after LegalMoves.
	checkmate bool
	stalemate bool
}

// NewGameState creates the starting position.
func NewGameState() *GameState {
	gs := &GameState{}
	gs.Reset()
	return gs
}

// Reset restores the starting position and clears the move log.
func (gs *GameState) Reset() {
	*gs = GameState{
		board:      initialBoard,
		sideToMove: White,
		moveLog:    make([]Move, 0, 64),
		kingSquare: [2]Square{White: NewSquare(7, 4), Black: NewSquare(0, 4)},
	}
}

// Clone returns an independent deep copy.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.moveLog = append(make([]Move, 0, cap(gs.moveLog)), gs.moveLog...)
	return &c
}

// Board returns a copy of the board.
func (gs *GameState) Board() Board {
	return gs.board
}

// PieceAt returns the piece on sq.
func (gs *GameState) PieceAt(sq Square) Piece {
	return gs.board.At(sq)
}

// SideToMove returns the color to move.
func (gs *GameState) SideToMove() Color {
	return gs.sideToMove
}

// KingSquare returns the cached square of c's king.
func (gs *GameState) KingSquare(c Color) Square {
	return gs.kingSquare[c]
}

// MoveLog returns a copy of the moves played so far, oldest first.
func (gs *GameState) MoveLog() []Move {
	return append([]Move(nil), gs.moveLog...)
}

// Ply returns the number of moves in the log.
func (gs *GameState) Ply() int {
	return len(gs.moveLog)
}

// LastMove returns the most recent move, or NoMove.
func (gs *GameState) LastMove() Move {
	if len(gs.moveLog) == 0 {
		return NoMove
	}
	return gs.moveLog[len(gs.moveLog)-1]
}

// IsCheckmate reports the checkmate flag set by the last LegalMoves call.
func (gs *GameState) IsCheckmate() bool {
	return gs.checkmate
}

// IsStalemate reports the stalemate flag set by the last LegalMoves call.
func (gs *GameState) IsStalemate() bool {
	return gs.stalemate
}

// MakeMove applies m without any legality check and pushes it on the log.
// A promoting pawn becomes a queen of its color.
func (gs *GameState) MakeMove(m Move) {
	gs.board.set(m.from, NoPiece)
	gs.board.set(m.to, m.moved)
	gs.moveLog = append(gs.moveLog, m)
	gs.sideToMove = gs.sideToMove.Other()

	if m.moved.Type() == King {
		gs.kingSquare[m.moved.Color()] = m.to
	}

	if m.promotion {
		gs.board.set(m.to, NewPiece(Queen, m.moved.Color()))
	}
}

// UndoMove reverts the most recent MakeMove. It does nothing on an empty log.
func (gs *GameState) UndoMove() {
	n := len(gs.moveLog)
	if n == 0 {
		return
	}
	m := gs.moveLog[n-1]
	gs.moveLog = gs.moveLog[:n-1]

	gs.board.set(m.from, m.moved)
	gs.board.set(m.to, m.captured)
	gs.sideToMove = gs.sideToMove.Other()

	if m.moved.Type() == King {
		gs.kingSquare[m.moved.Color()] = m.from
	}
}

// String returns a visual representation of the position.
func (gs *GameState) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%c  ", '8'-row)
		for col := 0; col < 8; col++ {
			p := gs.board[row][col]
			if p.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", gs.sideToMove)
	fmt.Fprintf(&sb, "FEN: %s\n", gs.FEN())
	return sb.String()
}
