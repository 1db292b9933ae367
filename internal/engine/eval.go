// Package engine implements the chess AI: static evaluation, minimax search
// with alpha-beta pruning and a random mover.
package engine

import (
	"github.com/hailam/chessai/internal/board"
)

// Material values, in tenths of a pawn.
const (
	PawnValue   = 10
	KnightValue = 30
	BishopValue = 30
	RookValue   = 50
	QueenValue  = 90
	KingValue   = 900
)

// CheckmateScore is the evaluation of a lost position for the side to move,
// and the initial extreme of every minimax node.
const CheckmateScore = 9999

var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}

// Difficulty selects the evaluation function used at the search horizon.
type Difficulty int

const (
	Simple  Difficulty = 1 // material only
	Complex Difficulty = 2 // material and piece-square tables
)

// Piece-square tables, indexed [row][col]. White pieces read table[row][col],
// Black pieces read table[7-row][col].
var pawnTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var knightTable = [8][8]int{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 15, 20, 20, 15, 0, -30},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
}

var bishopTable = [8][8]int{
	{-20, -10, -10, -10, -10, -10, -10, -20},
	{-10, 5, 0, 0, 0, 0, 5, -10},
	{-10, 10, 10, 10, 10, 10, 10, -10},
	{-10, 0, 10, 10, 10, 10, 0, -10},
	{-10, 5, 5, 10, 10, 5, 5, -10},
	{-10, 0, 5, 10, 10, 5, 0, -10},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-20, -10, -10, -10, -10, -10, -10, -20},
}

var rookTable = [8][8]int{
	{0, 0, 0, 5, 5, 0, 0, 0},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{5, 10, 10, 10, 10, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var queenTable = [8][8]int{
	{-20, -10, -10, -5, -5, -10, -10, -20},
	{-10, 0, 5, 0, 0, 0, 0, -10},
	{-10, 5, 5, 5, 5, 5, 0, -10},
	{0, 0, 5, 5, 5, 5, 0, -5},
	{-5, 0, 5, 5, 5, 5, 0, -5},
	{-10, 0, 5, 5, 5, 5, 0, -10},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-20, -10, -10, -5, -5, -10, -10, -20},
}

var kingTable = [8][8]int{
	{20, 30, 10, 0, 0, 10, 30, 20},
	{20, 20, 0, 0, 0, 0, 20, 20},
	{-10, -20, -20, -20, -20, -20, -20, -10},
	{-20, -30, -30, -40, -40, -30, -30, -20},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
}

var pieceSquareTables = [6]*[8][8]int{
	&pawnTable, &knightTable, &bishopTable, &rookTable, &queenTable, &kingTable,
}

// terminalScore reports the score of a position whose checkmate or stalemate
// flag is set. The flags are those left by the last LegalMoves call.
func terminalScore(gs *board.GameState) (int, bool) {
	switch {
	case gs.IsCheckmate():
		if gs.SideToMove() == board.White {
			return -CheckmateScore, true
		}
		return CheckmateScore, true
	case gs.IsStalemate():
		return 0, true
	}
	return 0, false
}

// EvaluateSimple returns the material balance, White minus Black. It is not
// relative to the side to move.
func EvaluateSimple(gs *board.GameState) int {
	if score, ok := terminalScore(gs); ok {
		return score
	}
	b := gs.Board()
	return materialScore(&b)
}

// EvaluateComplex returns material plus piece-square terms, negated when
// Black is to move.
func EvaluateComplex(gs *board.GameState) int {
	if score, ok := terminalScore(gs); ok {
		return score
	}
	b := gs.Board()
	score := materialScore(&b) + positionScore(&b)
	if gs.SideToMove() == board.Black {
		return -score
	}
	return score
}

// Evaluate dispatches on difficulty. Anything other than Complex uses the
// material-only evaluator.
func Evaluate(gs *board.GameState, d Difficulty) int {
	if d == Complex {
		return EvaluateComplex(gs)
	}
	return EvaluateSimple(gs)
}

func materialScore(b *board.Board) int {
	score := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p.IsEmpty() {
				continue
			}
			if p.Color() == board.White {
				score += pieceValues[p.Type()]
			} else {
				score -= pieceValues[p.Type()]
			}
		}
	}
	return score
}

func positionScore(b *board.Board) int {
	score := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p.IsEmpty() {
				continue
			}
			table := pieceSquareTables[p.Type()]
			if p.Color() == board.White {
				score += table[row][col]
			} else {
				score -= table[7-row][col]
			}
		}
	}
	return score
}
