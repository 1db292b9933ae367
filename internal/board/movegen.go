package board

type direction struct {
	dr, dc int
}

// Direction order is fixed; it determines move generation order.
var (
	rookDirections   = [4]direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirections = [4]direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	knightOffsets    = [8]direction{{-2, -1}, {-2, 1}, {2, -1}, {2, 1}, {-1, -2}, {1, -2}, {-1, 2}, {1, 2}}
	kingOffsets      = [8]direction{{-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}}
)

// PseudoLegalMoves generates every move of the side to move that obeys piece
// movement and occupancy, without checking whether the mover's king is left
// attacked. Squares are scanned row by row from row 0.
func (gs *GameState) PseudoLegalMoves() []Move {
	moves := make([]Move, 0, 64)
	us := gs.sideToMove

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := gs.board[row][col]
			if p.IsEmpty() || p.Color() != us {
				continue
			}
			from := NewSquare(row, col)
			switch p.Type() {
			case Pawn:
				moves = gs.genPawnMoves(from, us, moves)
			case Knight:
				moves = gs.genStepMoves(from, us, knightOffsets[:], moves)
			case Bishop:
				moves = gs.genSlidingMoves(from, us, bishopDirections[:], moves)
			case Rook:
				moves = gs.genSlidingMoves(from, us, rookDirections[:], moves)
			case Queen:
				moves = gs.genSlidingMoves(from, us, rookDirections[:], moves)
				moves = gs.genSlidingMoves(from, us, bishopDirections[:], moves)
			case King:
				moves = gs.genStepMoves(from, us, kingOffsets[:], moves)
			}
		}
	}

	return moves
}

// genPawnMoves adds pushes, the double push from the starting row and
// diagonal captures onto enemy pieces.
func (gs *GameState) genPawnMoves(from Square, us Color, moves []Move) []Move {
	forward, startRow := -1, 6
	if us == Black {
		forward, startRow = 1, 1
	}

	one := from.Offset(forward, 0)
	if !one.IsValid() {
		return moves
	}

	if gs.board.At(one).IsEmpty() {
		moves = append(moves, NewMove(from, one, &gs.board))
		two := one.Offset(forward, 0)
		if from.Row == startRow && gs.board.At(two).IsEmpty() {
			moves = append(moves, NewMove(from, two, &gs.board))
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to := from.Offset(forward, dc)
		if !to.IsValid() {
			continue
		}
		target := gs.board.At(to)
		if !target.IsEmpty() && target.Color() != us {
			moves = append(moves, NewMove(from, to, &gs.board))
		}
	}

	return moves
}

// genStepMoves adds single-step moves (knight, king) onto empty or enemy squares.
func (gs *GameState) genStepMoves(from Square, us Color, offsets []direction, moves []Move) []Move {
	for _, d := range offsets {
		to := from.Offset(d.dr, d.dc)
		if !to.IsValid() {
			continue
		}
		target := gs.board.At(to)
		if target.IsEmpty() || target.Color() != us {
			moves = append(moves, NewMove(from, to, &gs.board))
		}
	}
	return moves
}

// genSlidingMoves casts rays up to 7 steps. A ray stops before a friendly
// piece and on (capturing) the first enemy piece.
func (gs *GameState) genSlidingMoves(from Square, us Color, dirs []direction, moves []Move) []Move {
	for _, d := range dirs {
		for i := 1; i < 8; i++ {
			to := from.Offset(d.dr*i, d.dc*i)
			if !to.IsValid() {
				break
			}
			target := gs.board.At(to)
			if target.IsEmpty() {
				moves = append(moves, NewMove(from, to, &gs.board))
				continue
			}
			if target.Color() != us {
				moves = append(moves, NewMove(from, to, &gs.board))
			}
			break
		}
	}
	return moves
}
