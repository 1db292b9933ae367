package board

// UnderAttack reports whether any pseudo-legal move of color by lands on sq.
// The side to move is switched for the generation and restored afterwards.
func (gs *GameState) UnderAttack(sq Square, by Color) bool {
	saved := gs.sideToMove
	gs.sideToMove = by
	defer func() { gs.sideToMove = saved }()

	for _, m := range gs.PseudoLegalMoves() {
		if m.to == sq {
			return true
		}
	}
	return false
}

// InCheck returns true if the side to move's king is attacked.
func (gs *GameState) InCheck() bool {
	us := gs.sideToMove
	return gs.UnderAttack(gs.kingSquare[us], us.Other())
}

// LegalMoves returns the pseudo-legal moves that do not leave the mover's king
// attacked, in generation order. It also refreshes the checkmate and
// stalemate flags: both are cleared when moves exist, otherwise exactly one
// is set according to InCheck.
//
// Each candidate is made, tested and undone, so the cost is quadratic in the
// number of moves.
func (gs *GameState) LegalMoves() []Move {
	candidates := gs.PseudoLegalMoves()
	legal := candidates[:0]

	for _, m := range candidates {
		mover := gs.sideToMove
		gs.MakeMove(m)
		attacked := gs.UnderAttack(gs.kingSquare[mover], mover.Other())
		gs.UndoMove()
		if !attacked {
			legal = append(legal, m)
		}
	}

	if len(legal) == 0 {
		inCheck := gs.InCheck()
		gs.checkmate = inCheck
		gs.stalemate = !inCheck
	} else {
		gs.checkmate = false
		gs.stalemate = false
	}

	return legal
}
