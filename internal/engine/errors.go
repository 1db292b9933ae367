package engine

import "errors"

var (
	// ErrNoLegalMoves is returned when a move is requested for a position
	// where the side to move has no legal moves.
	ErrNoLegalMoves = errors.New("no legal moves")

	ErrUnknownLevel = errors.New("unknown level")
)
