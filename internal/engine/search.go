package engine

import (
	"math/rand/v2"

	"github.com/hailam/chessai/internal/board"
)

// Searcher runs minimax searches and counts the nodes it visits.
// A Searcher is not safe for concurrent use.
type Searcher struct {
	nodes uint64
}

// NewSearcher creates a new searcher.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Reset clears the node counter.
func (s *Searcher) Reset() {
	s.nodes = 0
}

// Nodes returns the number of nodes visited since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Minimax returns the minimax value of gs searched to depth, pruning with
// the (alpha, beta) window. Maximizing nodes start from -CheckmateScore and
// minimizing nodes from +CheckmateScore, so a node without legal moves scores
// as a loss for the side it is searching for.
//
// gs is explored with MakeMove/UndoMove and is left as it was found.
func (s *Searcher) Minimax(gs *board.GameState, depth, alpha, beta int, maximizing bool, d Difficulty) int {
	s.nodes++

	if depth == 0 {
		return Evaluate(gs, d)
	}

	moves := gs.LegalMoves()

	if maximizing {
		best := -CheckmateScore
		for _, m := range moves {
			gs.MakeMove(m)
			best = max(best, s.Minimax(gs, depth-1, alpha, beta, false, d))
			gs.UndoMove()
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := CheckmateScore
	for _, m := range moves {
		gs.MakeMove(m)
		best = min(best, s.Minimax(gs, depth-1, alpha, beta, true, d))
		gs.UndoMove()
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}

// SmartMove scores every legal move of gs with a full-window Minimax to depth
// (the reply is searched as a maximizing node) and returns the move with the
// lowest score together with that score. Ties go to the move generated first.
func (s *Searcher) SmartMove(gs *board.GameState, depth int, d Difficulty) (board.Move, int, error) {
	moves := gs.LegalMoves()
	if len(moves) == 0 {
		return board.NoMove, 0, ErrNoLegalMoves
	}

	bestMove := moves[0]
	bestScore := CheckmateScore
	for _, m := range moves {
		gs.MakeMove(m)
		score := s.Minimax(gs, depth, -CheckmateScore, CheckmateScore, true, d)
		gs.UndoMove()
		if score < bestScore {
			bestScore = score
			bestMove = m
		}
	}
	return bestMove, bestScore, nil
}

// Minimax is Searcher.Minimax without node counting.
func Minimax(gs *board.GameState, depth, alpha, beta int, maximizing bool, d Difficulty) int {
	return NewSearcher().Minimax(gs, depth, alpha, beta, maximizing, d)
}

// SmartMove is Searcher.SmartMove without node counting.
func SmartMove(gs *board.GameState, depth int, d Difficulty) (board.Move, error) {
	m, _, err := NewSearcher().SmartMove(gs, depth, d)
	return m, err
}

// RandomMove returns a uniformly chosen entry of moves.
func RandomMove(moves []board.Move) (board.Move, error) {
	return randomMove(nil, moves)
}

// randomMove picks from moves with rng, or the global source if rng is nil.
func randomMove(rng *rand.Rand, moves []board.Move) (board.Move, error) {
	if len(moves) == 0 {
		return board.NoMove, ErrNoLegalMoves
	}
	if rng == nil {
		return moves[rand.IntN(len(moves))], nil
	}
	return moves[rng.IntN(len(moves))], nil
}
