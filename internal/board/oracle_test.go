package board

import (
	"slices"
	"testing"

	"github.com/notnil/chess"
)

// oracleMoves lists the legal moves of fen according to notnil/chess, reduced
// to what this package generates: no castling or en passant (the FEN says "-"
// for both) and queen-only promotion.
func oracleMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("oracle rejected %q: %v", fen, err)
	}
	game := chess.NewGame(opt)

	var out []string
	for _, m := range game.ValidMoves() {
		if m.Promo() != chess.NoPieceType && m.Promo() != chess.Queen {
			continue
		}
		out = append(out, m.S1().String()+m.S2().String())
	}
	slices.Sort(out)
	return out
}

func ourMoves(gs *GameState) []string {
	var out []string
	for _, m := range gs.LegalMoves() {
		out = append(out, m.Notation())
	}
	slices.Sort(out)
	return out
}

// compareTree walks the legal move tree to depth and compares every node.
func compareTree(t *testing.T, gs *GameState, depth int) {
	fen := gs.FEN()
	ours, want := ourMoves(gs), oracleMoves(t, fen)
	if !slices.Equal(ours, want) {
		t.Fatalf("%s:\n got %v\nwant %v", fen, ours, want)
	}
	if depth == 1 {
		return
	}
	for _, m := range gs.LegalMoves() {
		gs.MakeMove(m)
		compareTree(t, gs, depth-1)
		gs.UndoMove()
	}
}

func TestLegalMovesMatchReference(t *testing.T) {
	for _, fen := range samplePositions {
		t.Run(fen, func(t *testing.T) {
			gs, err := ParseFEN(fen)
			if err != nil {
				t.Fatal(err)
			}
			compareTree(t, gs, 2)
		})
	}
}
