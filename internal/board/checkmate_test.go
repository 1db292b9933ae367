package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: White Ra8 + Ka1, Black Kh8 boxed in by g7/h7.
	gs, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Checkmate position:")
	t.Log(gs)

	if !gs.InCheck() {
		t.Fatal("Expected black to be in check")
	}

	moves := gs.LegalMoves()
	if len(moves) != 0 {
		t.Errorf("Expected no legal moves, got %d: %v", len(moves), moves)
	}
	if !gs.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if gs.IsStalemate() {
		t.Error("Checkmate and stalemate must be exclusive")
	}
}

func TestNotCheckmate(t *testing.T) {
	// The checked king can capture the unprotected rook or step aside.
	gs, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	// Kxg8 or Kh7; g7 stays covered along the g-file.
	moves := gs.LegalMoves()
	if len(moves) != 2 {
		t.Fatalf("Expected Kxg8 and Kh7, got %v", moves)
	}
	if got := moves[0].Notation(); got != "h8g8" {
		t.Errorf("Expected h8g8 first, got %s", got)
	}
	if !moves[0].IsCapture() || moves[0].Captured() != WhiteRook {
		t.Errorf("Expected capture of the white rook, got %v", moves[0].Captured())
	}
	if got := moves[1].Notation(); got != "h8h7" {
		t.Errorf("Expected h8h7 second, got %s", got)
	}
	if gs.IsCheckmate() || gs.IsStalemate() {
		t.Error("Flags must be clear when legal moves exist")
	}
}

func TestStalemate(t *testing.T) {
	// Black king on a8, White queen on b6 covers every flight square, no check.
	gs, err := ParseFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if gs.InCheck() {
		t.Fatal("Black should not be in check")
	}
	if moves := gs.LegalMoves(); len(moves) != 0 {
		t.Fatalf("Expected no legal moves, got %v", moves)
	}
	if !gs.IsStalemate() {
		t.Error("Expected stalemate")
	}
	if gs.IsCheckmate() {
		t.Error("Stalemate must not report checkmate")
	}
}

func TestFlagsClearAfterUndo(t *testing.T) {
	// Fool's mate.
	gs := NewGameState()
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		playUCI(t, gs, s)
	}

	gs.LegalMoves()
	if !gs.IsCheckmate() {
		t.Fatal("Expected fool's mate")
	}

	gs.UndoMove()
	if !gs.IsCheckmate() {
		t.Error("Flags are only refreshed by LegalMoves")
	}
	if len(gs.LegalMoves()) == 0 {
		t.Fatal("Black has moves after undo")
	}
	if gs.IsCheckmate() || gs.IsStalemate() {
		t.Error("Re-enumeration should clear the flags")
	}
}

// playUCI parses s, checks it is legal and applies it.
func playUCI(t *testing.T, gs *GameState, s string) {
	t.Helper()
	m, err := gs.ParseMove(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	legal, ok := MatchLegal(gs.LegalMoves(), m)
	if !ok {
		t.Fatalf("%s is not legal in %s", s, gs.FEN())
	}
	gs.MakeMove(legal)
}
