package board

import (
	"slices"
	"testing"
)

// movesFrom returns the notations of the pseudo-legal moves starting on from,
// in generation order.
func movesFrom(gs *GameState, from string) []string {
	sq, _ := ParseSquare(from)
	var out []string
	for _, m := range gs.PseudoLegalMoves() {
		if m.From() == sq {
			out = append(out, m.Notation())
		}
	}
	return out
}

func TestPieceMoveCounts(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from string
		want int
	}{
		{"rook open board", "k7/8/8/8/3R4/8/8/7K w", "d4", 14},
		{"bishop open board", "k7/8/8/8/3B4/8/8/7K w", "d4", 13},
		{"queen open board", "k7/8/8/8/3Q4/8/8/7K w", "d4", 27},
		{"knight center", "k7/8/8/8/3N4/8/8/7K w", "d4", 8},
		{"knight corner", "k7/8/8/8/8/8/8/N6K w", "a1", 2},
		{"king center", "k7/8/8/8/3K4/8/8/8 w", "d4", 8},
		{"king corner", "k7/8/8/8/8/8/8/7K w", "h1", 3},
		{"rook blocked by own pieces", "k7/8/8/8/8/8/P7/RN5K w", "a1", 0},
		{"rook stops on capture", "k7/8/8/8/8/p7/8/R6K w", "a1", 8},
		{"pawn start", "k7/8/8/8/8/8/4P3/7K w", "e2", 2},
		{"pawn double push blocked", "k7/8/8/8/4p3/8/4P3/7K w", "e2", 1},
		{"pawn push blocked", "k7/8/8/8/8/4p3/4P3/7K w", "e2", 0},
		{"black pawn start", "k7/3p4/8/8/8/8/8/7K b", "d7", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			got := movesFrom(gs, tc.from)
			if len(got) != tc.want {
				t.Errorf("got %d moves %v, want %d", len(got), got, tc.want)
			}
		})
	}
}

func TestGenerationOrder(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from string
		want []string
	}{
		{
			"pawn push then captures left to right",
			"k7/8/8/3p1p2/4P3/8/8/7K w", "e4",
			[]string{"e4e5", "e4d5", "e4f5"},
		},
		{
			"black pawn moves down the board",
			"k7/4p3/3P1P2/8/8/8/8/7K b", "e7",
			[]string{"e7e6", "e7e5", "e7d6", "e7f6"},
		},
		{
			"knight offsets",
			"k7/8/8/8/3N4/8/8/7K w", "d4",
			[]string{"d4c6", "d4e6", "d4c2", "d4e2", "d4b5", "d4b3", "d4f5", "d4f3"},
		},
		{
			"king offsets",
			"k7/8/8/8/3K4/8/8/8 w", "d4",
			[]string{"d4c5", "d4d5", "d4e5", "d4e4", "d4c4", "d4c3", "d4d3", "d4e3"},
		},
		{
			"rook rays up, down, left, right",
			"k7/8/8/3p4/2pRp3/3p4/8/7K w", "d4",
			[]string{"d4d5", "d4d3", "d4c4", "d4e4"},
		},
		{
			"queen rook rays before bishop rays",
			"k7/8/8/2ppp3/2pQp3/2ppp3/8/7K w", "d4",
			[]string{"d4d5", "d4d3", "d4c4", "d4e4", "d4c5", "d4e5", "d4c3", "d4e3"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			if got := movesFrom(gs, tc.from); !slices.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSquaresScannedFromRowZero(t *testing.T) {
	gs := NewGameState()
	moves := gs.LegalMoves()
	// Row 6 pawns come before the row 7 knights.
	if moves[0].Notation() != "a2a3" || moves[1].Notation() != "a2a4" {
		t.Errorf("first moves = %s %s, want a2a3 a2a4", moves[0], moves[1])
	}
	if last := moves[len(moves)-1].Notation(); last != "g1h3" {
		t.Errorf("last move = %s, want g1h3", last)
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	gs, err := ParseFEN("k7/8/8/8/r3N2K/8/8/8 w")
	if err != nil {
		t.Fatal(err)
	}
	e4, _ := ParseSquare("e4")
	for _, m := range gs.LegalMoves() {
		if m.From() == e4 {
			t.Errorf("pinned knight moved: %s", m)
		}
	}
	if n := len(movesFrom(gs, "e4")); n != 8 {
		t.Errorf("expected 8 pseudo-legal knight moves, got %d", n)
	}
}

func TestLegalMovesNeverLeaveKingAttacked(t *testing.T) {
	for _, fen := range samplePositions {
		gs, err := ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		for _, m := range gs.LegalMoves() {
			mover := gs.SideToMove()
			gs.MakeMove(m)
			if gs.UnderAttack(gs.KingSquare(mover), mover.Other()) {
				t.Errorf("%s in %s leaves the king attacked", m, fen)
			}
			gs.UndoMove()
		}
	}
}

func TestUnderAttackRestoresSideToMove(t *testing.T) {
	gs := NewGameState()
	e3, _ := ParseSquare("e3")
	if !gs.UnderAttack(e3, White) {
		t.Error("e3 is covered by white pawns")
	}
	if gs.UnderAttack(e3, Black) {
		t.Error("e3 is not reachable by black")
	}
	if gs.SideToMove() != White {
		t.Error("UnderAttack changed the side to move")
	}
}
