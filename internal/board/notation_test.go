package board

import (
	"errors"
	"testing"
)

func TestSquareNotation(t *testing.T) {
	tests := []struct {
		sq   Square
		want string
	}{
		{NewSquare(0, 0), "a8"},
		{NewSquare(7, 0), "a1"},
		{NewSquare(7, 7), "h1"},
		{NewSquare(0, 7), "h8"},
		{NewSquare(4, 4), "e4"},
		{NoSquare, "-"},
	}

	for _, tc := range tests {
		if got := tc.sq.String(); got != tc.want {
			t.Errorf("%v.String() = %q, want %q", tc.sq, got, tc.want)
		}
		if !tc.sq.IsValid() {
			continue
		}
		back, err := ParseSquare(tc.want)
		if err != nil || back != tc.sq {
			t.Errorf("ParseSquare(%q) = %v, %v", tc.want, back, err)
		}
	}
}

func TestParseSquareInvalid(t *testing.T) {
	for _, s := range []string{"", "e", "e9", "i1", "a0", "e44", "E4"} {
		if _, err := ParseSquare(s); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q): expected ErrInvalidSquare, got %v", s, err)
		}
	}
}

func TestMoveNotation(t *testing.T) {
	gs := NewGameState()
	m, err := gs.ParseMove("g1f3")
	if err != nil {
		t.Fatal(err)
	}
	if m.Notation() != "g1f3" || m.UCI() != "g1f3" {
		t.Errorf("got %s/%s", m.Notation(), m.UCI())
	}
	if m.Moved() != WhiteKnight || m.IsCapture() {
		t.Errorf("unexpected move contents: %s captures %s", m.Moved().Name(), m.Captured().Name())
	}
	if NoMove.String() != "0000" || NoMove.UCI() != "0000" {
		t.Error("NoMove should print as 0000")
	}
}

func TestMoveEqualityIgnoresPieces(t *testing.T) {
	gs := NewGameState()
	a := NewMove(NewSquare(6, 4), NewSquare(4, 4), &gs.board)
	var empty Board
	b := NewMove(NewSquare(6, 4), NewSquare(4, 4), &empty)
	if a == b {
		t.Fatal("moves built from different boards should differ structurally")
	}
	if !a.Equal(b) {
		t.Error("moves with the same squares should be equal")
	}
	if a.Equal(NoMove) {
		t.Error("no generated move equals NoMove")
	}
}

func TestParsePromotion(t *testing.T) {
	gs, err := ParseFEN("8/4P3/8/8/k7/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range []string{"e7e8", "e7e8q", "e7e8Q"} {
		m, err := gs.ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if !m.IsPromotion() || m.UCI() != "e7e8q" {
			t.Errorf("ParseMove(%q) = %s, want promotion e7e8q", s, m.UCI())
		}
		if _, ok := MatchLegal(gs.LegalMoves(), m); !ok {
			t.Errorf("%s should be legal", s)
		}
	}
}

func TestParseMoveInvalid(t *testing.T) {
	gs, err := ParseFEN("8/4P3/8/8/k7/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   string
	}{
		{"too short", "e7e"},
		{"too long", "e7e8qq"},
		{"bad square", "e7e9"},
		{"null move", "e7e7"},
		{"empty origin", "d2d4"},
		{"under promotion", "e7e8n"},
		{"suffix without promotion", "h1g1q"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := gs.ParseMove(tc.in); !errors.Is(err, ErrInvalidMove) {
				t.Errorf("ParseMove(%q): expected ErrInvalidMove, got %v", tc.in, err)
			}
		})
	}
}

func TestMatchLegalRejectsIllegal(t *testing.T) {
	gs := NewGameState()
	m, err := gs.ParseMove("e2e5")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := MatchLegal(gs.LegalMoves(), m); ok {
		t.Error("e2e5 should not be legal")
	}
}
