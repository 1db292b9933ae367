package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hailam/chessai/internal/board"
	"github.com/hailam/chessai/internal/engine"
	"github.com/hailam/chessai/internal/storage"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys to m and returns the model with the last command.
func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Model)
	}
	return m, cmd
}

func withPosition(t *testing.T, m Model, fen string) Model {
	t.Helper()
	gs, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	m.state = gs
	m.refresh()
	return m
}

func TestSelectAndMove(t *testing.T) {
	m := New(Options{})

	// Cursor starts on e2.
	m, cmd := press(t, m, "enter", "up", "up", "enter")
	if cmd != nil {
		t.Error("two-player mode should not start a search")
	}
	if got := m.state.LastMove().Notation(); got != "e2e4" {
		t.Fatalf("last move = %q, want e2e4", got)
	}
	if m.selected != board.NoSquare {
		t.Error("selection should clear after a move")
	}
	if !strings.Contains(m.View(), "Last move: e2e4") {
		t.Error("view should show the last move")
	}
}

func TestIllegalDestinationIgnored(t *testing.T) {
	m := New(Options{})

	m, _ = press(t, m, "enter", "up", "up", "up", "enter")
	if m.state.Ply() != 0 {
		t.Fatal("e2e5 should not be played")
	}
	if m.selected != board.NewSquare(6, 4) {
		t.Errorf("selection should stay on e2, got %s", m.selected)
	}

	m, _ = press(t, m, "esc")
	if m.selected != board.NoSquare {
		t.Error("esc should deselect")
	}
}

func TestOnlySideToMoveCanSelect(t *testing.T) {
	m := New(Options{})
	m.cursor = board.NewSquare(1, 4) // e7

	m, _ = press(t, m, "enter")
	if m.selected != board.NoSquare {
		t.Error("black pieces cannot be selected on white's turn")
	}
}

func TestSelectSameSquareDeselects(t *testing.T) {
	m := New(Options{})
	m, _ = press(t, m, "enter", "enter")
	if m.selected != board.NoSquare {
		t.Error("selecting the same square twice should deselect")
	}
}

func TestFlippedCursor(t *testing.T) {
	m := New(Options{})
	m, _ = press(t, m, "f", "up", "left")
	if want := board.NewSquare(7, 5); m.cursor != want {
		t.Errorf("cursor = %s, want %s", m.cursor, want)
	}
}

func TestAIReplies(t *testing.T) {
	m := New(Options{})

	m, _ = press(t, m, "m", "enter", "up", "up")
	m, cmd := press(t, m, "enter")
	if cmd == nil {
		t.Fatal("expected a search command after the human move")
	}
	if !m.thinking {
		t.Error("model should be thinking")
	}

	// Input is ignored while the computer is to move.
	m.cursor = board.NewSquare(1, 4)
	m, _ = press(t, m, "enter")
	if m.selected != board.NoSquare {
		t.Error("selection must be blocked during the computer's turn")
	}

	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.state.Ply() != 2 || m.state.SideToMove() != board.White {
		t.Fatalf("expected the computer to reply, ply = %d", m.state.Ply())
	}
	if m.thinking {
		t.Error("thinking should clear after the reply")
	}
}

func TestStaleSearchDropped(t *testing.T) {
	m := New(Options{})
	m, _ = press(t, m, "e", "enter", "up", "up")
	m, cmd := press(t, m, "enter")
	if cmd == nil {
		t.Fatal("expected a search command")
	}

	m, _ = press(t, m, "r")
	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.state.Ply() != 0 {
		t.Errorf("a search result from before the reset must be dropped, ply = %d", m.state.Ply())
	}
}

func TestUndoAgainstAI(t *testing.T) {
	m := New(Options{})
	m, _ = press(t, m, "h", "enter", "up", "up")
	m, cmd := press(t, m, "enter")
	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.state.Ply() != 2 {
		t.Fatalf("ply = %d, want 2", m.state.Ply())
	}

	m, cmd = press(t, m, "z")
	if m.state.Ply() != 0 {
		t.Errorf("undo should return to the human's turn, ply = %d", m.state.Ply())
	}
	if cmd != nil {
		t.Error("no search should start on the human's turn")
	}
}

func TestUndoTwoPlayers(t *testing.T) {
	m := New(Options{})
	m, _ = press(t, m, "enter", "up", "up", "enter", "z")
	if m.state.Ply() != 0 {
		t.Errorf("ply = %d, want 0", m.state.Ply())
	}
	m, _ = press(t, m, "z")
	if m.state.Ply() != 0 {
		t.Error("undo at the start is a no-op")
	}
}

func TestSwitchToAIOnBlackTurnStartsSearch(t *testing.T) {
	m := New(Options{})
	m, _ = press(t, m, "enter", "up", "up", "enter")

	m, cmd := press(t, m, "e")
	if cmd == nil {
		t.Fatal("choosing a level on black's turn should start a search")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.state.Ply() != 2 {
		t.Errorf("ply = %d, want 2", m.state.Ply())
	}

	m, _ = press(t, m, "2")
	if m.vsAI {
		t.Error("2 should return to two-player mode")
	}
}

func TestResultBanners(t *testing.T) {
	tests := []struct {
		fen  string
		want string
	}{
		{"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w", "CHECKMATE - BLACK WINS"},
		{"R6k/6pp/8/8/8/8/8/K7 b", "CHECKMATE - WHITE WINS"},
		{"k7/8/1Q6/8/8/8/8/7K b", "STALEMATE - DRAW"},
		{board.StartFEN, ""},
	}
	for _, tc := range tests {
		m := withPosition(t, New(Options{}), tc.fen)
		if got := m.Result(); got != tc.want {
			t.Errorf("%s: Result() = %q, want %q", tc.fen, got, tc.want)
		}
		if tc.want != "" && !strings.Contains(m.View(), tc.want) {
			t.Errorf("%s: view is missing the banner", tc.fen)
		}
	}
}

func TestFinishedGameIsRecorded(t *testing.T) {
	store, err := storage.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := New(Options{Store: store, Username: "tester"})
	if !m.welcome {
		t.Error("first launch should show the welcome line")
	}
	m, _ = press(t, m, "m")
	m = withPosition(t, m, "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w")

	// Rd1-d8 mates.
	m.cursor = board.NewSquare(7, 3)
	m, cmd := press(t, m, "enter", "up", "up", "up", "up", "up", "up", "up", "enter")
	if cmd != nil {
		t.Error("no search after mate")
	}
	if m.Result() != "CHECKMATE - WHITE WINS" {
		t.Fatalf("expected mate, got %q", m.Result())
	}

	stats, err := store.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 || stats.Wins != 1 || stats.WinsByLevel["medium"] != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	prefs, err := store.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if prefs.Mode != storage.ModeVsComputer || prefs.Level != engine.Medium || prefs.Username != "tester" {
		t.Errorf("unexpected preferences: %+v", prefs)
	}

	// A new model restores the saved mode without the welcome line.
	m = New(Options{Store: store})
	if !m.vsAI || m.level != engine.Medium || m.welcome {
		t.Errorf("restored vsAI=%v level=%s welcome=%v", m.vsAI, m.level, m.welcome)
	}
}

func TestUndoneGameIsRecordedOnce(t *testing.T) {
	store, err := storage.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := New(Options{Store: store})
	m, _ = press(t, m, "m")
	m = withPosition(t, m, "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w")

	mate := func(m Model) Model {
		m.cursor = board.NewSquare(7, 3)
		m, _ = press(t, m, "enter", "up", "up", "up", "up", "up", "up", "up", "enter")
		if m.Result() != "CHECKMATE - WHITE WINS" {
			t.Fatalf("expected mate, got %q", m.Result())
		}
		return m
	}

	m = mate(m)
	m, _ = press(t, m, "z")
	if m.state.Ply() != 0 {
		t.Fatalf("ply after undo = %d", m.state.Ply())
	}
	m = mate(m)

	stats, err := store.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 {
		t.Errorf("games played = %d, want 1", stats.GamesPlayed)
	}
	if !m.recorded {
		t.Error("game should stay marked as recorded")
	}

	m, _ = press(t, m, "r")
	if m.recorded {
		t.Error("reset should start a new game to record")
	}
}
