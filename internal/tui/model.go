// Package tui implements a terminal chess frontend with bubbletea. The same
// model is served locally and over SSH.
package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/hailam/chessai/internal/board"
	"github.com/hailam/chessai/internal/engine"
	"github.com/hailam/chessai/internal/storage"
)

// The computer always plays Black: the search picks the move with the
// lowest White-relative score.
const aiColor = board.Black

// Options configures a Model. Level is the starting level and is replaced
// by the saved one when Store is set.
type Options struct {
	Store    *storage.Storage
	Logger   *log.Logger
	Username string
	Level    engine.Level
}

// aiMoveMsg carries the result of a background search. id ties it to the
// search that produced it so results made stale by undo or reset are dropped.
type aiMoveMsg struct {
	id    int
	move  board.Move
	nodes uint64
	err   error
}

// Model is the bubbletea model of one game.
type Model struct {
	state *board.GameState
	legal []board.Move

	cursor   board.Square
	selected board.Square
	flipped  bool

	vsAI     bool
	level    engine.Level
	thinking bool
	searchID int

	started  time.Time
	// recorded is set once a finished game is stored. Undo keeps it, so a
	// game is counted at most once until reset.
	recorded bool

	store    *storage.Storage
	logger   *log.Logger
	username string
	welcome  bool
	message  string
}

// New creates a model at the starting position. With a store, the saved
// mode and level are restored.
func New(opts Options) Model {
	m := Model{
		state:    board.NewGameState(),
		cursor:   board.NewSquare(6, 4),
		selected: board.NoSquare,
		level:    opts.Level,
		started:  time.Now(),
		store:    opts.Store,
		logger:   opts.Logger,
		username: opts.Username,
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}

	if m.store != nil {
		if prefs, err := m.store.LoadPreferences(); err != nil {
			m.logger.Warn("loading preferences", "err", err)
		} else {
			m.level = prefs.Level
			m.vsAI = prefs.Mode == storage.ModeVsComputer
		}
		if first, err := m.store.IsFirstLaunch(); err == nil && first {
			m.welcome = true
			if err := m.store.MarkFirstLaunchComplete(); err != nil {
				m.logger.Warn("marking first launch", "err", err)
			}
		}
	}

	m.refresh()
	return m
}

// Init implements tea.Model. White moves first and the computer plays
// Black, so nothing starts here.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case aiMoveMsg:
		return m.handleAIMove(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.welcome = false

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up":
		m.moveCursor(-1, 0)
	case "down":
		m.moveCursor(1, 0)
	case "left":
		m.moveCursor(0, -1)
	case "right":
		m.moveCursor(0, 1)
	case "enter", " ":
		return m.handleSelect()
	case "esc":
		m.selected = board.NoSquare
	case "e":
		return m.startAI(engine.Easy)
	case "m":
		return m.startAI(engine.Medium)
	case "h":
		return m.startAI(engine.Hard)
	case "2":
		m.vsAI = false
		m.cancelSearch()
		m.savePreferences()
		m.message = "Two players"
	case "z":
		return m.undo()
	case "r":
		m.cancelSearch()
		m.state.Reset()
		m.selected = board.NoSquare
		m.started = time.Now()
		m.recorded = false
		m.message = "New game"
		m.refresh()
	case "f":
		m.flipped = !m.flipped
	}
	return m, nil
}

// moveCursor moves the cursor in screen directions, which are mirrored when
// the board is flipped.
func (m *Model) moveCursor(dr, dc int) {
	if m.flipped {
		dr, dc = -dr, -dc
	}
	next := m.cursor.Offset(dr, dc)
	if next.IsValid() {
		m.cursor = next
	}
}

func (m Model) humanToMove() bool {
	return !m.vsAI || m.state.SideToMove() != aiColor
}

func (m Model) gameOver() bool {
	return len(m.legal) == 0
}

// handleSelect implements two-step selection: a friendly piece first, then
// a destination. A destination that does not form a legal move is ignored.
func (m Model) handleSelect() (tea.Model, tea.Cmd) {
	if m.gameOver() || m.thinking || !m.humanToMove() {
		return m, nil
	}

	if m.selected == board.NoSquare || m.selected == m.cursor {
		if m.selected == m.cursor {
			m.selected = board.NoSquare
			return m, nil
		}
		if p := m.state.PieceAt(m.cursor); !p.IsEmpty() && p.Color() == m.state.SideToMove() {
			m.selected = m.cursor
		}
		return m, nil
	}

	// Re-selecting another friendly piece switches the selection.
	if p := m.state.PieceAt(m.cursor); !p.IsEmpty() && p.Color() == m.state.SideToMove() {
		m.selected = m.cursor
		return m, nil
	}

	proposed := board.NewMove(m.selected, m.cursor, boardPtr(m.state))
	move, ok := board.MatchLegal(m.legal, proposed)
	if !ok {
		return m, nil
	}

	m.play(move)
	cmd := m.maybeSearch()
	return m, cmd
}

func boardPtr(gs *board.GameState) *board.Board {
	b := gs.Board()
	return &b
}

func (m *Model) play(move board.Move) {
	m.state.MakeMove(move)
	m.selected = board.NoSquare
	m.message = ""
	m.logger.Debug("move", "move", move, "fen", m.state.FEN())
	m.refresh()
}

// refresh recomputes the legal moves and records a finished game.
func (m *Model) refresh() {
	m.legal = m.state.LegalMoves()
	if !m.gameOver() || m.recorded {
		return
	}
	m.recorded = true

	if !m.vsAI || m.store == nil {
		return
	}
	result, _ := storage.ResultFor(m.state, aiColor.Other())
	result.Level = m.level
	result.Duration = time.Since(m.started)
	if err := m.store.RecordGame(result); err != nil {
		m.logger.Error("recording game", "err", err)
		return
	}
	m.logger.Info("game recorded", "user", m.username, "won", result.Won, "draw", result.Draw, "level", m.level)
}

func (m Model) startAI(level engine.Level) (tea.Model, tea.Cmd) {
	m.vsAI = true
	m.level = level
	m.message = "Playing " + level.String() + " AI"
	m.savePreferences()
	if m.thinking {
		// Restart with the new level.
		m.cancelSearch()
	}
	cmd := m.maybeSearch()
	return m, cmd
}

func (m *Model) savePreferences() {
	if m.store == nil {
		return
	}
	err := m.store.UpdatePreferences(func(prefs *storage.UserPreferences) {
		prefs.Level = m.level
		prefs.Mode = storage.ModeTwoPlayer
		if m.vsAI {
			prefs.Mode = storage.ModeVsComputer
		}
		prefs.PlayerColor = aiColor.Other()
		if m.username != "" {
			prefs.Username = m.username
		}
	})
	if err != nil {
		m.logger.Warn("saving preferences", "err", err)
	}
}

// undo takes back one ply. Against the computer it keeps undoing until the
// human is to move, so the computer does not immediately replay.
func (m Model) undo() (tea.Model, tea.Cmd) {
	m.cancelSearch()
	m.selected = board.NoSquare
	if m.state.Ply() == 0 {
		return m, nil
	}

	m.state.UndoMove()
	if m.vsAI && m.state.SideToMove() == aiColor && m.state.Ply() > 0 {
		m.state.UndoMove()
	}
	m.message = ""
	m.refresh()
	cmd := m.maybeSearch()
	return m, cmd
}

func (m *Model) cancelSearch() {
	m.searchID++
	m.thinking = false
}

// maybeSearch starts a background search on a clone of the state when it is
// the computer's turn.
func (m *Model) maybeSearch() tea.Cmd {
	if !m.vsAI || m.thinking || m.gameOver() || m.state.SideToMove() != aiColor {
		return nil
	}
	m.thinking = true
	m.searchID++

	id, level, gs := m.searchID, m.level, m.state.Clone()
	return func() tea.Msg {
		eng := engine.NewEngine(level)
		var nodes uint64
		eng.OnInfo = func(info engine.SearchInfo) { nodes = info.Nodes }
		move, err := eng.BestMove(gs)
		return aiMoveMsg{id: id, move: move, nodes: nodes, err: err}
	}
}

func (m Model) handleAIMove(msg aiMoveMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.searchID {
		return m, nil
	}
	m.thinking = false

	if msg.err != nil {
		m.logger.Error("ai search", "err", msg.err)
		m.message = "AI error: " + msg.err.Error()
		return m, nil
	}

	move, ok := board.MatchLegal(m.legal, msg.move)
	if !ok {
		m.logger.Error("ai returned an illegal move", "move", msg.move, "fen", m.state.FEN())
		return m, nil
	}
	m.logger.Info("ai move", "move", move, "level", m.level, "nodes", msg.nodes)
	m.play(move)
	return m, nil
}
