package ui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessai/internal/board"
	"github.com/hailam/chessai/internal/engine"
	"github.com/hailam/chessai/internal/storage"
)

// UI Constants
const (
	BoardSize  = 512
	SquareSize = BoardSize / 8
)

// The computer plays Black.
const aiColor = board.Black

// Options configures a Game. Level is overridden by saved preferences when
// Store is set.
type Options struct {
	Store  *storage.Storage
	Logger *log.Logger
	Level  engine.Level
}

// aiResult is sent by the search goroutine. id is compared against the
// current search so results made stale by undo or reset are dropped.
type aiResult struct {
	id   int
	move board.Move
	err  error
}

// Game implements ebiten.Game.
type Game struct {
	state *board.GameState
	legal []board.Move

	// Click state: selected is the last clicked square, clicks holds up to
	// two squares forming a move.
	selected board.Square
	clicks   []board.Square

	vsAI       bool
	level      engine.Level
	aiThinking bool
	aiMove     chan aiResult
	searchID   int

	started  time.Time
	// recorded is set once a finished game is stored. Undo keeps it, so a
	// game is counted at most once until reset.
	recorded bool

	store    *storage.Storage
	logger   *log.Logger
	renderer *Renderer
	input    *InputHandler
}

// NewGame creates a game at the starting position in two-player mode. With
// a store, the saved level and mode are restored.
func NewGame(opts Options) *Game {
	g := &Game{
		state:    board.NewGameState(),
		selected: board.NoSquare,
		level:    opts.Level,
		aiMove:   make(chan aiResult, 1),
		started:  time.Now(),
		store:    opts.Store,
		logger:   opts.Logger,
		input:    NewInputHandler(),
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}

	if g.store != nil {
		prefs, err := g.store.LoadPreferences()
		if err != nil {
			g.logger.Warn("loading preferences", "err", err)
		} else {
			g.level = prefs.Level
			g.vsAI = prefs.Mode == storage.ModeVsComputer
		}
	}

	g.refresh()
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.input.Update()

	for _, k := range g.input.JustPressedKeys() {
		g.handleKey(k)
	}

	if g.input.IsLeftJustPressed() {
		x, y := g.input.MousePosition()
		if sq := ScreenToSquare(x, y, SquareSize); sq != board.NoSquare {
			g.Click(sq)
		}
	}

	g.checkAIMove()
	return nil
}

func (g *Game) handleKey(k ebiten.Key) {
	switch k {
	case ebiten.KeyE:
		g.PlayComputer(engine.Easy)
	case ebiten.KeyM:
		g.PlayComputer(engine.Medium)
	case ebiten.KeyH:
		g.PlayComputer(engine.Hard)
	case ebiten.KeyN:
		g.PlayHuman()
	case ebiten.KeyZ:
		g.Undo()
	case ebiten.KeyR:
		g.Reset()
	default:
		return
	}
	ebiten.SetWindowTitle(g.Title())
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.renderer == nil {
		g.renderer = NewRenderer(SquareSize, g.logger)
	}
	g.renderer.DrawBoard(screen)
	g.renderer.DrawHighlights(screen, g.state, g.legal, g.selected)
	g.renderer.DrawPieces(screen, g.state)
	g.renderer.DrawBanner(screen, g.Result())
}

// Layout implements ebiten.Game. The logical screen is the board.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return BoardSize, BoardSize
}

// Title returns the window title for the current mode.
func (g *Game) Title() string {
	if g.vsAI {
		return "ChessAI - " + g.level.String() + " AI"
	}
	return "ChessAI - Two players"
}

// Result returns the end-of-game banner, or "" while the game goes on.
func (g *Game) Result() string {
	switch {
	case g.state.IsCheckmate() && g.state.SideToMove() == board.White:
		return "CHECKMATE - BLACK WINS"
	case g.state.IsCheckmate():
		return "CHECKMATE - WHITE WINS"
	case g.state.IsStalemate():
		return "STALEMATE - DRAW"
	}
	return ""
}

func (g *Game) gameOver() bool {
	return len(g.legal) == 0
}

func (g *Game) humanToMove() bool {
	return !g.vsAI || g.state.SideToMove() != aiColor
}

// Click handles a click on sq. Clicking the selected square again clears
// the selection. The second click of a pair forms a move which is played
// if it matches a legal move; otherwise the second square starts a new pair.
func (g *Game) Click(sq board.Square) {
	if g.gameOver() || g.aiThinking || !g.humanToMove() {
		return
	}

	if g.selected == sq {
		g.selected = board.NoSquare
		g.clicks = g.clicks[:0]
		return
	}
	g.selected = sq
	g.clicks = append(g.clicks, sq)
	if len(g.clicks) < 2 {
		return
	}

	b := g.state.Board()
	proposed := board.NewMove(g.clicks[0], g.clicks[1], &b)
	move, ok := board.MatchLegal(g.legal, proposed)
	if !ok {
		g.clicks = append(g.clicks[:0], sq)
		return
	}
	g.play(move)
	g.maybeSearch()
}

func (g *Game) play(move board.Move) {
	g.state.MakeMove(move)
	g.selected = board.NoSquare
	g.clicks = g.clicks[:0]
	g.logger.Debug("move", "move", move, "fen", g.state.FEN())
	g.refresh()
}

// refresh recomputes the legal moves and records a finished game.
func (g *Game) refresh() {
	g.legal = g.state.LegalMoves()
	if !g.gameOver() || g.recorded {
		return
	}
	g.recorded = true
	g.logger.Info("game over", "result", g.Result(), "plies", g.state.Ply())

	if !g.vsAI || g.store == nil {
		return
	}
	result, _ := storage.ResultFor(g.state, aiColor.Other())
	result.Level = g.level
	result.Duration = time.Since(g.started)
	if err := g.store.RecordGame(result); err != nil {
		g.logger.Error("recording game", "err", err)
	}
}

// PlayComputer switches to play against the computer at level. If Black is
// to move the computer starts thinking.
func (g *Game) PlayComputer(level engine.Level) {
	g.vsAI = true
	g.level = level
	g.logger.Info("playing computer", "level", level)
	g.savePreferences()
	if g.aiThinking {
		g.cancelSearch()
	}
	g.maybeSearch()
}

// PlayHuman switches to two-player mode.
func (g *Game) PlayHuman() {
	g.vsAI = false
	g.cancelSearch()
	g.savePreferences()
}

// Undo takes back one ply, or two against the computer when that returns
// the move to the human.
func (g *Game) Undo() {
	g.cancelSearch()
	g.selected = board.NoSquare
	g.clicks = g.clicks[:0]
	if g.state.Ply() == 0 {
		return
	}
	g.state.UndoMove()
	if g.vsAI && g.state.SideToMove() == aiColor && g.state.Ply() > 0 {
		g.state.UndoMove()
	}
	g.refresh()
	g.maybeSearch()
}

// Reset starts a new game, keeping the mode and level.
func (g *Game) Reset() {
	g.cancelSearch()
	g.state.Reset()
	g.selected = board.NoSquare
	g.clicks = g.clicks[:0]
	g.started = time.Now()
	g.recorded = false
	g.refresh()
}

func (g *Game) cancelSearch() {
	g.searchID++
	g.aiThinking = false
}

// maybeSearch starts a search goroutine on a clone of the state when the
// computer is to move.
func (g *Game) maybeSearch() {
	if !g.vsAI || g.aiThinking || g.gameOver() || g.state.SideToMove() != aiColor {
		return
	}
	g.aiThinking = true
	g.searchID++

	id, level, gs := g.searchID, g.level, g.state.Clone()
	go func() {
		move, err := engine.NewEngine(level).BestMove(gs)
		g.aiMove <- aiResult{id: id, move: move, err: err}
	}()
}

// checkAIMove applies a finished search, if any, without blocking.
func (g *Game) checkAIMove() {
	select {
	case res := <-g.aiMove:
		g.applyAIMove(res)
	default:
	}
}

func (g *Game) applyAIMove(res aiResult) {
	if res.id != g.searchID {
		return
	}
	g.aiThinking = false
	if res.err != nil {
		g.logger.Error("ai search", "err", res.err)
		return
	}
	move, ok := board.MatchLegal(g.legal, res.move)
	if !ok {
		g.logger.Error("ai returned an illegal move", "move", res.move, "fen", g.state.FEN())
		return
	}
	g.logger.Info("ai move", "move", move, "level", g.level)
	g.play(move)
}

func (g *Game) savePreferences() {
	if g.store == nil {
		return
	}
	err := g.store.UpdatePreferences(func(prefs *storage.UserPreferences) {
		prefs.Level = g.level
		prefs.Mode = storage.ModeTwoPlayer
		if g.vsAI {
			prefs.Mode = storage.ModeVsComputer
		}
		prefs.PlayerColor = aiColor.Other()
	})
	if err != nil {
		g.logger.Warn("saving preferences", "err", err)
	}
}

// Close releases the store.
func (g *Game) Close() error {
	if g.store == nil {
		return nil
	}
	return g.store.Close()
}
