// Package uci implements the Universal Chess Interface protocol on top of the
// board and engine packages.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hailam/chessai/internal/board"
	"github.com/hailam/chessai/internal/engine"
)

// UCI implements the Universal Chess Interface protocol. Protocol lines go to
// out; diagnostics go to the logger.
type UCI struct {
	engine *engine.Engine
	state  *board.GameState

	in     io.Reader
	out    io.Writer
	logger *log.Logger

	// CPU profiling
	profileFile *os.File
}

// New creates a new UCI protocol handler reading commands from in.
func New(eng *engine.Engine, in io.Reader, out io.Writer, logger *log.Logger) *UCI {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &UCI{
		engine: eng,
		state:  board.NewGameState(),
		in:     in,
		out:    out,
		logger: logger,
	}
}

// Run processes commands until "quit" or the end of input.
func (u *UCI) Run() error {
	defer u.stopProfile()

	scanner := bufio.NewScanner(u.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.state.Reset()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			// Searches run to completion before the next command is read.
		case "quit":
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			fmt.Fprint(u.out, u.state.String())
		case "perft":
			u.handlePerft(args)
		case "eval":
			u.handleEval()
		default:
			u.logger.Debug("unknown command", "cmd", cmd)
		}
	}
	return scanner.Err()
}

func (u *UCI) println(a ...any) {
	fmt.Fprintln(u.out, a...)
}

func (u *UCI) printf(format string, a ...any) {
	fmt.Fprintf(u.out, format, a...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name ChessAI")
	u.println("id author ChessAI Team")
	u.println()
	u.printf("option name Level type combo default %s var easy var medium var hard\n", u.engine.Level())
	u.println("uciok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// Moves are applied up to the first one that is not legal.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	switch args[0] {
	case "startpos":
		u.state = board.NewGameState()
	case "fen":
		gs, err := board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			u.printf("info string Invalid FEN: %v\n", err)
			u.logger.Warn("invalid fen", "err", err)
			return
		}
		u.state = gs
	default:
		return
	}

	if movesAt >= len(args) {
		return
	}
	for _, s := range args[movesAt+1:] {
		m, err := u.state.ParseMove(s)
		if err == nil {
			var ok bool
			if m, ok = board.MatchLegal(u.state.LegalMoves(), m); !ok {
				err = fmt.Errorf("%w: %s is not legal", board.ErrInvalidMove, s)
			}
		}
		if err != nil {
			u.printf("info string Invalid move: %s\n", s)
			u.logger.Warn("rejected move", "move", s, "fen", u.state.FEN(), "err", err)
			return
		}
		u.state.MakeMove(m)
	}
}

// GoOptions holds parsed "go" command options. Only depth affects the
// search; clock arguments are accepted and ignored.
type GoOptions struct {
	Depth int
}

func parseGoOptions(args []string) GoOptions {
	opts := GoOptions{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime", "nodes", "mate":
			i++
		}
	}
	return opts
}

// handleGo searches the current position and prints the best move. A depth
// overrides the level's depth but keeps its evaluator; the easy level
// ignores it.
func (u *UCI) handleGo(args []string) {
	opts := parseGoOptions(args)

	settings := u.engine.Settings()
	if opts.Depth > 0 && !settings.Random {
		settings.Depth = opts.Depth
	}

	u.engine.OnInfo = u.sendInfo
	move, err := u.engine.SearchWithSettings(u.state, settings)
	if errors.Is(err, engine.ErrNoLegalMoves) {
		u.println("bestmove 0000")
		return
	}
	if err != nil {
		u.logger.Error("search failed", "err", err)
		u.println("bestmove 0000")
		return
	}
	u.printf("bestmove %s\n", move.UCI())
}

// sendInfo outputs search info in UCI format. Scores are converted from
// White's view to the mover's view, in centipawns.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	score := info.Score
	if u.state.SideToMove() == board.Black {
		score = -score
	}

	// Depth counts the root move.
	parts := []string{fmt.Sprintf("depth %d", info.Depth+1)}
	switch {
	case score >= engine.CheckmateScore:
		parts = append(parts, "score mate 1")
	case score <= -engine.CheckmateScore:
		parts = append(parts, "score mate -1")
	default:
		parts = append(parts, fmt.Sprintf("score cp %d", score*100/engine.PawnValue))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}
	if info.Move != board.NoMove {
		parts = append(parts, "pv "+info.Move.UCI())
	}

	u.printf("info %s\n", strings.Join(parts, " "))
	u.logger.Debug("search done", "level", info.Level, "move", info.Move, "nodes", info.Nodes, "time", info.Time)
}

// handleSetOption processes "setoption" commands.
// Format: setoption name <name> value <value>
func (u *UCI) handleSetOption(args []string) {
	var name, value []string
	var target *[]string
	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target != nil {
				*target = append(*target, arg)
			}
		}
	}

	switch strings.ToLower(strings.Join(name, " ")) {
	case "level":
		level, err := engine.ParseLevel(strings.Join(value, " "))
		if err != nil {
			u.printf("info string %v\n", err)
			return
		}
		u.engine.SetLevel(level)
		u.logger.Info("level changed", "level", level)
	case "cpuprofile":
		u.stopProfile()
		path := strings.Join(value, " ")
		if path != "" && path != "stop" {
			if err := u.startProfile(path); err != nil {
				u.printf("info string Failed to start profile: %v\n", err)
			}
		}
	default:
		u.logger.Debug("unknown option", "name", strings.Join(name, " "))
	}
}

func (u *UCI) startProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return err
	}
	u.profileFile = f
	u.logger.Info("cpu profiling", "path", path)
	return nil
}

func (u *UCI) stopProfile() {
	if u.profileFile == nil {
		return
	}
	pprof.StopCPUProfile()
	u.profileFile.Close()
	u.profileFile = nil
	u.logger.Info("cpu profile saved")
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d >= 0 {
			depth = d
		}
	}

	start := time.Now()
	nodes := u.engine.Perft(u.state, depth)
	elapsed := time.Since(start)

	u.printf("Nodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		u.printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

// handleEval prints both static evaluations of the current position.
func (u *UCI) handleEval() {
	u.state.LegalMoves() // refresh the terminal flags
	simple := engine.EvaluateSimple(u.state)
	full := engine.EvaluateComplex(u.state)
	u.printf("Simple: %d (%s)\n", simple, engine.ScoreToString(simple))
	u.printf("Complex: %d (%s)\n", full, engine.ScoreToString(full))
}
