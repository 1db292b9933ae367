package engine

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chessai/internal/board"
)

// SearchInfo describes a finished search.
type SearchInfo struct {
	Level Level
	Depth int
	Score int // from White's point of view
	Nodes uint64
	Time  time.Duration
	Move  board.Move
}

// SearchSettings configures how a move is chosen.
type SearchSettings struct {
	Random     bool       // pick uniformly among legal moves, no search
	Depth      int        // minimax depth below each root move
	Difficulty Difficulty // evaluator used at the horizon
}

// Level represents the AI strength.
type Level int

const (
	Easy   Level = iota // random mover
	Medium              // depth 1, material only
	Hard                // depth 2, material and piece-square tables
)

// LevelSettings maps level to search settings.
var LevelSettings = map[Level]SearchSettings{
	Easy:   {Random: true},
	Medium: {Depth: 1, Difficulty: Simple},
	Hard:   {Depth: 2, Difficulty: Complex},
}

var levelNames = [...]string{Easy: "easy", Medium: "medium", Hard: "hard"}

// String returns the lowercase level name.
func (l Level) String() string {
	if l < Easy || l > Hard {
		return "level(" + strconv.Itoa(int(l)) + ")"
	}
	return levelNames[l]
}

// ParseLevel parses "easy", "medium" or "hard", ignoring case.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, name := range levelNames {
		if s == name {
			return Level(l), nil
		}
	}
	return Medium, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Engine is the chess AI. It is not safe for concurrent use; give each
// goroutine its own Engine and its own cloned GameState.
type Engine struct {
	searcher *Searcher
	rng      *rand.Rand
	level    Level

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine playing at the given level.
func NewEngine(level Level) *Engine {
	return &Engine{
		searcher: NewSearcher(),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		level:    level,
	}
}

// SetLevel sets the engine level.
func (e *Engine) SetLevel(l Level) {
	e.level = l
}

// Level returns the engine level.
func (e *Engine) Level() Level {
	return e.level
}

// Seed makes the random mover deterministic.
func (e *Engine) Seed(seed uint64) {
	e.rng = rand.New(rand.NewPCG(seed, seed))
}

// Settings returns the search settings of the current level.
func (e *Engine) Settings() SearchSettings {
	return LevelSettings[e.level]
}

// BestMove chooses a move for the side to move according to the level.
func (e *Engine) BestMove(gs *board.GameState) (board.Move, error) {
	return e.SearchWithSettings(gs, e.Settings())
}

// SearchWithSettings chooses a move with explicit settings. It returns
// ErrNoLegalMoves when the side to move has no legal moves.
func (e *Engine) SearchWithSettings(gs *board.GameState, s SearchSettings) (board.Move, error) {
	e.searcher.Reset()
	start := time.Now()

	var (
		move  board.Move
		score int
		err   error
	)
	if s.Random {
		move, err = randomMove(e.rng, gs.LegalMoves())
		score = Evaluate(gs, Simple)
	} else {
		move, score, err = e.searcher.SmartMove(gs, s.Depth, s.Difficulty)
		score = whiteScore(gs.SideToMove(), s.Depth, s.Difficulty, score)
	}
	if err != nil {
		return board.NoMove, err
	}

	if e.OnInfo != nil {
		e.OnInfo(SearchInfo{
			Level: e.level,
			Depth: s.Depth,
			Score: score,
			Nodes: e.searcher.Nodes(),
			Time:  time.Since(start),
			Move:  move,
		})
	}

	return move, nil
}

// whiteScore converts a SmartMove score to White's point of view. The
// complex evaluator scores leaves for the side to move there, which is
// depth+1 plies after the root. Mate bounds are already White-relative.
func whiteScore(root board.Color, depth int, d Difficulty, score int) int {
	if d != Complex || score >= CheckmateScore || score <= -CheckmateScore {
		return score
	}
	leaf := root
	if (depth+1)%2 == 1 {
		leaf = root.Other()
	}
	if leaf == board.Black {
		return -score
	}
	return score
}

// Perft counts the leaf nodes of the legal move tree to depth.
func (e *Engine) Perft(gs *board.GameState, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := gs.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		gs.MakeMove(m)
		nodes += e.Perft(gs, depth-1)
		gs.UndoMove()
	}
	return nodes
}

// Evaluate returns the static evaluation of gs with the level's evaluator.
func (e *Engine) Evaluate(gs *board.GameState) int {
	return Evaluate(gs, e.Settings().Difficulty)
}

// ScoreToString converts a score to a human-readable string in pawns.
func ScoreToString(score int) string {
	if score >= CheckmateScore {
		return "White mates"
	}
	if score <= -CheckmateScore {
		return "Black mates"
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return sign + strconv.Itoa(score/PawnValue) + "." + strconv.Itoa(score%PawnValue)
}
