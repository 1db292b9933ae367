package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chessai/internal/board"
	"github.com/hailam/chessai/internal/engine"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// GameMode represents who plays the two sides.
type GameMode int

const (
	ModeTwoPlayer GameMode = iota
	ModeVsComputer
)

// UserPreferences stores user settings
type UserPreferences struct {
	Username    string       `json:"username"`
	Mode        GameMode     `json:"mode"`
	Level       engine.Level `json:"level"`
	PlayerColor board.Color  `json:"player_color"`
	LastPlayed  time.Time    `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:    "Player",
		Mode:        ModeTwoPlayer,
		Level:       engine.Medium,
		PlayerColor: board.White,
		LastPlayed:  time.Now(),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed      int            `json:"games_played"`
	Wins             int            `json:"wins"`
	Losses           int            `json:"losses"`
	Draws            int            `json:"draws"`
	WinsByLevel      map[string]int `json:"wins_by_level"`
	LongestWinStreak int            `json:"longest_win_streak"`
	CurrentStreak    int            `json:"current_streak"`
	TotalPlayTime    time.Duration  `json:"total_play_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByLevel: make(map[string]int),
	}
}

// GameResult represents the result of a completed game against the computer.
type GameResult struct {
	Won      bool
	Draw     bool
	Level    engine.Level
	Plies    int
	Duration time.Duration
}

// ResultFor returns the result of a finished game from human's point of view.
// ok is false while the game is still in progress; the flags are those set by
// the last LegalMoves call.
func ResultFor(gs *board.GameState, human board.Color) (result GameResult, ok bool) {
	switch {
	case gs.IsCheckmate():
		result.Won = gs.SideToMove() != human
	case gs.IsStalemate():
		result.Draw = true
	default:
		return result, false
	}
	result.Plies = gs.Ply()
	return result, true
}

// Storage wraps BadgerDB for persistent storage. A Storage returned by
// ForUser shares the database of its parent and keeps its keys apart.
type Storage struct {
	db     *badger.DB
	prefix string
	child  bool
}

// NewStorage opens the database in the platform data directory.
func NewStorage(logger *log.Logger) (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug("opening database", "dir", dbDir)
	}
	return Open(dbDir, logger)
}

// Open opens (or creates) the database in dir. Badger's own messages go to
// logger at warning level and above; a nil logger silences them.
func Open(dir string, logger *log.Logger) (*Storage, error) {
	return open(badger.DefaultOptions(dir), logger)
}

// OpenInMemory opens a database that lives only as long as the Storage.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), nil)
}

func open(opts badger.Options, logger *log.Logger) (*Storage, error) {
	if logger != nil {
		opts.Logger = badgerLogger{logger.WithPrefix("badger")}
	} else {
		opts.Logger = nil
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// ForUser returns a view of the database whose preferences, statistics and
// first-launch flag belong to name alone. Closing the view is a no-op.
func (s *Storage) ForUser(name string) *Storage {
	if name == "" {
		return s
	}
	return &Storage{db: s.db, prefix: s.prefix + "user/" + name + "/", child: true}
}

func (s *Storage) key(k string) string {
	return s.prefix + k
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil && !s.child {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(s.key(keyFirstLaunch)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(s.key(keyFirstLaunch)), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, s.key(keyPreferences), prefs)
	})
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, s.key(keyPreferences), prefs)
	})
	return prefs, err
}

// UpdatePreferences loads the preferences, applies fn and saves them in one
// transaction. Concurrent updates fail with badger.ErrConflict instead of
// overwriting each other.
func (s *Storage) UpdatePreferences(fn func(*UserPreferences)) error {
	return s.db.Update(func(txn *badger.Txn) error {
		prefs := DefaultPreferences()
		if err := getJSON(txn, s.key(keyPreferences), prefs); err != nil {
			return err
		}
		fn(prefs)
		prefs.LastPlayed = time.Now()
		return setJSON(txn, s.key(keyPreferences), prefs)
	})
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, s.key(keyStats), stats)
	})
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, s.key(keyStats), stats)
	})
	return stats, err
}

// RecordGame records a completed game and updates statistics in a single
// transaction.
func (s *Storage) RecordGame(result GameResult) error {
	return s.db.Update(func(txn *badger.Txn) error {
		stats := NewGameStats()
		if err := getJSON(txn, s.key(keyStats), stats); err != nil {
			return err
		}
		if stats.WinsByLevel == nil {
			stats.WinsByLevel = make(map[string]int)
		}

		stats.apply(result)
		return setJSON(txn, s.key(keyStats), stats)
	})
}

func (s *GameStats) apply(result GameResult) {
	s.GamesPlayed++
	s.TotalPlayTime += result.Duration

	switch {
	case result.Draw:
		s.Draws++
		s.CurrentStreak = 0
	case result.Won:
		s.Wins++
		s.CurrentStreak++
		if s.CurrentStreak > s.LongestWinStreak {
			s.LongestWinStreak = s.CurrentStreak
		}
		s.WinsByLevel[result.Level.String()]++
	default:
		s.Losses++
		s.CurrentStreak = 0
	}
}

// GetWinRate returns the win rate as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// getJSON decodes the value at key into v, leaving v untouched if the key
// does not exist.
func getJSON(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set([]byte(key), data)
}

// badgerLogger adapts a charm logger to badger.Logger. Badger is chatty at
// info level, so only warnings and errors are forwarded.
type badgerLogger struct {
	*log.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.Logger.Errorf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.Logger.Warnf(format, args...)
}

func (l badgerLogger) Infof(string, ...any) {}

func (l badgerLogger) Debugf(string, ...any) {}
