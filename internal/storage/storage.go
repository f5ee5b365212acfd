package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	gamePrefix     = "game/"
)

// ErrGameNotFound is returned when no saved game has the requested name.
var ErrGameNotFound = errors.New("saved game not found")

// ErrInvalidGameName is returned for names that cannot be used as keys.
var ErrInvalidGameName = errors.New("invalid game name")

// UserPreferences stores user settings
type UserPreferences struct {
	Username            string    `json:"username"`
	Flipped             bool      `json:"flipped"`
	HighlightLegalMoves bool      `json:"highlight_legal_moves"`
	Color               bool      `json:"color"`
	LastPlayed          time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:   "Player",
		Color:      true,
		LastPlayed: time.Now(),
	}
}

// Result is how a finished game ended.
type Result int

const (
	ResultWhiteWins Result = iota
	ResultBlackWins
	ResultStalemate
)

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed int `json:"games_played"`
	WhiteWins   int `json:"white_wins"`
	BlackWins   int `json:"black_wins"`
	Stalemates  int `json:"stalemates"`
	LongestGame int `json:"longest_game"` // in plies
	TotalPlies  int `json:"total_plies"`
}

// AveragePlies returns the mean game length in plies.
func (s *GameStats) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}

// SavedGame is a named move list that can be replayed from the start.
type SavedGame struct {
	Name    string    `json:"name"`
	Moves   []string  `json:"moves"`
	SavedAt time.Time `json:"saved_at"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens or creates the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}

	return &Storage{db: db}, nil
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// put stores v as JSON under key.
func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the JSON under key into v and reports whether the key exists.
func (s *Storage) get(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	_, err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := &GameStats{}
	_, err := s.get(keyStats, stats)
	return stats, err
}

// RecordResult records a finished game of the given length and updates
// statistics.
func (s *Storage) RecordResult(result Result, plies int) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlies += plies
	if plies > stats.LongestGame {
		stats.LongestGame = plies
	}

	switch result {
	case ResultWhiteWins:
		stats.WhiteWins++
	case ResultBlackWins:
		stats.BlackWins++
	case ResultStalemate:
		stats.Stalemates++
	default:
		return fmt.Errorf("unknown result %d", result)
	}

	return s.SaveStats(stats)
}

func gameKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "/\x00") {
		return "", fmt.Errorf("%w: %q", ErrInvalidGameName, name)
	}
	return gamePrefix + name, nil
}

// SaveGame stores moves under name, replacing any game of the same name.
func (s *Storage) SaveGame(name string, moves []string) error {
	key, err := gameKey(name)
	if err != nil {
		return err
	}

	game := SavedGame{
		Name:    strings.TrimSpace(name),
		Moves:   append([]string(nil), moves...),
		SavedAt: time.Now(),
	}
	return s.put(key, &game)
}

// LoadGame returns the saved game called name.
func (s *Storage) LoadGame(name string) (*SavedGame, error) {
	key, err := gameKey(name)
	if err != nil {
		return nil, err
	}

	game := &SavedGame{}
	found, err := s.get(key, game)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, name)
	}
	return game, nil
}

// ListGames returns every saved game, most recently saved first.
func (s *Storage) ListGames() ([]SavedGame, error) {
	var games []SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var game SavedGame
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &game)
			}); err != nil {
				return err
			}
			games = append(games, game)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].SavedAt.After(games[j].SavedAt)
	})
	return games, nil
}

// DeleteGame removes the saved game called name.
func (s *Storage) DeleteGame(name string) error {
	key, err := gameKey(name)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrGameNotFound, name)
			}
			return err
		}
		return txn.Delete([]byte(key))
	})
}
