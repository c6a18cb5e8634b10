// Package save persists game progress and opened chests in SQLite.
package save

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSave is returned by LoadProgress before anything was saved.
var ErrNoSave = errors.New("save: no saved progress")

// Store manages the save database.
type Store struct {
	db *sql.DB
}

// Progress is the single save slot.
type Progress struct {
	Scene       string
	Destination string
	Health      int
	MaxHealth   int
	Coins       int
	UpdatedAt   time.Time
}

// Open creates or opens the database at path, creating parent directories
// and running migrations. A leading ~ expands to the home directory.
func Open(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("save: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("save: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("save: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("save: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("save: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			slot INTEGER PRIMARY KEY CHECK (slot = 1),
			scene TEXT NOT NULL,
			destination TEXT NOT NULL DEFAULT '',
			health INTEGER NOT NULL,
			max_health INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS opened_chests (
			scene TEXT NOT NULL,
			chest_id TEXT NOT NULL,
			opened_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (scene, chest_id)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveProgress overwrites the save slot.
func (s *Store) SaveProgress(p Progress) error {
	if p.Scene == "" {
		return fmt.Errorf("save: progress has no scene")
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO progress (slot, scene, destination, health, max_health, coins, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			scene = excluded.scene,
			destination = excluded.destination,
			health = excluded.health,
			max_health = excluded.max_health,
			coins = excluded.coins,
			updated_at = excluded.updated_at`,
		p.Scene, p.Destination, p.Health, p.MaxHealth, p.Coins, p.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save: cannot save progress: %w", err)
	}
	return nil
}

// LoadProgress returns the save slot or ErrNoSave.
func (s *Store) LoadProgress() (Progress, error) {
	var p Progress
	err := s.db.QueryRow(`
		SELECT scene, destination, health, max_health, coins, updated_at
		FROM progress WHERE slot = 1`,
	).Scan(&p.Scene, &p.Destination, &p.Health, &p.MaxHealth, &p.Coins, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Progress{}, ErrNoSave
	}
	if err != nil {
		return Progress{}, fmt.Errorf("save: cannot load progress: %w", err)
	}
	return p, nil
}

// IsOpened reports whether the chest was opened. Read errors count as not
// opened.
func (s *Store) IsOpened(scene, id string) bool {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM opened_chests WHERE scene = ? AND chest_id = ?",
		scene, id,
	).Scan(&n)
	return err == nil && n > 0
}

// MarkOpened records an opened chest. Marking twice is a no-op.
func (s *Store) MarkOpened(scene, id string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO opened_chests (scene, chest_id) VALUES (?, ?)",
		scene, id,
	)
	if err != nil {
		return fmt.Errorf("save: cannot mark chest %s/%s: %w", scene, id, err)
	}
	return nil
}

// OpenedChests lists the opened chest ids of a scene in id order.
func (s *Store) OpenedChests(scene string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT chest_id FROM opened_chests WHERE scene = ? ORDER BY chest_id",
		scene,
	)
	if err != nil {
		return nil, fmt.Errorf("save: cannot list chests: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("save: cannot scan chest: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Reset wipes all progress.
func (s *Store) Reset() error {
	if _, err := s.db.Exec("DELETE FROM progress; DELETE FROM opened_chests;"); err != nil {
		return fmt.Errorf("save: cannot reset: %w", err)
	}
	return nil
}
