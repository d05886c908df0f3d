// Package store persists tree selection state in SQLite.
package store

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hayeah/picktree/internal/tree"
)

// Store keeps one tree.State per root directory.
type Store struct {
	DB     *sqlx.DB
	Logger *slog.Logger
}

type nodeStateRow struct {
	Root      string    `db:"root"`
	NodeID    string    `db:"node_id"`
	Selected  bool      `db:"is_selected"`
	Partial   bool      `db:"is_partial"`
	Expanded  bool      `db:"is_expanded"`
	Locked    bool      `db:"is_locked"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Open connects to the database at dsn and applies pending migrations. A dsn
// of ":memory:" gives a private in-memory database.
func Open(dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a second connection would see a different :memory: database
	db.SetMaxOpenConns(1)

	s := &Store{DB: db, Logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// LoadState returns the saved state of root, or an empty state.
func (s *Store) LoadState(root string) (tree.State, error) {
	var rows []nodeStateRow
	err := s.DB.Select(&rows, "SELECT * FROM node_states WHERE root = ? ORDER BY node_id", root)
	if err != nil {
		return nil, fmt.Errorf("failed to load state for %s: %w", root, err)
	}

	state := make(tree.State, len(rows))
	for _, r := range rows {
		state[r.NodeID] = tree.NodeState{
			Selected: r.Selected,
			Partial:  r.Partial,
			Expanded: r.Expanded,
			Locked:   r.Locked,
		}
	}
	s.Logger.Debug("loaded state", "root", root, "nodes", len(state))
	return state, nil
}

// SaveState replaces the saved state of root. Nodes with no flags set are
// not written.
func (s *Store) SaveState(root string, state tree.State) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM node_states WHERE root = ?", root); err != nil {
		return fmt.Errorf("failed to clear state for %s: %w", root, err)
	}

	now := time.Now()
	written := 0
	for id, ns := range state {
		if ns.IsZero() {
			continue
		}
		row := nodeStateRow{
			Root:      root,
			NodeID:    id,
			Selected:  ns.Selected,
			Partial:   ns.Partial,
			Expanded:  ns.Expanded,
			Locked:    ns.Locked,
			UpdatedAt: now,
		}
		_, err := tx.NamedExec(`
			INSERT INTO node_states (root, node_id, is_selected, is_partial, is_expanded, is_locked, updated_at)
			VALUES (:root, :node_id, :is_selected, :is_partial, :is_expanded, :is_locked, :updated_at)`, row)
		if err != nil {
			return fmt.Errorf("failed to save node %s: %w", id, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state for %s: %w", root, err)
	}
	s.Logger.Debug("saved state", "root", root, "nodes", written)
	return nil
}

// ClearState forgets the saved state of root.
func (s *Store) ClearState(root string) error {
	if _, err := s.DB.Exec("DELETE FROM node_states WHERE root = ?", root); err != nil {
		return fmt.Errorf("failed to clear state for %s: %w", root, err)
	}
	return nil
}

// Roots lists the roots with saved state, most recently saved first.
func (s *Store) Roots() ([]string, error) {
	var roots []string
	err := s.DB.Select(&roots, `
		SELECT root FROM node_states
		GROUP BY root
		ORDER BY MAX(updated_at) DESC, root`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roots: %w", err)
	}
	return roots, nil
}
