package store

import "fmt"

type migration struct {
	Name string
	Up   string
}

var migrations = []migration{
	{
		Name: "create_node_states_table",
		Up: `
			CREATE TABLE IF NOT EXISTS node_states (
				root TEXT NOT NULL,
				node_id TEXT NOT NULL,
				is_selected BOOLEAN NOT NULL DEFAULT 0,
				is_partial BOOLEAN NOT NULL DEFAULT 0,
				is_expanded BOOLEAN NOT NULL DEFAULT 0,
				is_locked BOOLEAN NOT NULL DEFAULT 0,
				updated_at TIMESTAMP NOT NULL,
				PRIMARY KEY (root, node_id)
			);
		`,
	},
	{
		Name: "create_node_states_root_index",
		Up: `
			CREATE INDEX IF NOT EXISTS node_states_root ON node_states (root);
		`,
	},
}

// migrate applies the migrations not yet recorded in schema_migrations.
func (s *Store) migrate() error {
	_, err := s.DB.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return err
	}

	var applied []string
	if err := s.DB.Select(&applied, "SELECT name FROM schema_migrations"); err != nil {
		return err
	}
	done := make(map[string]bool, len(applied))
	for _, name := range applied {
		done[name] = true
	}

	for _, m := range migrations {
		if done[m.Name] {
			continue
		}
		tx, err := s.DB.Beginx()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (name) VALUES (?)", m.Name); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		s.Logger.Debug("applied migration", "name", m.Name)
	}
	return nil
}
