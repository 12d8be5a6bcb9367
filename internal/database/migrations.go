package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration is one versioned schema change
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations holds the embedded schema, ordered by version
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_extractions",
		SQL: `CREATE TABLE IF NOT EXISTS extractions (
			image_id TEXT PRIMARY KEY,
			total_points INTEGER NOT NULL,
			matched_points INTEGER NOT NULL,
			dropped_points INTEGER NOT NULL,
			grid_size INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		Version: 2,
		Name:    "create_areal_features",
		SQL: `CREATE TABLE IF NOT EXISTS areal_features (
			image_id TEXT NOT NULL,
			name TEXT NOT NULL,
			ord INTEGER NOT NULL,
			value REAL,
			PRIMARY KEY (image_id, name),
			FOREIGN KEY (image_id) REFERENCES extractions(image_id) ON DELETE CASCADE
		)`,
	},
	{
		Version: 3,
		Name:    "create_functional_curves",
		SQL: `CREATE TABLE IF NOT EXISTS functional_curves (
			image_id TEXT NOT NULL,
			name TEXT NOT NULL,
			defined INTEGER NOT NULL,
			r_json TEXT NOT NULL,
			v_json TEXT NOT NULL,
			PRIMARY KEY (image_id, name),
			FOREIGN KEY (image_id) REFERENCES extractions(image_id) ON DELETE CASCADE
		)`,
	},
}

// Migrate applies pending migrations, tracking versions in the migrations
// table
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}
	return nil
}

// appliedVersions returns the set of already-applied migration versions
func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}
