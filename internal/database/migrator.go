package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// Migrations are held in code rather than .sql files: the store travels as a
// single file next to the binary and there is no migrations directory to
// deploy. Each entry is one SQL statement (SQLite executes one at a time).
var migrations = []struct {
	Name string
	Stmt string
}{
	{
		Name: "001_customers",
		Stmt: `CREATE TABLE IF NOT EXISTS customers (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			name         TEXT NOT NULL,
			phone        TEXT NOT NULL DEFAULT '',
			credit_limit REAL NOT NULL DEFAULT 500.00,
			active       INTEGER NOT NULL DEFAULT 1,
			created_at   TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
	},
	{
		Name: "002_purchases",
		Stmt: `CREATE TABLE IF NOT EXISTS purchases (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_id INTEGER NOT NULL REFERENCES customers(id),
			description TEXT NOT NULL,
			amount      REAL NOT NULL,
			settled     INTEGER NOT NULL DEFAULT 0,
			created_at  TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
	},
	{
		Name: "003_purchases_customer_idx",
		Stmt: `CREATE INDEX IF NOT EXISTS idx_purchases_customer ON purchases(customer_id)`,
	},
	{
		Name: "004_payments",
		Stmt: `CREATE TABLE IF NOT EXISTS payments (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_id INTEGER NOT NULL REFERENCES customers(id),
			amount      REAL NOT NULL,
			note        TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
	},
	{
		Name: "005_payments_customer_idx",
		Stmt: `CREATE INDEX IF NOT EXISTS idx_payments_customer ON payments(customer_id)`,
	},
}

// Migrator handles store schema migrations
type Migrator struct {
	store *sql.DB
}

// NewMigrator creates a new migration runner
func NewMigrator(store *sql.DB) *Migrator {
	return &Migrator{store: store}
}

// RunMigrations executes all pending schema migrations. Applied migrations
// are tracked in schema_migrations and skipped on later runs.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	migrationsRun := 0
	for _, mig := range migrations {
		if applied[mig.Name] {
			continue
		}

		if _, err := m.store.ExecContext(ctx, mig.Stmt); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", mig.Name, err)
		}
		if err := m.recordMigration(ctx, mig.Name); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", mig.Name, err)
		}
		migrationsRun++
	}

	if migrationsRun > 0 {
		log.Printf("[Migrate] Ran %d new migration(s)", migrationsRun)
	}
	return nil
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT UNIQUE NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`
	_, err := m.store.ExecContext(ctx, query)
	return err
}

func (m *Migrator) getAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := m.store.QueryContext(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func (m *Migrator) recordMigration(ctx context.Context, name string) error {
	query := `INSERT INTO schema_migrations (name) VALUES (?) ON CONFLICT (name) DO NOTHING`
	_, err := m.store.ExecContext(ctx, query, name)
	return err
}
