package db

import (
	"database/sql"
	"log"

	"fiado-backend/internal/config"

	_ "modernc.org/sqlite"
)

// Open opens the ledger store file, creating it when absent. The handle is
// injected into the repositories; nothing else touches the file.
func Connect(cfg *config.Config) *sql.DB {
	store, err := Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("store open failed: %v", err)
	}
	return store
}

// Open opens a SQLite store at path and applies the session pragmas. The
// pragmas ride in the DSN so every pooled connection gets them, not just
// the first one handed out.
func Open(path string) (*sql.DB, error) {
	dsn := "file:" + path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)"

	store, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One writer at a time; the HTTP layer can still issue concurrent
	// reads under WAL.
	store.SetMaxOpenConns(4)

	if err := store.Ping(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
