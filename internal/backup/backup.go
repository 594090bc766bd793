package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fiado-backend/internal/timeutil"
)

// Copy copies the store file at storePath to a timestamped file inside dir,
// creating dir when needed. Returns the backup path. Read-only with respect
// to the ledger.
func Copy(storePath, dir string) (string, error) {
	if _, err := os.Stat(storePath); err != nil {
		return "", fmt.Errorf("store file not found: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	stamp := timeutil.Now().Format(timeutil.BackupStampLayout)
	dest := filepath.Join(dir, fmt.Sprintf("fiado_backup_%s.db", stamp))

	src, err := os.Open(storePath)
	if err != nil {
		return "", fmt.Errorf("open store file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("copy store file: %w", err)
	}
	return dest, nil
}
