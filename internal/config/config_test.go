package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() error: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prev) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg := Load()

	if cfg.DefaultCreditLimit != 500 {
		t.Errorf("DefaultCreditLimit = %v, want 500", cfg.DefaultCreditLimit)
	}
	if cfg.Database.Path != "fiado.db" {
		t.Errorf("Database.Path = %q, want fiado.db", cfg.Database.Path)
	}
	if cfg.Backup.Dir != "backups" || !cfg.Backup.Auto {
		t.Errorf("backup defaults = %q/%v, want backups/true", cfg.Backup.Dir, cfg.Backup.Auto)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Company.Name == "" {
		t.Error("Company.Name default missing")
	}
	if cfg.Interface.Theme != "light" {
		t.Errorf("Interface.Theme = %q, want light", cfg.Interface.Theme)
	}
}

func TestLoad_WritesDefaultFileWhenMissing(t *testing.T) {
	dir := chdirTemp(t)

	Load()

	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Errorf("default config.json was not written: %v", err)
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	body := `{
		"company": {"name": "Mercadinho da Ana"},
		"default_credit_limit": 250.0,
		"database": {"path": "store/ledger.db"},
		"server": {"port": 9090}
	}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load()

	if cfg.Company.Name != "Mercadinho da Ana" {
		t.Errorf("Company.Name = %q", cfg.Company.Name)
	}
	if cfg.DefaultCreditLimit != 250 {
		t.Errorf("DefaultCreditLimit = %v, want 250", cfg.DefaultCreditLimit)
	}
	if cfg.Database.Path != "store/ledger.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	// File values merge over defaults, they do not replace them wholesale
	if cfg.Backup.Dir != "backups" {
		t.Errorf("Backup.Dir = %q, want default backups", cfg.Backup.Dir)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)

	t.Setenv("FIADO_DB_PATH", "/tmp/override.db")
	t.Setenv("FIADO_PORT", "7070")
	t.Setenv("FIADO_BACKUP_DIR", "/tmp/backups")

	cfg := Load()

	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Backup.Dir != "/tmp/backups" {
		t.Errorf("Backup.Dir = %q, want env override", cfg.Backup.Dir)
	}
}

func TestLoad_BadPortEnvIgnored(t *testing.T) {
	chdirTemp(t)

	t.Setenv("FIADO_PORT", "not-a-port")

	cfg := Load()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}
