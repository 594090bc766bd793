package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const configFile = "config.json"

type Config struct {
	Company struct {
		Name  string `mapstructure:"name" json:"name"`
		Phone string `mapstructure:"phone" json:"phone"`
	} `mapstructure:"company" json:"company"`

	// DefaultCreditLimit is applied to customers registered without an
	// explicit limit. Read at registration time, not cached.
	DefaultCreditLimit float64 `mapstructure:"default_credit_limit" json:"default_credit_limit"`

	Database struct {
		Path string `mapstructure:"path" json:"path"`
	} `mapstructure:"database" json:"database"`

	Backup struct {
		Dir  string `mapstructure:"dir" json:"dir"`
		Auto bool   `mapstructure:"auto" json:"auto"`
		S3   struct {
			Enabled   bool   `mapstructure:"enabled" json:"enabled"`
			Endpoint  string `mapstructure:"endpoint" json:"endpoint"`
			Bucket    string `mapstructure:"bucket" json:"bucket"`
			Region    string `mapstructure:"region" json:"region"`
			AccessKey string `mapstructure:"access_key" json:"-"`
			SecretKey string `mapstructure:"secret_key" json:"-"`
		} `mapstructure:"s3" json:"s3"`
	} `mapstructure:"backup" json:"backup"`

	// Interface holds cosmetic preferences consumed only by the
	// presentation layer; the backend just stores and serves them.
	Interface struct {
		Theme        string `mapstructure:"theme" json:"theme"`
		FontSize     int    `mapstructure:"font_size" json:"font_size"`
		WindowWidth  int    `mapstructure:"window_width" json:"window_width"`
		WindowHeight int    `mapstructure:"window_height" json:"window_height"`
	} `mapstructure:"interface" json:"interface"`

	Server struct {
		Port               int      `mapstructure:"port" json:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins" json:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods" json:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers" json:"cors_allowed_headers"`
	} `mapstructure:"server" json:"server"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("json")
	v.SetConfigFile(configFile)

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("company.name", "Minha Loja de Conveniência")
	v.SetDefault("company.phone", "(00) 00000-0000")
	v.SetDefault("default_credit_limit", 500.00)
	v.SetDefault("database.path", "fiado.db")
	v.SetDefault("backup.dir", "backups")
	v.SetDefault("backup.auto", true)
	v.SetDefault("backup.s3.region", "auto")
	v.SetDefault("interface.theme", "light")
	v.SetDefault("interface.font_size", 10)
	v.SetDefault("interface.window_width", 1200)
	v.SetDefault("interface.window_height", 700)
	v.SetDefault("server.port", 8080)

	// Config file is optional; write one with the defaults so the shop
	// owner has something to edit
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, writing defaults to %s", configFile)
		var cfg Config
		if err := v.Unmarshal(&cfg); err == nil {
			writeDefault(&cfg)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override store path and server port from environment
	if path := os.Getenv("FIADO_DB_PATH"); path != "" {
		cfg.Database.Path = path
	}
	if port := os.Getenv("FIADO_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Server.Port = n
		}
	}
	if dir := os.Getenv("FIADO_BACKUP_DIR"); dir != "" {
		cfg.Backup.Dir = dir
	}

	// S3 credentials come from the environment when not in the file
	if key := os.Getenv("FIADO_S3_ACCESS_KEY"); key != "" {
		cfg.Backup.S3.AccessKey = key
	}
	if secret := os.Getenv("FIADO_S3_SECRET_KEY"); secret != "" {
		cfg.Backup.S3.SecretKey = secret
	}

	return &cfg
}

// writeDefault persists the default configuration so it can be edited.
// Failure is not fatal; the in-memory defaults still apply.
func writeDefault(cfg *Config) {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return
	}
	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		log.Printf("[Config] Could not write default config: %v", err)
	}
}
