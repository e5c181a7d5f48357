package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything read from ~/.gameshelf/config.toml and
// GAMESHELF_* environment variables.
type Config struct {
	DataDir   string
	DBPath    string
	CoversDir string

	MobyAPIKey string

	// Retry tuning for the metadata client. Zero values mean defaults.
	RetryAttempts int
	RetryDelay    time.Duration

	ServerPort int
	Debug      bool

	encryptionKey string // hex
}

// Load reads configuration, applying defaults for anything unset. A missing
// config file is fine; env vars alone are enough to run.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dataDir := filepath.Join(home, ".gameshelf")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dataDir)

	v.SetDefault("data_dir", dataDir)
	v.SetDefault("db_path", "")
	v.SetDefault("covers_dir", "")
	v.SetDefault("moby_api_key", "")
	v.SetDefault("retry_attempts", 0)
	v.SetDefault("retry_delay_ms", 0)
	v.SetDefault("server_port", 8090)
	v.SetDefault("debug", false)
	v.SetDefault("encryption_key", "")

	v.SetEnvPrefix("GAMESHELF")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		DataDir:       v.GetString("data_dir"),
		DBPath:        v.GetString("db_path"),
		CoversDir:     v.GetString("covers_dir"),
		MobyAPIKey:    v.GetString("moby_api_key"),
		RetryAttempts: v.GetInt("retry_attempts"),
		RetryDelay:    time.Duration(v.GetInt("retry_delay_ms")) * time.Millisecond,
		ServerPort:    v.GetInt("server_port"),
		Debug:         v.GetBool("debug"),
		encryptionKey: v.GetString("encryption_key"),
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "gameshelf.db")
	}
	if cfg.CoversDir == "" {
		cfg.CoversDir = filepath.Join(cfg.DataDir, "covers")
	}
	return cfg, nil
}

// EncryptionKey decodes the configured hex key for at-rest encryption.
func (c *Config) EncryptionKey() ([]byte, error) {
	if c.encryptionKey == "" {
		return nil, fmt.Errorf("encryption_key is not configured (set GAMESHELF_ENCRYPTION_KEY)")
	}
	key, err := hex.DecodeString(c.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption_key is not valid hex: %w", err)
	}
	return key, nil
}
