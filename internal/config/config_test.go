package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tmp := t.TempDir()
	os.Setenv("HOME", tmp)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != filepath.Join(tmp, ".gameshelf") {
		t.Errorf("data dir = %s", cfg.DataDir)
	}
	if cfg.DBPath != filepath.Join(cfg.DataDir, "gameshelf.db") {
		t.Errorf("db path = %s", cfg.DBPath)
	}
	if cfg.CoversDir != filepath.Join(cfg.DataDir, "covers") {
		t.Errorf("covers dir = %s", cfg.CoversDir)
	}
	if cfg.ServerPort != 8090 {
		t.Errorf("server port = %d", cfg.ServerPort)
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	tmp := t.TempDir()
	os.Setenv("HOME", tmp)
	dir := filepath.Join(tmp, ".gameshelf")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "config.toml"), []byte(
		"moby_api_key = \"from-file\"\nretry_delay_ms = 10\nserver_port = 9000\n"), 0644)

	t.Setenv("GAMESHELF_MOBY_API_KEY", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MobyAPIKey != "from-env" {
		t.Errorf("env should override file, got %q", cfg.MobyAPIKey)
	}
	if cfg.RetryDelay.Milliseconds() != 10 {
		t.Errorf("retry delay = %v", cfg.RetryDelay)
	}
	if cfg.ServerPort != 9000 {
		t.Errorf("server port = %d", cfg.ServerPort)
	}
}

func TestEncryptionKey(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.EncryptionKey(); err == nil {
		t.Error("expected error for unset key")
	}

	cfg.encryptionKey = "not hex"
	if _, err := cfg.EncryptionKey(); err == nil {
		t.Error("expected error for invalid hex")
	}

	cfg.encryptionKey = "00112233445566778899aabbccddeeff"
	key, err := cfg.EncryptionKey()
	if err != nil {
		t.Fatalf("decode key: %v", err)
	}
	if len(key) != 16 {
		t.Errorf("key length = %d", len(key))
	}
}
