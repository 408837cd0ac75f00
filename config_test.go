package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig("test", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.MaxPlayers != DefaultMaxPlayers {
		t.Errorf("expected %d max players, got %d", DefaultMaxPlayers, cfg.MaxPlayers)
	}
	if cfg.Tick != DefaultTickInterval || cfg.State != DefaultStateInterval {
		t.Errorf("expected default intervals, got %s and %s", cfg.Tick, cfg.State)
	}
	if cfg.TCPAddr != defaultTCPAddr {
		t.Errorf("expected %s, got %s", defaultTCPAddr, cfg.TCPAddr)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("SPACE_MAX_PLAYERS", "3")
	t.Setenv("SPACE_TICK", "20ms")
	cfg, err := ParseConfig("test", []string{"-state", "50ms"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.MaxPlayers != 3 {
		t.Errorf("expected 3 max players, got %d", cfg.MaxPlayers)
	}
	if cfg.Tick != 20*time.Millisecond {
		t.Errorf("expected 20ms tick, got %s", cfg.Tick)
	}
	if cfg.State != 50*time.Millisecond {
		t.Errorf("expected 50ms state, got %s", cfg.State)
	}

	// Flags win over the environment
	cfg, err = ParseConfig("test", []string{"-max-players", "5"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.MaxPlayers != 5 {
		t.Errorf("expected 5 max players, got %d", cfg.MaxPlayers)
	}
}

func TestConfigValidate(t *testing.T) {
	base := Config{TCPAddr: ":0", MaxPlayers: 8, Tick: time.Millisecond, State: time.Millisecond}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	bad := []func(*Config){
		func(c *Config) { c.MaxPlayers = 0 },
		func(c *Config) { c.MaxPlayers = 256 },
		func(c *Config) { c.Tick = 0 },
		func(c *Config) { c.State = -time.Second },
		func(c *Config) { c.TCPAddr = "" },
		func(c *Config) { c.AdmitRate = -1 },
		func(c *Config) { c.AdmitRate = 1; c.AdmitBurst = 0 },
	}
	for i, mutate := range bad {
		cfg := base
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestConfigHubConfig(t *testing.T) {
	cfg := Config{MaxPlayers: 4, AdmitRate: 0}
	if hc := cfg.HubConfig(); hc.AdmitRate != rate.Inf {
		t.Errorf("expected unlimited admission, got %v", hc.AdmitRate)
	}
	cfg.AdmitRate = 2
	cfg.AdmitBurst = 3
	hc := cfg.HubConfig()
	if hc.AdmitRate != 2 || hc.AdmitBurst != 3 || hc.MaxPlayers != 4 {
		t.Errorf("unexpected hub config %+v", hc)
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("expected missing file to be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	os.WriteFile(path, []byte("SPACE_TEST_DOTENV=loaded\n"), 0o644)
	t.Setenv("SPACE_TEST_DOTENV", "")
	os.Unsetenv("SPACE_TEST_DOTENV")
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := GetEnv("SPACE_TEST_DOTENV", "unset"); got != "loaded" {
		t.Errorf("expected loaded, got %s", got)
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger(os.Stderr, "debug"); err != nil {
		t.Errorf("expected debug level to parse, got %v", err)
	}
	if _, err := NewLogger(os.Stderr, "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
