package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

const (
	DefaultMaxPlayers = 8
	MaxPlayerLimit    = 255

	defaultMapPath    = "maps/example.json"
	defaultTCPAddr    = ":8888"
	defaultHTTPAddr   = ":8080"
	defaultAdmitRate  = 2.0
	defaultAdmitBurst = 5
)

// Config holds the server settings
type Config struct {
	MapPath      string
	TCPAddr      string
	HTTPAddr     string
	SSHAddr      string
	SSHKeyPath   string
	MaxPlayers   int
	Tick         time.Duration
	State        time.Duration
	TicketSecret string
	AdmitRate    float64
	AdmitBurst   int
	LogLevel     string
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(GetEnv(key, ""), 64); err == nil {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(GetEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

// LoadDotEnv reads .env if present. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ParseConfig reads flags from args, falling back to the environment
func ParseConfig(name string, args []string) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.MapPath, "map", GetEnv("SPACE_MAP", defaultMapPath), "Path to the map file")
	fs.StringVar(&cfg.TCPAddr, "addr", GetEnv("SPACE_ADDR", defaultTCPAddr), "TCP listen address")
	fs.StringVar(&cfg.HTTPAddr, "http", GetEnv("SPACE_HTTP", defaultHTTPAddr), "HTTP/WebSocket listen address (empty disables)")
	fs.StringVar(&cfg.SSHAddr, "ssh", GetEnv("SPACE_SSH", ""), "SSH console listen address (empty disables)")
	fs.StringVar(&cfg.SSHKeyPath, "ssh-key", GetEnv("SPACE_SSH_KEY", ""), "SSH host key path")
	fs.IntVar(&cfg.MaxPlayers, "max-players", envInt("SPACE_MAX_PLAYERS", DefaultMaxPlayers), "Maximum concurrent players (1-255)")
	fs.DurationVar(&cfg.Tick, "tick", envDuration("SPACE_TICK", DefaultTickInterval), "Simulation tick interval")
	fs.DurationVar(&cfg.State, "state", envDuration("SPACE_STATE", DefaultStateInterval), "State broadcast interval")
	fs.StringVar(&cfg.TicketSecret, "ticket-secret", GetEnv("SPACE_TICKET_SECRET", ""), "HMAC secret for WebSocket join tickets")
	fs.Float64Var(&cfg.AdmitRate, "admit-rate", envFloat("SPACE_ADMIT_RATE", defaultAdmitRate), "Connection attempts per second per IP (0 disables)")
	fs.IntVar(&cfg.AdmitBurst, "admit-burst", envInt("SPACE_ADMIT_BURST", defaultAdmitBurst), "Connection attempt burst per IP")
	fs.StringVar(&cfg.LogLevel, "log-level", GetEnv("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	switch {
	case c.MaxPlayers < 1 || c.MaxPlayers > MaxPlayerLimit:
		return fmt.Errorf("max players must be 1-%d, got %d", MaxPlayerLimit, c.MaxPlayers)
	case c.Tick <= 0:
		return fmt.Errorf("tick interval must be positive, got %s", c.Tick)
	case c.State <= 0:
		return fmt.Errorf("state interval must be positive, got %s", c.State)
	case c.TCPAddr == "":
		return errors.New("tcp address is required")
	case c.AdmitRate < 0:
		return fmt.Errorf("admit rate must not be negative, got %v", c.AdmitRate)
	case c.AdmitRate > 0 && c.AdmitBurst < 1:
		return fmt.Errorf("admit burst must be at least 1, got %d", c.AdmitBurst)
	}
	return nil
}

// HubConfig derives the admission settings
func (c Config) HubConfig() HubConfig {
	limit := rate.Inf
	if c.AdmitRate > 0 {
		limit = rate.Limit(c.AdmitRate)
	}
	return HubConfig{
		MaxPlayers: c.MaxPlayers,
		AdmitRate:  limit,
		AdmitBurst: c.AdmitBurst,
	}
}
