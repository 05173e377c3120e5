// Package config loads process configuration from a .env file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the agent configuration shared by the TUI and the headless
// agent.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"POKEMON_AGENT_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	ServerURL    string `env:"POKEMON_AGENT_SERVER_URL" envDefault:"http://localhost:5000/api"`

	PlayerEngine  string        `env:"POKEMON_AGENT_PLAYER_ENGINE" envDefault:"rules"`
	PokemonEngine string        `env:"POKEMON_AGENT_POKEMON_ENGINE" envDefault:"rules"`
	DualMode      bool          `env:"POKEMON_AGENT_DUAL_MODE" envDefault:"false"`
	TickInterval  time.Duration `env:"POKEMON_AGENT_TICK_INTERVAL" envDefault:"1s"`
	DecideTimeout time.Duration `env:"POKEMON_AGENT_DECIDE_TIMEOUT" envDefault:"30s"`
	// Seed drives the fallback explorer; 0 picks a random seed.
	Seed uint64 `env:"POKEMON_AGENT_SEED" envDefault:"0"`

	JournalPath  string `env:"POKEMON_AGENT_JOURNAL_PATH"`
	SaveDir      string `env:"POKEMON_AGENT_SAVE_DIR" envDefault:".saves"`
	LayoutPath   string `env:"POKEMON_AGENT_LAYOUT"`
	OTelEndpoint string `env:"POKEMON_AGENT_OTEL_ENDPOINT"`

	// LocalDump plays a RAM dump in-process instead of a remote server.
	LocalDump string
}

// ServerConfig holds the game server configuration.
type ServerConfig struct {
	Addr         string `env:"POKEMON_AGENT_ADDR" envDefault:":5000"`
	RAMDump      string `env:"POKEMON_AGENT_RAM_DUMP"`
	ScreenPath   string `env:"POKEMON_AGENT_SCREEN_PATH"`
	LayoutPath   string `env:"POKEMON_AGENT_LAYOUT"`
	OTelEndpoint string `env:"POKEMON_AGENT_OTEL_ENDPOINT"`
}

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding the environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadConfig loads the agent configuration from .env and the environment.
func LoadConfig() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseConfig parses .env, environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Game server API base URL")
	fs.StringVar(&cfg.PlayerEngine, "player", cfg.PlayerEngine, "Engine for exploration")
	fs.StringVar(&cfg.PokemonEngine, "pokemon", cfg.PokemonEngine, "Engine for battles in dual mode")
	fs.BoolVar(&cfg.DualMode, "dual", cfg.DualMode, "Use separate engines for exploration and battles")
	fs.DurationVar(&cfg.TickInterval, "interval", cfg.TickInterval, "Minimum time between actions")
	fs.DurationVar(&cfg.DecideTimeout, "timeout", cfg.DecideTimeout, "Deadline for one engine decision")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the fallback explorer (0 = random)")
	fs.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "SQLite tick journal path (empty disables)")
	fs.StringVar(&cfg.SaveDir, "save-dir", cfg.SaveDir, "Directory for saved runs")
	fs.StringVar(&cfg.LayoutPath, "layout", cfg.LayoutPath, "Memory layout YAML file")
	fs.StringVar(&cfg.LocalDump, "local-dump", "", "Play a RAM dump in-process instead of the game server")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return *cfg, nil
}

// Validate rejects values the agent cannot run with.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.DecideTimeout < 0 {
		return fmt.Errorf("decide timeout must not be negative, got %s", c.DecideTimeout)
	}
	if c.LocalDump == "" && c.ServerURL == "" {
		return fmt.Errorf("server URL is required")
	}
	return nil
}

// ParseServerConfig parses .env, environment and flags into a ServerConfig.
func ParseServerConfig(fs *flag.FlagSet, args []string) (ServerConfig, error) {
	if err := LoadDotEnv(); err != nil {
		return ServerConfig{}, err
	}
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	fs.StringVar(&cfg.RAMDump, "ram", cfg.RAMDump, "RAM dump to serve")
	fs.StringVar(&cfg.ScreenPath, "screen", cfg.ScreenPath, "PNG served as the current frame")
	fs.StringVar(&cfg.LayoutPath, "layout", cfg.LayoutPath, "Memory layout YAML file")
	if err := fs.Parse(args); err != nil {
		return ServerConfig{}, err
	}
	if cfg.Addr == "" {
		return ServerConfig{}, fmt.Errorf("listen address is required")
	}
	return cfg, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
