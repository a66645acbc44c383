package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"sedmice/internal/bots"
	"sedmice/internal/engine"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "SEDMICE_CONFIG"

type Config struct {
	Addr     string `json:"addr"`
	LogLevel string `json:"log_level"`

	// Opponent is the bot kind for the scripted seat: random, greedy or lua.
	Opponent string `json:"opponent"`

	// OpponentScript is a Lua file path, read when Opponent is "lua". Empty
	// selects the bundled script.
	OpponentScript string         `json:"opponent_script"`
	AllowOrigins   []string       `json:"allow_origins"`
	Rewards        engine.Rewards `json:"rewards"`
}

func Default() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
		Opponent: bots.KindRandom,
		Rewards:  engine.DefaultRewards(),
	}
}

// Load reads the JSON file at path over the defaults, then applies ADDR and
// LOG_LEVEL from the environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv loads the file named by SEDMICE_CONFIG, if any.
func FromEnv() (Config, error) {
	return Load(os.Getenv(EnvPath))
}

func (c Config) Validate() error {
	switch c.Opponent {
	case "", bots.KindRandom, bots.KindGreedy, bots.KindLua:
	default:
		return fmt.Errorf("unknown opponent %q", c.Opponent)
	}
	if c.Rewards.IllegalMove > 0 {
		return errors.New("illegal move reward must not be positive")
	}
	return nil
}

// Script returns the Lua source for the opponent, or "" for the bundled one.
func (c Config) Script() (string, error) {
	if c.OpponentScript == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.OpponentScript)
	if err != nil {
		return "", fmt.Errorf("failed to read opponent script: %w", err)
	}
	return string(data), nil
}

// NewLogger builds a production zap logger at the configured level.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build()
}
