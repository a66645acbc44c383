package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sedmice/internal/engine"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, engine.DefaultRewards(), cfg.Rewards)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("LOG_LEVEL", "")
	path := writeFile(t, "cfg.json", `{
		"addr": ":9000",
		"opponent": "greedy",
		"rewards": {"legal_move": 0, "illegal_move": -100, "trick_bonus": 5, "win_bonus": 0, "loss_penalty": 0}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "greedy", cfg.Opponent)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, engine.ConsoleRewards(), cfg.Rewards)
}

func TestEnvironmentWins(t *testing.T) {
	t.Setenv("ADDR", ":7000")
	t.Setenv("LOG_LEVEL", "debug")
	path := writeFile(t, "cfg.json", `{"addr": ":9000"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.json", `{`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "opp.json", `{"opponent": "minimax"}`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "rw.json", `{"rewards": {"illegal_move": 5}}`))
	assert.Error(t, err)
}

func TestScript(t *testing.T) {
	cfg := Default()
	src, err := cfg.Script()
	require.NoError(t, err)
	assert.Empty(t, src)

	cfg.OpponentScript = writeFile(t, "p.lua", `function choose(s) return "END" end`)
	src, err = cfg.Script()
	require.NoError(t, err)
	assert.Contains(t, src, "choose")
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "debug"
	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	cfg.LogLevel = "loud"
	_, err = cfg.NewLogger()
	assert.Error(t, err)
}
