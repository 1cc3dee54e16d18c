package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestDefaults tests that the presets are valid.
func TestDefaults(t *testing.T) {
	for _, cfg := range []Config{XORDefaults(), TraderDefaults()} {
		assert.NoError(t, cfg.Validate())
	}
	assert.Nil(t, XORDefaults().Server)
	assert.Equal(t, "0.0.0.0:8000", TraderDefaults().Server.Addr)
	assert.Equal(t, 5*time.Second, TraderDefaults().Server.NotifyTimeout)
}

// TestParseNoArgs tests that defaults pass through untouched.
func TestParseNoArgs(t *testing.T) {
	cfg, err := Parse(newFlagSet(), nil, TraderDefaults())
	require.NoError(t, err)
	assert.Equal(t, TraderDefaults(), cfg)
}

// TestParseFlags tests flag overrides.
func TestParseFlags(t *testing.T) {
	args := []string{
		"-seed", "7", "-epochs", "100", "-lr", "0.1", "-hidden", "8, 3",
		"-serve", "-addr", "127.0.0.1:9000", "-notify-url", "http://example.com/hook",
		"-notify-timeout", "2s", "-data", "train.csv", "-label-col", "3",
	}
	cfg, err := Parse(newFlagSet(), args, TraderDefaults())
	require.NoError(t, err)

	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 100, cfg.Epochs)
	assert.Equal(t, 0.1, cfg.LearningRate)
	assert.Equal(t, []int{8, 3}, cfg.Hidden)
	assert.True(t, cfg.Server.Enabled)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "http://example.com/hook", cfg.Server.NotifyURL)
	assert.Equal(t, 2*time.Second, cfg.Server.NotifyTimeout)
	assert.Equal(t, "train.csv", cfg.Data)
	assert.Equal(t, 3, cfg.LabelColumn)
}

// TestParseServerFlagsNeedServerSection tests that the XOR command has no server flags.
func TestParseServerFlagsNeedServerSection(t *testing.T) {
	_, err := Parse(newFlagSet(), []string{"-serve"}, XORDefaults())
	assert.Error(t, err)
}

// TestParseYAML tests that explicit flags win over the file, which wins over defaults.
func TestParseYAML(t *testing.T) {
	path := writeYAML(t, `
seed: 3
epochs: 250
hidden: [6]
server:
  enabled: true
  notify_url: https://hooks.example.com/decisions
  notify_timeout: 750ms
`)
	cfg, err := Parse(newFlagSet(), []string{"-config", path, "-epochs", "42"}, TraderDefaults())
	require.NoError(t, err)

	assert.Equal(t, uint64(3), cfg.Seed)
	assert.Equal(t, 42, cfg.Epochs)
	assert.Equal(t, []int{6}, cfg.Hidden)
	assert.Equal(t, 0.3, cfg.LearningRate)
	assert.True(t, cfg.Server.Enabled)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr)
	assert.Equal(t, 750*time.Millisecond, cfg.Server.NotifyTimeout)

	assert.False(t, TraderDefaults().Server.Enabled)
}

// TestLoad tests file handling.
func TestLoad(t *testing.T) {
	cfg, err := Load(writeYAML(t, ""), XORDefaults())
	require.NoError(t, err)
	assert.Equal(t, XORDefaults(), cfg)

	_, err = Load(writeYAML(t, "learning_rte: 0.1\n"), XORDefaults())
	assert.Error(t, err)

	_, err = Load(writeYAML(t, "epochs: [1\n"), XORDefaults())
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), XORDefaults())
	assert.Error(t, err)

	base := TraderDefaults()
	_, err = Load(writeYAML(t, "server:\n  addr: ':1'\n"), base)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8000", base.Server.Addr)
}

// TestValidate tests rejection of invalid settings.
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative epochs", func(c *Config) { c.Epochs = -1 }},
		{"zero learning rate", func(c *Config) { c.LearningRate = 0 }},
		{"zero hidden size", func(c *Config) { c.Hidden = []int{5, 0} }},
		{"negative log interval", func(c *Config) { c.LogInterval = -5 }},
		{"serving without address", func(c *Config) { c.Server.Enabled = true; c.Server.Addr = "" }},
		{"negative timeout", func(c *Config) { c.Server.NotifyTimeout = -time.Second }},
		{"relative notify url", func(c *Config) { c.Server.NotifyURL = "hooks/decisions" }},
		{"ftp notify url", func(c *Config) { c.Server.NotifyURL = "ftp://example.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := TraderDefaults()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	_, err := Parse(newFlagSet(), []string{"-hidden", "4,x"}, XORDefaults())
	assert.Error(t, err)
	_, err = Parse(newFlagSet(), []string{"-lr", "-1"}, XORDefaults())
	assert.Error(t, err)
}
