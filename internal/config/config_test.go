package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAppConfig(), cfg)
}

func TestLoadAppConfigMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "advisor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: /tmp/reports\ntimeout: 5m\n"), 0o644))

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/reports", cfg.OutputDir)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	// Unset fields keep their defaults.
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "gpt-4o", cfg.ChatDeployment)
}

func TestLoadAppConfigRejectsMalformed(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("output_dir: [unclosed"), 0o644))
	_, err := LoadAppConfig(bad)
	assert.Error(t, err)

	badTimeout := filepath.Join(dir, "timeout.yaml")
	require.NoError(t, os.WriteFile(badTimeout, []byte("timeout: soon\n"), 0o644))
	_, err = LoadAppConfig(badTimeout)
	assert.ErrorContains(t, err, "invalid timeout")
}

func TestUserConfigRoundTrip(t *testing.T) {
	path := UserConfigPath(t.TempDir())

	cfg := DefaultUserConfig()
	cfg.FinancialData.Income = 7200
	cfg.ProductData.ProductName = "Solar Kettle"
	cfg.ResearchTopic = "tidal power"

	require.NoError(t, SaveUserConfig(path, cfg))

	loaded, fromFile := LoadUserConfig(path)
	assert.True(t, fromFile)
	assert.Equal(t, cfg, loaded)
}

func TestLoadUserConfigFallsBackSilently(t *testing.T) {
	dir := t.TempDir()

	// Absent file.
	cfg, fromFile := LoadUserConfig(UserConfigPath(dir))
	assert.False(t, fromFile)
	assert.Equal(t, DefaultUserConfig(), cfg)

	// Corrupt file.
	path := UserConfigPath(dir)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	cfg, fromFile = LoadUserConfig(path)
	assert.False(t, fromFile)
	assert.Equal(t, DefaultUserConfig(), cfg)
}

func TestResetUserConfigRestoresDefaults(t *testing.T) {
	path := UserConfigPath(t.TempDir())

	cfg := DefaultUserConfig()
	cfg.WebsiteURL = "https://example.com"
	require.NoError(t, SaveUserConfig(path, cfg))

	require.NoError(t, ResetUserConfig(path))
	loaded, fromFile := LoadUserConfig(path)
	assert.False(t, fromFile)
	assert.Equal(t, DefaultUserConfig(), loaded)

	// Resetting again is a no-op, not an error.
	require.NoError(t, ResetUserConfig(path))
}

func TestBuiltInDefaults(t *testing.T) {
	cfg := DefaultUserConfig()

	assert.InDelta(t, 5000, cfg.FinancialData.Income, 1e-9)
	assert.InDelta(t, 3000, cfg.FinancialData.Expenses.Total(), 1e-9)
	assert.InDelta(t, 0.18, cfg.FinancialData.Debts.CreditCard.InterestRate, 1e-9)
	assert.Equal(t, "New Product", cfg.ProductData.ProductName)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Alan_Turing", cfg.WebsiteURL)
	assert.Equal(t, "Artificial intelligence", cfg.ResearchTopic)
}
