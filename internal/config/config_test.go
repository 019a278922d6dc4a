package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testViper(t *testing.T, content string) *viper.Viper {
	t.Helper()
	dir := t.TempDir()
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "rooms.yml"), []byte(content), 0o600))
	}
	v := viper.New()
	v.SetConfigName("rooms")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)
	return v
}

func TestRoomsConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := readRoomsConfig(testViper(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "100", cfg.MinThreshold.String())
	assert.Equal(t, "EUR", cfg.Currency)
}

func TestRoomsConfig_FromFile(t *testing.T) {
	cfg, err := readRoomsConfig(testViper(t, "rooms:\n  premium:\n    minThreshold: \"123.45\"\n  currency: usd\n"))
	require.NoError(t, err)

	assert.Equal(t, "123.45", cfg.MinThreshold.String())
	assert.Equal(t, "USD", cfg.Currency)
}

func TestRoomsConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("PREMIUM_MIN_THRESHOLD", "150")

	cfg, err := readRoomsConfig(testViper(t, "rooms:\n  premium:\n    minThreshold: \"123.45\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "150", cfg.MinThreshold.String())
}

func TestRoomsConfig_RejectsInvalidValues(t *testing.T) {
	_, err := readRoomsConfig(testViper(t, "rooms:\n  premium:\n    minThreshold: \"abc\"\n"))
	assert.Error(t, err)

	_, err = readRoomsConfig(testViper(t, "rooms:\n  premium:\n    minThreshold: \"-1\"\n"))
	assert.Error(t, err)
}

func TestLoad_CustomerSources(t *testing.T) {
	t.Setenv("CUSTOMER_SOURCE", " File, database ,,")
	t.Setenv("CUSTOMERS_RELOAD_LOCK_TTL", "5s")
	t.Setenv("CUSTOMERS_WATCH", "yes")

	cfg := Load()

	assert.Equal(t, []string{SourceFile, SourceDatabase}, cfg.Customers.Sources)
	assert.True(t, cfg.UsesSource(SourceDatabase))
	assert.False(t, cfg.UsesSource(SourceS3))
	assert.Equal(t, 5*time.Second, cfg.Customers.ReloadLockTTL)
	assert.True(t, cfg.Customers.Watch)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CUSTOMER_SOURCE", "")
	t.Setenv("CUSTOMERS_RELOAD_LOCK_TTL", "nonsense")

	cfg := Load()

	assert.Equal(t, []string{SourceFile}, cfg.Customers.Sources)
	assert.Equal(t, 30*time.Second, cfg.Customers.ReloadLockTTL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestLoad_Telemetry(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "HTTP")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.5")

	tel := Load().Telemetry

	assert.Equal(t, "debug", tel.LogLevel)
	assert.True(t, tel.OtelEnabled)
	assert.Equal(t, "http", tel.OtlpProtocol)
	assert.InDelta(t, 0.5, tel.SamplingRatio, 1e-9)
}
