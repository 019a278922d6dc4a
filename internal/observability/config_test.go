package observability

import (
	"testing"

	"github.com/smallbiznis/roommanager/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(config.Config{
		Environment: "production",
		AppVersion:  "1.2.3",
		Telemetry: config.TelemetryConfig{
			LogLevel:      "info",
			OtelEnabled:   true,
			OtlpEndpoint:  "collector:4317",
			OtlpProtocol:  "grpc",
			SamplingRatio: 5,
		},
	})

	assert.Equal(t, "roommanager", cfg.ServiceName)
	assert.False(t, cfg.Debug())

	tc := cfg.TracingConfig()
	assert.True(t, tc.Enabled)
	assert.Equal(t, "collector:4317", tc.ExporterEndpoint)
	assert.Equal(t, 1.0, tc.SamplingRatio)

	lc := cfg.LoggerConfig()
	assert.Equal(t, "1.2.3", lc.Version)
	assert.False(t, lc.Debug)
}

func TestConfigDebug(t *testing.T) {
	assert.True(t, Config{Environment: "development"}.Debug())
	assert.True(t, Config{Environment: "production", Telemetry: config.TelemetryConfig{LogLevel: "DEBUG"}}.Debug())
	assert.False(t, Config{Environment: "staging"}.Debug())
}
