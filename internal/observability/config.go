package observability

import (
	"strings"

	"github.com/smallbiznis/roommanager/internal/config"
	"github.com/smallbiznis/roommanager/internal/observability/logger"
	"github.com/smallbiznis/roommanager/internal/observability/metrics"
	"github.com/smallbiznis/roommanager/internal/observability/tracing"
)

// Config is the process identity plus telemetry settings shared by the
// logger, tracer and meter providers.
type Config struct {
	ServiceName string
	Environment string
	Version     string
	Telemetry   config.TelemetryConfig
}

func LoadConfig(cfg config.Config) Config {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "roommanager"
	}
	return Config{
		ServiceName: serviceName,
		Environment: strings.TrimSpace(cfg.Environment),
		Version:     strings.TrimSpace(cfg.AppVersion),
		Telemetry:   cfg.Telemetry,
	}
}

// Debug is true for debug log level and for non-production environments.
func (c Config) Debug() bool {
	if strings.EqualFold(strings.TrimSpace(c.Telemetry.LogLevel), "debug") {
		return true
	}
	switch strings.ToLower(c.Environment) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func (c Config) LoggerConfig() logger.Config {
	return logger.Config{
		ServiceName: c.ServiceName,
		Environment: c.Environment,
		Version:     c.Version,
		Level:       c.Telemetry.LogLevel,
		Format:      c.Telemetry.LogFormat,
		Debug:       c.Debug(),
	}
}

func (c Config) TracingConfig() tracing.Config {
	ratio := c.Telemetry.SamplingRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	return tracing.Config{
		Enabled:          c.Telemetry.OtelEnabled,
		ServiceName:      c.ServiceName,
		ServiceVersion:   c.Version,
		Environment:      c.Environment,
		ExporterEndpoint: c.Telemetry.OtlpEndpoint,
		ExporterProtocol: c.Telemetry.OtlpProtocol,
		SamplingRatio:    ratio,
	}
}

func (c Config) MetricsConfig() metrics.Config {
	return metrics.Config{
		Enabled:          c.Telemetry.OtelEnabled,
		ExporterEndpoint: c.Telemetry.OtlpEndpoint,
		ExporterProtocol: c.Telemetry.OtlpProtocol,
		ServiceName:      c.ServiceName,
		Environment:      c.Environment,
	}
}
