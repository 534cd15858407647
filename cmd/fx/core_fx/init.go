// cmd/fx/core_fx/init.go
package core_fx

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Module = fx.Provide(
	ProvideLogger,
)

// ProvideLogger builds the application logger from LOG_LEVEL and LOG_FORMAT
// environment variables. Production JSON output is the default.
func ProvideLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if getEnvWithDefault("LOG_FORMAT", "json") == "console" {
		cfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(getEnvWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
