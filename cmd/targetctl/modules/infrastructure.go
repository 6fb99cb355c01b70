// Package modules holds the fx modules that assemble targetctl.
package modules

import (
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/memohai/targetresolver/internal/config"
	"github.com/memohai/targetresolver/internal/logger"
)

// ConfigPath is the TOML file to load; empty falls back to $CONFIG_PATH, then config.toml.
type ConfigPath string

var InfraModule = fx.Module(
	"infra",
	fx.Provide(
		provideConfig,
		provideLogger,
	),
)

// ---------------------------------------------------------------------------
// infrastructure providers
// ---------------------------------------------------------------------------

func provideConfig(path ConfigPath) (config.Config, error) {
	cfgPath := string(path)
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

// FxLogger routes fx lifecycle events to the application logger at the given level.
func FxLogger(level slog.Level) fx.Option {
	return fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
		l := &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
		l.UseLogLevel(level)
		return l
	})
}
