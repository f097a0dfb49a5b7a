package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/refocus-cli/internal/adapters/repo/document"
	"github.com/spf13/viper"
)

const (
	configName      = "config"
	configType      = "toml"
	configDir       = ".refocus"
	envPrefix       = "REFOCUS"
	logLevelKey     = "log.level"
	logFormatKey    = "log.format"
	metricsFileKey  = "metrics.textfile"
	defaultDataFile = "user_data.json"
)

// loadConfig reads ~/.refocus/config.toml when present and lets REFOCUS_*
// environment variables override any key (store.path -> REFOCUS_STORE_PATH).
func loadConfig() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(document.PathKey, filepath.Join(homeDir, configDir, defaultDataFile))
	cfg.SetDefault(document.FormatKey, "")
	cfg.SetDefault(logLevelKey, "warn")
	cfg.SetDefault(logFormatKey, "text")
	cfg.SetDefault(metricsFileKey, "")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func newLogger(cfg *viper.Viper, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.GetString(logLevelKey))}

	if strings.EqualFold(strings.TrimSpace(cfg.GetString(logFormatKey)), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
