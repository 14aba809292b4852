package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envConfigDefaultPath = "LINGUAMEET_CONFIG_DEFAULT_PATH"
	defaultConfigName    = "config.yaml"
)

// Load resolves configuration and returns it along with the path of the
// config file that was used. Precedence: defaults < file < environment.
// When the file does not exist it is created from the defaults, so every
// deployment ends up with an editable config on disk.
func Load(logger *zerolog.Logger, explicitPath string) (Config, string, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range map[string]any{
		"addr":                cfg.Addr,
		"log_level":           cfg.LogLevel,
		"read_header_timeout": cfg.ReadHeaderTimeout,
		"shutdown_timeout":    cfg.ShutdownTimeout,
		"allowed_origins":     cfg.AllowedOrigins,
		"agora_app_id":        cfg.AgoraAppID,
		"upstreams":           cfg.Upstreams,
	} {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("LINGUAMEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := configPath(explicitPath)
	v.SetConfigFile(path)

	switch err := v.ReadInConfig(); {
	case err == nil:
	case isMissingConfig(err):
		if writeErr := writeDefaultConfig(path, cfg); writeErr != nil {
			logger.Warn().Err(writeErr).Str("path", path).Msg("failed to write default config")
		} else {
			logger.Info().Str("path", path).Msg("created default config")
			if readErr := v.ReadInConfig(); readErr != nil {
				logger.Warn().Err(readErr).Str("path", path).Msg("failed to read freshly written config")
			}
		}
	default:
		return cfg, path, fmt.Errorf("read config: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, path, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, path, nil
}

func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func configPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	if base := os.Getenv(envConfigDefaultPath); base != "" {
		if err := os.MkdirAll(base, 0o755); err == nil {
			return filepath.Join(base, defaultConfigName)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return defaultConfigName
	}
	return filepath.Join(cwd, defaultConfigName)
}

func writeDefaultConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
