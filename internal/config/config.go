package config

import "time"

// Config holds gateway configuration values.
type Config struct {
	Addr              string            `mapstructure:"addr" yaml:"addr"`
	LogLevel          string            `mapstructure:"log_level" yaml:"log_level"`
	ReadHeaderTimeout time.Duration     `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration     `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	AllowedOrigins    []string          `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AgoraAppID        string            `mapstructure:"agora_app_id" yaml:"agora_app_id"`
	Upstreams         map[string]string `mapstructure:"upstreams" yaml:"upstreams"`
}

// Default returns configuration with the platform's standard service
// ports. Every value can be overridden by file or environment.
func Default() Config {
	return Config{
		Addr:              ":3011",
		LogLevel:          "info",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		AllowedOrigins:    []string{"http://localhost:4200"},
		Upstreams: map[string]string{
			"auth":          "http://localhost:3001",
			"mindmap":       "http://localhost:3002",
			"notifications": "http://localhost:3003",
			"lessons":       "http://localhost:3004",
			"courses":       "http://localhost:3004",
			"vocabulary":    "http://localhost:3005",
			"statistics":    "http://localhost:3006",
			"files":         "http://localhost:3008",
			"payments":      "http://localhost:3010",
		},
	}
}
