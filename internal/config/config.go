package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Staging StagingConfig `mapstructure:"staging"`
	Enrich  EnrichConfig  `mapstructure:"enrich"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// ExposeDegraded adds a "degraded" field to the envelope when a
	// fallback payload was substituted for a real result. Off by default:
	// callers see fallback substitution as plain success.
	ExposeDegraded bool `mapstructure:"expose_degraded"`

	// StaticDir is served at / for the browser UI
	StaticDir string `mapstructure:"static_dir"`
}

type GeminiConfig struct {
	// APIKey is required; a missing key is fatal at startup, never a
	// per-request error.
	APIKey      string        `mapstructure:"api_key"`
	Endpoint    string        `mapstructure:"endpoint"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int64         `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type StagingConfig struct {
	MaxFileBytes int64 `mapstructure:"max_file_bytes"`
}

type EnrichConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.expose_degraded", false)
	v.SetDefault("server.static_dir", "web/static")

	v.SetDefault("gemini.endpoint", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.max_tokens", 2048)
	v.SetDefault("gemini.temperature", 0.2)
	v.SetDefault("gemini.timeout", 0)

	v.SetDefault("staging.max_file_bytes", int64(50*1024*1024))

	v.SetDefault("enrich.enabled", true)

	// GEMINI_API_KEY has no default; bind it so AutomaticEnv sees it
	for _, key := range []string{
		"server.host", "server.port", "server.read_timeout", "server.write_timeout",
		"server.expose_degraded", "server.static_dir",
		"gemini.api_key", "gemini.endpoint", "gemini.model",
		"gemini.max_tokens", "gemini.temperature", "gemini.timeout",
		"staging.max_file_bytes", "enrich.enabled",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
