// Package config loads the service configuration.
//
// Values come from three layers, later ones winning:
//   - built-in defaults (the service runs with no configuration at all)
//   - environment variables prefixed with LVR_ (a `.env` file is loaded
//     into the environment first, if present)
//   - the bare PORT variable, for platforms that only set that one
//
// The result is validated so the process fails fast on bad values.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by LoadConfig.
//
// Nesting uses a double underscore:
//
//	LVR_SERVER__PORT           -> server.port
//	LVR_RATE_LIMIT__ENABLED    -> rate_limit.enabled
//	LVR_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level
const EnvPrefix = "LVR_"

// Config is the root configuration object.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server. Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// RedisConfig is optional. An empty Address means no Redis.
type RedisConfig struct {
	Address string `koanf:"address" validate:"omitempty,hostname_port"`
}

// RateLimitConfig controls the per-client limiter on /api routes.
//
// With Redis configured, requests are counted in fixed windows of Window
// seconds shared by every instance, allowing Rate*Window requests per
// window. Otherwise each instance keeps an in-memory token bucket refilled
// at Rate per second up to Burst.
type RateLimitConfig struct {
	Enabled   bool    `koanf:"enabled"`
	Rate      float64 `koanf:"rate" validate:"gt=0"`
	Burst     int     `koanf:"burst" validate:"min=1"`
	ExpiresIn int     `koanf:"expires_in" validate:"min=1"`
	Window    int     `koanf:"window" validate:"min=1"`
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env":                 "development",
		"server.port":                 "3001",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},
		"rate_limit.enabled":          false,
		"rate_limit.rate":             10,
		"rate_limit.burst":            30,
		"rate_limit.expires_in":       180,
		"rate_limit.window":           60,

		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
	}
}

// LoadConfig builds the Config from defaults and the environment.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load default config: %w", err)
	}

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		key = strings.ReplaceAll(key, "__", ".")

		if strings.Contains(value, ",") {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		if err := k.Set("server.port", port); err != nil {
			return nil, fmt.Errorf("could not apply PORT: %w", err)
		}
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
