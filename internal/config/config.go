package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string `env:"APP_PORT" env-default:"3000"`
	AppEnv   string `env:"APP_ENV" env-default:"development"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	AuthAPIBaseURL string        `env:"AUTH_API_BASE_URL" env-default:"http://localhost:8080"`
	AuthAPITimeout time.Duration `env:"AUTH_API_TIMEOUT" env-default:"10s"`

	LoginRedirectDelay time.Duration `env:"LOGIN_REDIRECT_DELAY" env-default:"2s"`
	DashboardPath      string        `env:"DASHBOARD_PATH" env-default:"/dashboard"`
	FlowIdleTTL        time.Duration `env:"FLOW_IDLE_TTL" env-default:"30m"`
	FlowMaxLive        int           `env:"FLOW_MAX_LIVE" env-default:"10000"` // per flow kind

	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" env-default:"5"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" env-default:"10"`
	MountRateRPS   float64  `env:"MOUNT_RATE_LIMIT_RPS" env-default:"2"`
	MountRateBurst int      `env:"MOUNT_RATE_LIMIT_BURST" env-default:"20"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" env-separator:","` // IPs or CIDRs allowed to set X-Forwarded-For
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-separator:"," env-default:"*"` // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if !strings.HasPrefix(cfg.DashboardPath, "/") {
		return nil, fmt.Errorf("DASHBOARD_PATH must be an absolute path, got %q", cfg.DashboardPath)
	}
	if cfg.FlowMaxLive <= 0 {
		return nil, fmt.Errorf("FLOW_MAX_LIVE must be positive")
	}
	if cfg.LoginRedirectDelay < 0 {
		return nil, fmt.Errorf("LOGIN_REDIRECT_DELAY must not be negative")
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
