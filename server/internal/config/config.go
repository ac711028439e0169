package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AnnouncementsConfig holds announcement rules and webhook delivery targets.
type AnnouncementsConfig struct {
	Rules    []AnnouncementRule `yaml:"rules"`
	Webhooks []WebhookConfig    `yaml:"webhooks"`
}

// AnnouncementRule defines one condition checked against every scored game.
type AnnouncementRule struct {
	// Name is the human-readable rule identifier, used as the cooldown key.
	Name string `yaml:"name"`

	// Condition is a simple expression: "score >= 300", "strikes >= 9",
	// "opens == 0", "clean == true".
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info.
	Severity string `yaml:"severity"`

	// Cooldown suppresses repeat announcements for the same bowler.
	// Zero means every matching game is announced.
	Cooldown time.Duration `yaml:"cooldown"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: teams | slack | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable that holds the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// Default values for the server configuration.
const (
	DefaultHTTPPort          = 8080
	DefaultLogLevel          = "info"
	DefaultGameTTL           = 24 * time.Hour
	DefaultStandingsWindow   = 12
	DefaultBroadcastInterval = 5 * time.Second
	DefaultMetricsNamespace  = "tenpin"
	DefaultTokenTTL          = 30 * 24 * time.Hour
)

// Config holds the server-side configuration parsed from the `server:` section
// of config.yaml. The `scorecard:` key in the same file is ignored.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all server-side settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API, WebSocket hub and /metrics listen on.
	HTTPPort int `yaml:"http_port"`

	// LogLevel is one of: debug | info | warn | error. Applied on hot reload.
	LogLevel string `yaml:"log_level"`

	// Auth configures how the server authenticates incoming REST clients.
	Auth AuthConfig `yaml:"auth"`

	// Games controls scoring and retention of submitted games.
	Games GamesConfig `yaml:"games"`

	// Standings controls the per-bowler rolling window.
	Standings StandingsConfig `yaml:"standings"`

	// Broadcast controls the WebSocket push interval.
	Broadcast BroadcastConfig `yaml:"broadcast"`

	// Metrics controls the Prometheus metric names.
	Metrics MetricsConfig `yaml:"metrics"`

	// RateLimit bounds requests per client IP on the REST API.
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// Announcements holds rule definitions and webhook delivery targets.
	Announcements AnnouncementsConfig `yaml:"announcements"`
}

// AuthConfig controls client authentication on the server side.
type AuthConfig struct {
	// Mode is one of: apikey | jwt | none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the expected
	// API key, or the HS256 signing secret when Mode == "jwt".
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header name to read the key from.
	// Defaults to "x-api-key" if empty.
	Header string `yaml:"header"`

	// TokenTTL is the lifetime of tokens minted with -issue-token. Default: 30 days.
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// GamesConfig controls how submitted games are scored and retained.
type GamesConfig struct {
	// TTL is how long a scored game stays in the in-memory store. Default: 24h.
	TTL time.Duration `yaml:"ttl"`

	// Strict rejects games that are not legal completed games instead of
	// scoring them leniently.
	Strict bool `yaml:"strict"`
}

// StandingsConfig controls the per-bowler rolling window.
type StandingsConfig struct {
	// Window is the number of most recent games averaged per bowler. Default: 12.
	Window int `yaml:"window"`
}

// BroadcastConfig controls the WebSocket hub.
type BroadcastConfig struct {
	// Interval between pushes of recent games to connected clients. Default: 5s.
	Interval time.Duration `yaml:"interval"`
}

// MetricsConfig controls Prometheus metric naming.
type MetricsConfig struct {
	// Namespace prefixes every metric name. Default: "tenpin".
	Namespace string `yaml:"namespace"`
}

// RateLimitConfig controls per-client request limits.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate allowed per client IP.
	// Zero disables rate limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the number of requests a client may make at once. Default: 1
	// when a rate is set.
	Burst int `yaml:"burst"`
}

// Enabled reports whether a rate limit is configured.
func (r RateLimitConfig) Enabled() bool { return r.RequestsPerSecond > 0 }

// Load reads and parses the config file at path, returning the server configuration.
// Missing fields are filled with sensible defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("server config: parse yaml: %w", err)
	}
	if cfg.Server.RateLimit.Enabled() && cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = 1
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return cfg, nil
}

// Level converts LogLevel to a slog.Level. Unknown values map to Info.
func (s ServerConfig) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:  DefaultHTTPPort,
			LogLevel:  DefaultLogLevel,
			Games:     GamesConfig{TTL: DefaultGameTTL},
			Standings: StandingsConfig{Window: DefaultStandingsWindow},
			Broadcast: BroadcastConfig{Interval: DefaultBroadcastInterval},
			Metrics:   MetricsConfig{Namespace: DefaultMetricsNamespace},
			Auth:      AuthConfig{TokenTTL: DefaultTokenTTL},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	s := cfg.Server
	if s.HTTPPort <= 0 || s.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", s.HTTPPort)
	}
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("server.log_level %q unknown: want debug|info|warn|error", s.LogLevel)
	}
	switch s.Auth.Mode {
	case "apikey", "jwt", "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|jwt|none", s.Auth.Mode)
	}
	if s.Auth.TokenTTL <= 0 {
		return fmt.Errorf("server.auth.token_ttl must be positive")
	}
	if s.RateLimit.RequestsPerSecond < 0 || s.RateLimit.Burst < 0 {
		return fmt.Errorf("server.rate_limit values must not be negative")
	}
	if s.Games.TTL <= 0 {
		return fmt.Errorf("server.games.ttl must be positive")
	}
	if s.Standings.Window <= 0 {
		return fmt.Errorf("server.standings.window must be positive")
	}
	if s.Broadcast.Interval <= 0 {
		return fmt.Errorf("server.broadcast.interval must be positive")
	}
	for i, r := range s.Announcements.Rules {
		if r.Name == "" {
			return fmt.Errorf("announcements.rules[%d]: name is required", i)
		}
		if len(strings.Fields(r.Condition)) != 3 {
			return fmt.Errorf("announcements.rules[%d] %q: condition %q: want \"field op value\"", i, r.Name, r.Condition)
		}
		switch r.Severity {
		case "critical", "warning", "info", "":
		default:
			return fmt.Errorf("announcements.rules[%d] %q: unknown severity %q", i, r.Name, r.Severity)
		}
	}
	for i, w := range s.Announcements.Webhooks {
		switch w.Type {
		case "slack", "teams", "http":
		default:
			return fmt.Errorf("announcements.webhooks[%d]: unknown type %q", i, w.Type)
		}
	}
	return nil
}
