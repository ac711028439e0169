package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultServerEndpoint = "http://localhost:8080"
	DefaultTimeout        = 10 * time.Second
	DefaultMaxRetries     = 5
	DefaultHeader         = "x-api-key"
)

// Config holds the client-side configuration parsed from the `scorecard:`
// section of config.yaml. The `server:` key in the same file is ignored.
type Config struct {
	Scorecard ScorecardConfig `yaml:"scorecard"`
}

// ScorecardConfig holds all scorecard CLI settings.
type ScorecardConfig struct {
	// ServerEndpoint is the base URL of tenpin-server.
	ServerEndpoint string `yaml:"server_endpoint"`

	// Auth configures how the CLI authenticates to tenpin-server.
	Auth AuthConfig `yaml:"auth"`

	// TLS holds optional TLS dial options for https endpoints.
	TLS TLSConfig `yaml:"tls"`

	// Timeout bounds a single request to the server.
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is how many times a failed submission is retried.
	// Zero disables retries.
	MaxRetries int `yaml:"max_retries"`

	// Strict validates every game before scoring or submitting it.
	Strict bool `yaml:"strict"`

	// RateLimit caps submissions per second. Zero means unlimited.
	RateLimit float64 `yaml:"rate_limit"`
}

// AuthConfig specifies how the CLI authenticates to the server.
type AuthConfig struct {
	// Mode is one of: apikey | jwt | mtls | none.
	Mode string `yaml:"mode"`

	// Header is the HTTP header name to send the key in. Default: x-api-key.
	Header string `yaml:"header"`

	// KeyEnv is the name of the environment variable that holds the key value,
	// or the bearer token when Mode == "jwt".
	KeyEnv string `yaml:"key_env"`

	// mTLS fields, used when Mode == "mtls".
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// Key returns the API key value resolved from the environment.
// Returns empty string if KeyEnv is unset or the variable is not found.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name or DefaultHeader.
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return DefaultHeader
}

// TLSConfig holds TLS dial options.
type TLSConfig struct {
	// CAFile is an optional PEM bundle used instead of the system roots.
	CAFile string `yaml:"ca_file"`

	// InsecureSkipVerify disables certificate verification.
	// Only use this for internal CAs in development environments.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return defaults()
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Scorecard: ScorecardConfig{
			ServerEndpoint: DefaultServerEndpoint,
			Timeout:        DefaultTimeout,
			MaxRetries:     DefaultMaxRetries,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	s := cfg.Scorecard
	u, err := url.Parse(s.ServerEndpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("scorecard.server_endpoint %q: want an http or https URL", s.ServerEndpoint)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("scorecard.timeout must be positive")
	}
	if s.MaxRetries < 0 {
		return fmt.Errorf("scorecard.max_retries must not be negative")
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("scorecard.rate_limit must not be negative")
	}
	switch s.Auth.Mode {
	case "apikey", "jwt", "none", "":
	case "mtls":
		if s.Auth.CertFile == "" || s.Auth.KeyFile == "" {
			return fmt.Errorf("scorecard.auth: mtls needs cert_file and key_file")
		}
	default:
		return fmt.Errorf("scorecard.auth.mode %q unknown: want apikey|jwt|mtls|none", s.Auth.Mode)
	}
	return nil
}
