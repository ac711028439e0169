package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromString(t *testing.T, content string) *Config {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	cfg, err := Load(p)
	require.NoError(t, err)
	return cfg
}

func TestLoad_Valid(t *testing.T) {
	yaml := `
scorecard:
  server_endpoint: "https://lanes.example.com"
  timeout: 3s
  max_retries: 2
  strict: true
  auth:
    mode: apikey
    header: x-lane-key
    key_env: LANE_KEY
  tls:
    insecure_skip_verify: true
`
	cfg := loadFromString(t, yaml)
	s := cfg.Scorecard

	assert.Equal(t, "https://lanes.example.com", s.ServerEndpoint)
	assert.Equal(t, 3*time.Second, s.Timeout)
	assert.Equal(t, 2, s.MaxRetries)
	assert.True(t, s.Strict)
	assert.Equal(t, "x-lane-key", s.Auth.EffectiveHeader())
	assert.True(t, s.TLS.InsecureSkipVerify)
}

func TestLoad_Defaults(t *testing.T) {
	// Only the server section is present; every scorecard field is defaulted.
	cfg := loadFromString(t, "server:\n  http_port: 9000\n")
	s := cfg.Scorecard

	assert.Equal(t, DefaultServerEndpoint, s.ServerEndpoint)
	assert.Equal(t, DefaultTimeout, s.Timeout)
	assert.Equal(t, DefaultMaxRetries, s.MaxRetries)
	assert.Equal(t, DefaultHeader, s.Auth.EffectiveHeader())
}

func TestDefault_MatchesEmptyFile(t *testing.T) {
	cfg := loadFromString(t, "")
	assert.Equal(t, *cfg, *Default())
}

func TestKey_ResolvesFromEnv(t *testing.T) {
	t.Setenv("TEST_SCORECARD_KEY", "s3cret")
	a := AuthConfig{Mode: "apikey", KeyEnv: "TEST_SCORECARD_KEY"}
	assert.Equal(t, "s3cret", a.Key())
	assert.Empty(t, AuthConfig{}.Key(), "no key_env")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"endpoint without scheme", "scorecard:\n  server_endpoint: localhost:8080\n"},
		{"grpc endpoint", "scorecard:\n  server_endpoint: grpc://localhost:50051\n"},
		{"zero timeout", "scorecard:\n  timeout: 0s\n"},
		{"negative retries", "scorecard:\n  max_retries: -1\n"},
		{"unknown auth mode", "scorecard:\n  auth:\n    mode: oauth2\n"},
		{"mtls without cert", "scorecard:\n  auth:\n    mode: mtls\n"},
		{"negative rate limit", "scorecard:\n  rate_limit: -2\n"},
		{"bad yaml", "scorecard: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(p, []byte(tc.yaml), 0o600))
			_, err := Load(p)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}
