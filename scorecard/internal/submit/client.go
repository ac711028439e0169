package submit

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tenpin/tenpin/pkg/types"
	"github.com/tenpin/tenpin/scorecard/internal/config"
)

// gamesPath is the server endpoint games are posted to.
const gamesPath = "/api/v1/games"

// Retry delays double from retryInitial up to retryMax, each with ±25 % jitter.
const (
	retryInitial = 500 * time.Millisecond
	retryMax     = 30 * time.Second
)

// ErrRejected is wrapped by errors for games the server refused with a 4xx.
var ErrRejected = errors.New("rejected by server")

// Client posts games to tenpin-server.
type Client struct {
	cfg     config.ScorecardConfig
	http    *http.Client
	limiter *rate.Limiter // nil when unlimited
	initial time.Duration // first retry delay; injectable for tests
}

// New creates a Client for cfg, loading TLS material when configured.
func New(cfg config.ScorecardConfig) (*Client, error) {
	tlsCfg, err := tlsConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsCfg

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout, Transport: transport},
		initial: retryInitial,
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return c, nil
}

// Submit posts g and returns the server's scored game. It retries transport
// errors and 5xx responses with backoff until MaxRetries is exhausted or ctx
// is cancelled.
func (c *Client) Submit(ctx context.Context, g types.Game) (*types.ScoredGame, error) {
	body, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("submit: encode game: %w", err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("submit: rate limit: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		sg, err := c.post(ctx, body)
		if err == nil {
			slog.Debug("submit: game delivered", "id", sg.ID, "bowler", sg.Bowler, "score", sg.Score)
			return sg, nil
		}
		if errors.Is(err, ErrRejected) || ctx.Err() != nil {
			return nil, err
		}
		if attempt >= c.cfg.MaxRetries {
			return nil, fmt.Errorf("submit: giving up after %d attempts: %w", attempt+1, err)
		}

		wait := retryDelay(c.initial, attempt)
		slog.Warn("submit: send failed, will retry",
			"endpoint", c.cfg.ServerEndpoint,
			"bowler", g.Bowler,
			"err", err,
			"retry_in", wait)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// retryDelay returns how long to wait before retry attempt+1: initial doubled
// attempt times, capped at retryMax, with jitter.
func retryDelay(initial time.Duration, attempt int) time.Duration {
	d := initial
	for i := 0; i < attempt && d < retryMax; i++ {
		d *= 2
	}
	d = min(d, retryMax)
	jitter := 0.75 + rand.Float64()/2 //nolint:gosec // not crypto
	return time.Duration(float64(d) * jitter)
}

// Result is the outcome of submitting one game.
type Result struct {
	Game   types.Game
	Scored *types.ScoredGame
	Err    error
}

// SubmitAll submits games in order. A rejected game does not stop the rest;
// the returned error joins every failure.
func (c *Client) SubmitAll(ctx context.Context, games []types.Game) ([]Result, error) {
	results := make([]Result, 0, len(games))
	var errs []error
	for i, g := range games {
		sg, err := c.Submit(ctx, g)
		results = append(results, Result{Game: g, Scored: sg, Err: err})
		if err != nil {
			errs = append(errs, fmt.Errorf("game %d: %w", i+1, err))
			if ctx.Err() != nil {
				break
			}
		}
	}
	return results, errors.Join(errs...)
}

// post sends one request. 4xx responses are wrapped in ErrRejected.
func (c *Client) post(ctx context.Context, body []byte) (*types.ScoredGame, error) {
	url := strings.TrimRight(c.cfg.ServerEndpoint, "/") + gamesPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key := c.cfg.Auth.Key(); key != "" {
		switch c.cfg.Auth.Mode {
		case "apikey":
			req.Header.Set(c.cfg.Auth.EffectiveHeader(), key)
		case "jwt":
			req.Header.Set("Authorization", "Bearer "+key)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit: http post: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("submit: read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("submit: server returned HTTP %d: %s", resp.StatusCode, errorMessage(data))
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrRejected, resp.StatusCode, errorMessage(data))
	}

	var sg types.ScoredGame
	if err := json.Unmarshal(data, &sg); err != nil {
		return nil, fmt.Errorf("submit: decode response: %w", err)
	}
	return &sg, nil
}

// errorMessage extracts the "error" field of a JSON error body, falling back
// to the raw text.
func errorMessage(data []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(data))
}

// tlsConfig builds the client TLS settings, or nil to use the defaults.
func tlsConfig(cfg config.ScorecardConfig) (*tls.Config, error) {
	if cfg.Auth.Mode != "mtls" && cfg.TLS.CAFile == "" && !cfg.TLS.InsecureSkipVerify {
		return nil, nil
	}

	tlsCfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: cfg.TLS.InsecureSkipVerify, //nolint:gosec // opt-in for development CAs
	}

	if cfg.Auth.Mode == "mtls" {
		cert, err := tls.LoadX509KeyPair(cfg.Auth.CertFile, cfg.Auth.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load client cert: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	if cfg.TLS.CAFile != "" {
		caPEM, err := os.ReadFile(cfg.TLS.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read ca file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, fmt.Errorf("no valid certs in ca file %q", cfg.TLS.CAFile)
		}
		tlsCfg.RootCAs = pool
	}
	return tlsCfg, nil
}
