package submit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenpin/tenpin/pkg/types"
	"github.com/tenpin/tenpin/scorecard/internal/config"
)

// startTestServer serves POST /api/v1/games. The first `failures` requests
// get failStatus; later ones echo the game back scored as 300.
func startTestServer(t *testing.T, failures int32, failStatus int) (*httptest.Server, *atomic.Int32, chan http.Header) {
	t.Helper()
	var calls atomic.Int32
	headers := make(chan http.Header, 16)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != gamesPath {
			http.NotFound(w, r)
			return
		}
		n := calls.Add(1)
		headers <- r.Header.Clone()
		if n <= failures {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(failStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "lane offline"})
			return
		}
		var g types.Game
		if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.ScoredGame{
			ID: "g-1", Bowler: g.Bowler, Throws: g.Throws, Score: 300, Strikes: 12,
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, headers
}

func testClient(t *testing.T, endpoint string, retries int) *Client {
	t.Helper()
	cfg := config.Default().Scorecard
	cfg.ServerEndpoint = endpoint
	cfg.MaxRetries = retries
	c, err := New(cfg)
	require.NoError(t, err)
	c.initial = time.Millisecond
	return c
}

func perfect() types.Game {
	throws := make([]int, 12)
	for i := range throws {
		throws[i] = 10
	}
	return types.Game{Bowler: "alice", Throws: throws}
}

func TestSubmit_Success(t *testing.T) {
	srv, calls, _ := startTestServer(t, 0, 0)
	c := testClient(t, srv.URL, 3)

	sg, err := c.Submit(context.Background(), perfect())
	require.NoError(t, err)
	assert.Equal(t, 300, sg.Score)
	assert.Equal(t, "alice", sg.Bowler)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSubmit_RetriesServerErrors(t *testing.T) {
	srv, calls, _ := startTestServer(t, 2, http.StatusServiceUnavailable)
	c := testClient(t, srv.URL, 3)

	sg, err := c.Submit(context.Background(), perfect())
	require.NoError(t, err)
	assert.Equal(t, 300, sg.Score)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSubmit_GivesUpAfterMaxRetries(t *testing.T) {
	srv, calls, _ := startTestServer(t, 100, http.StatusInternalServerError)
	c := testClient(t, srv.URL, 2)

	_, err := c.Submit(context.Background(), perfect())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRejected))
	assert.Contains(t, err.Error(), "lane offline")
	assert.Equal(t, int32(3), calls.Load(), "one attempt plus two retries")
}

func TestSubmit_ClientErrorIsPermanent(t *testing.T) {
	srv, calls, _ := startTestServer(t, 100, http.StatusUnprocessableEntity)
	c := testClient(t, srv.URL, 5)

	_, err := c.Submit(context.Background(), perfect())
	require.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "422")
	assert.Equal(t, int32(1), calls.Load())
}

func TestSubmit_SendsAPIKey(t *testing.T) {
	t.Setenv("TENPIN_TEST_KEY", "s3cret")
	srv, _, headers := startTestServer(t, 0, 0)
	c := testClient(t, srv.URL, 0)
	c.cfg.Auth = config.AuthConfig{Mode: "apikey", KeyEnv: "TENPIN_TEST_KEY", Header: "x-lane-key"}

	_, err := c.Submit(context.Background(), perfect())
	require.NoError(t, err)

	h := <-headers
	assert.Equal(t, "s3cret", h.Get("x-lane-key"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
}

func TestSubmit_NoKeyWithoutAPIKeyMode(t *testing.T) {
	t.Setenv("TENPIN_TEST_KEY", "s3cret")
	srv, _, headers := startTestServer(t, 0, 0)
	c := testClient(t, srv.URL, 0)
	c.cfg.Auth = config.AuthConfig{Mode: "none", KeyEnv: "TENPIN_TEST_KEY"}

	_, err := c.Submit(context.Background(), perfect())
	require.NoError(t, err)
	assert.Empty(t, (<-headers).Get(config.DefaultHeader))
}

func TestSubmit_SendsBearerToken(t *testing.T) {
	t.Setenv("TENPIN_TEST_TOKEN", "tok.en.value")
	srv, _, headers := startTestServer(t, 0, 0)
	c := testClient(t, srv.URL, 0)
	c.cfg.Auth = config.AuthConfig{Mode: "jwt", KeyEnv: "TENPIN_TEST_TOKEN"}

	_, err := c.Submit(context.Background(), perfect())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok.en.value", (<-headers).Get("Authorization"))
}

func TestSubmit_RateLimited(t *testing.T) {
	srv, calls, _ := startTestServer(t, 0, 0)
	cfg := config.Default().Scorecard
	cfg.ServerEndpoint = srv.URL
	cfg.RateLimit = 20
	c, err := New(cfg)
	require.NoError(t, err)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.Submit(context.Background(), perfect())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond, "three games at 20/s take at least two intervals")
}

func TestSubmit_ContextCancelStopsRetries(t *testing.T) {
	srv, _, _ := startTestServer(t, 100, http.StatusBadGateway)
	c := testClient(t, srv.URL, 100)
	c.initial = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Submit(ctx, perfect())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSubmitAll_ContinuesPastRejections(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"throws is required"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(types.ScoredGame{ID: "ok", Score: 0})
	}))
	t.Cleanup(srv.Close)
	c := testClient(t, srv.URL, 0)

	results, err := c.SubmitAll(context.Background(), []types.Game{{Bowler: "a"}, {Bowler: "b", Throws: make([]int, 20)}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, "ok", results[1].Scored.ID)
}

func TestNew_MTLSMissingCert(t *testing.T) {
	cfg := config.Default().Scorecard
	cfg.Auth = config.AuthConfig{Mode: "mtls", CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"}
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_BadCAFile(t *testing.T) {
	cfg := config.Default().Scorecard
	cfg.TLS.CAFile = "/nonexistent/ca.pem"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestRetryDelay_GrowsAndCaps(t *testing.T) {
	tests := []struct {
		attempt int
		base    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{3, 8 * time.Second},
		{5, retryMax},
		{40, retryMax},
	}
	for _, tc := range tests {
		d := retryDelay(time.Second, tc.attempt)
		assert.GreaterOrEqual(t, d, tc.base*3/4, "attempt %d", tc.attempt)
		assert.LessOrEqual(t, d, tc.base*5/4, "attempt %d", tc.attempt)
	}
}
