package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveGame(t *testing.T) {
	c := New("tenpin")
	c.ObserveGame(133, time.Microsecond)
	c.ObserveGame(300, time.Microsecond)

	if got := testutil.ToFloat64(c.gamesScored.WithLabelValues(ResultOK)); got != 2 {
		t.Errorf("games ok: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.gamesScored.WithLabelValues(ResultInvalid)); got != 0 {
		t.Errorf("games invalid: got %v, want 0", got)
	}
	if got := testutil.ToFloat64(c.perfectGames); got != 1 {
		t.Errorf("perfect games: got %v, want 1", got)
	}
	if n := testutil.CollectAndCount(c.gameScore); n != 2 {
		t.Errorf("game score series: got %d, want 2", n)
	}
}

func TestObserveInvalid(t *testing.T) {
	c := New("tenpin")
	c.ObserveInvalid()
	if got := testutil.ToFloat64(c.gamesScored.WithLabelValues(ResultInvalid)); got != 1 {
		t.Errorf("games invalid: got %v, want 1", got)
	}
}

func TestGameScoreBuckets(t *testing.T) {
	c := New("tenpin")
	c.ObserveGame(300, 0)

	expected := `
# HELP tenpin_perfect_games_total Games scored at 300.
# TYPE tenpin_perfect_games_total counter
tenpin_perfect_games_total 1
`
	if err := testutil.CollectAndCompare(c.perfectGames, strings.NewReader(expected)); err != nil {
		t.Fatal(err)
	}

	mfs, err := c.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != "tenpin_game_score" {
			continue
		}
		buckets := mf.GetMetric()[0].GetHistogram().GetBucket()
		if len(buckets) != 11 {
			t.Fatalf("buckets: got %d, want 11", len(buckets))
		}
		if lo, hi := buckets[0].GetUpperBound(), buckets[10].GetUpperBound(); lo != 0 || hi != 300 {
			t.Errorf("bounds: got %v..%v, want 0..300", lo, hi)
		}
		if n := buckets[10].GetCumulativeCount(); n != 1 {
			t.Errorf("le=300: got %d, want 1", n)
		}
		if n := buckets[9].GetCumulativeCount(); n != 0 {
			t.Errorf("le=270: got %d, want 0", n)
		}
		return
	}
	t.Fatal("tenpin_game_score not gathered")
}

func TestAnnouncementsAndClients(t *testing.T) {
	c := New("tenpin")
	c.ObserveAnnouncement("perfect")
	c.ObserveAnnouncement("perfect")
	c.SetWSClients(3)

	if got := testutil.ToFloat64(c.announcements.WithLabelValues("perfect")); got != 2 {
		t.Errorf("announcements: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.wsClients); got != 3 {
		t.Errorf("ws clients: got %v, want 3", got)
	}
}

func TestNamespace(t *testing.T) {
	c := New("lanes")
	c.ObserveGame(100, 0)

	n, err := testutil.GatherAndCount(c.Registry(), "lanes_games_scored_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	// ok and invalid series are both exposed.
	if n != 2 {
		t.Errorf("series: got %d, want 2", n)
	}
}

func TestHandler(t *testing.T) {
	c := New("tenpin")
	c.ObserveGame(200, time.Millisecond)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	for _, want := range []string{
		`tenpin_games_scored_total{result="ok"} 1`,
		"tenpin_scoring_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("body: missing %q", want)
		}
	}
}
