package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tenpin/tenpin/pkg/bowling"
)

// Result label values for GamesScored.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
)

// Collector owns every server metric and the registry they live in.
type Collector struct {
	registry *prometheus.Registry

	gamesScored   *prometheus.CounterVec
	gameScore     prometheus.Histogram
	scoringTime   prometheus.Histogram
	perfectGames  prometheus.Counter
	announcements *prometheus.CounterVec
	wsClients     prometheus.Gauge
}

// New registers the server metrics under namespace on a fresh registry.
func New(namespace string) *Collector {
	if namespace == "" {
		namespace = "tenpin"
	}
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		gamesScored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_scored_total",
			Help:      "Games submitted for scoring, by result (ok or invalid).",
		}, []string{"result"}),
		gameScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "game_score",
			Help:      "Distribution of final game scores.",
			Buckets:   prometheus.LinearBuckets(0, 30, bowling.PerfectScore/30+1),
		}),
		scoringTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoring_duration_seconds",
			Help:      "Time spent scoring one game.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}),
		perfectGames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "perfect_games_total",
			Help:      "Games scored at 300.",
		}),
		announcements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "announcements_total",
			Help:      "Announcements fired, by rule.",
		}, []string{"rule"}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_clients",
			Help:      "Connected WebSocket clients.",
		}),
	}

	reg.MustRegister(
		c.gamesScored,
		c.gameScore,
		c.scoringTime,
		c.perfectGames,
		c.announcements,
		c.wsClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Expose both result series from the first scrape.
	c.gamesScored.WithLabelValues(ResultOK)
	c.gamesScored.WithLabelValues(ResultInvalid)
	return c
}

// ObserveGame records one successfully scored game.
func (c *Collector) ObserveGame(score int, took time.Duration) {
	c.gamesScored.WithLabelValues(ResultOK).Inc()
	c.gameScore.Observe(float64(score))
	c.scoringTime.Observe(took.Seconds())
	if score == bowling.PerfectScore {
		c.perfectGames.Inc()
	}
}

// ObserveInvalid records one game rejected by validation.
func (c *Collector) ObserveInvalid() {
	c.gamesScored.WithLabelValues(ResultInvalid).Inc()
}

// ObserveAnnouncement records one fired announcement.
func (c *Collector) ObserveAnnouncement(rule string) {
	c.announcements.WithLabelValues(rule).Inc()
}

// SetWSClients reports the current WebSocket client count.
func (c *Collector) SetWSClients(n int) {
	c.wsClients.Set(float64(n))
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the /metrics handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
