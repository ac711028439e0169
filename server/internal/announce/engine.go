package announce

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tenpin/tenpin/pkg/types"
	"github.com/tenpin/tenpin/server/internal/config"
)

const (
	maxHistoryLen = 200
	recentWindow  = time.Hour
)

// Announcement is one rule firing for one game.
type Announcement struct {
	ID       string    `json:"id"`
	RuleName string    `json:"rule_name"`
	Bowler   string    `json:"bowler"`
	GameID   string    `json:"game_id"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Value    float64   `json:"value"`
	FiredAt  time.Time `json:"fired_at"`
}

// Engine evaluates announcement rules against scored games and delivers
// webhook notifications for the ones that fire.
//
// Engine is safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	rules    []config.AnnouncementRule
	webhooks []config.WebhookConfig
	lastFire map[string]time.Time // key: "ruleName:bowler"
	history  []*Announcement      // newest last
	client   *http.Client
	now      func() time.Time
}

// New creates an Engine from the announcement configuration.
// An Engine with no rules is valid; Evaluate becomes a no-op.
func New(cfg config.AnnouncementsConfig) *Engine {
	return &Engine{
		rules:    cfg.Rules,
		webhooks: cfg.Webhooks,
		lastFire: make(map[string]time.Time),
		client:   &http.Client{Timeout: 10 * time.Second},
		now:      time.Now,
	}
}

// SetRules replaces the rules and webhooks. Cooldown state for rules that
// keep their name is preserved.
func (e *Engine) SetRules(cfg config.AnnouncementsConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = cfg.Rules
	e.webhooks = cfg.Webhooks
}

// Evaluate tests every rule against g and returns copies of the announcements
// that fired. Webhook delivery for each one starts in the background.
func (e *Engine) Evaluate(g *types.ScoredGame) []Announcement {
	e.mu.Lock()
	rules := e.rules
	webhooks := e.webhooks
	e.mu.Unlock()

	if len(rules) == 0 {
		return nil
	}

	now := e.now()
	bowler := g.Bowler
	if bowler == "" {
		bowler = "anonymous"
	}

	var fired []Announcement
	for _, rule := range rules {
		fires, value := evalCondition(rule.Condition, g)
		if !fires {
			continue
		}

		key := rule.Name + ":" + bowler
		e.mu.Lock()
		if last, ok := e.lastFire[key]; ok && rule.Cooldown > 0 && now.Sub(last) < rule.Cooldown {
			e.mu.Unlock()
			slog.Debug("announce: suppressed by cooldown", "rule", rule.Name, "bowler", bowler)
			continue
		}

		sev := rule.Severity
		if sev == "" {
			sev = "info"
		}
		a := &Announcement{
			ID:       uuid.NewString(),
			RuleName: rule.Name,
			Bowler:   bowler,
			GameID:   g.ID,
			Severity: sev,
			Value:    value,
			Message: fmt.Sprintf("%s: %s bowled %d (%s)",
				rule.Name, bowler, g.Score, rule.Condition),
			FiredAt: now,
		}
		e.lastFire[key] = now
		e.history = append(e.history, a)
		if len(e.history) > maxHistoryLen {
			e.history = e.history[len(e.history)-maxHistoryLen:]
		}
		cp := *a
		e.mu.Unlock()

		slog.Info("announce: rule fired",
			"rule", rule.Name,
			"bowler", bowler,
			"game", g.ID,
			"value", value,
			"severity", sev,
		)
		fired = append(fired, cp)
		go e.deliver(webhooks, &cp)
	}
	return fired
}

// Recent returns copies of the announcements fired within the past hour,
// newest first.
func (e *Engine) Recent() []*Announcement {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.now().Add(-recentWindow)
	out := make([]*Announcement, 0, len(e.history))
	for _, a := range e.history {
		if a.FiredAt.After(cutoff) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FiredAt.After(out[j].FiredAt) })
	return out
}
