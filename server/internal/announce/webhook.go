package announce

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tenpin/tenpin/server/internal/config"
)

// deliver sends a to every configured webhook target.
// Errors are logged but do not reach the caller.
func (e *Engine) deliver(webhooks []config.WebhookConfig, a *Announcement) {
	for _, wh := range webhooks {
		url := wh.URL()
		if url == "" {
			continue
		}

		var err error
		switch wh.Type {
		case "slack":
			err = e.sendSlack(url, a)
		case "teams":
			err = e.sendTeams(url, a)
		case "http":
			err = e.sendHTTP(url, a)
		default:
			slog.Warn("announce: unknown webhook type, skipping", "type", wh.Type)
			continue
		}

		if err != nil {
			slog.Error("announce: webhook delivery failed",
				"type", wh.Type,
				"rule", a.RuleName,
				"err", err,
			)
			continue
		}
		slog.Debug("announce: webhook delivered", "type", wh.Type, "rule", a.RuleName)
	}
}

func (e *Engine) sendSlack(url string, a *Announcement) error {
	body, _ := json.Marshal(map[string]string{
		"text": fmt.Sprintf("%s %s", severityEmoji(a.Severity), a.Message),
	})
	return e.post(url, body)
}

func (e *Engine) sendTeams(url string, a *Announcement) error {
	body, _ := json.Marshal(map[string]any{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": severityColor(a.Severity),
		"summary":    a.RuleName,
		"title":      fmt.Sprintf("Lane announcement: %s", a.RuleName),
		"text":       a.Message,
	})
	return e.post(url, body)
}

func (e *Engine) sendHTTP(url string, a *Announcement) error {
	body, _ := json.Marshal(map[string]any{"announcement": a})
	return e.post(url, body)
}

func (e *Engine) post(url string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func severityEmoji(s string) string {
	switch s {
	case "critical":
		return ":trophy:"
	case "warning":
		return ":bowling:"
	default:
		return ":tada:"
	}
}

func severityColor(s string) string {
	switch s {
	case "critical":
		return "FFD700"
	case "warning":
		return "FFAB40"
	default:
		return "00D4FF"
	}
}
