// Package config loads the server-side configuration from the `server:` section
// of config.yaml (the `scorecard:` key is ignored by the server binary).
//
// Config fields:
//   - HTTPPort: port for the REST API, WebSocket hub and /metrics (default 8080)
//   - LogLevel: debug | info | warn | error (default info)
//   - Auth.Mode: "apikey", "jwt" or "none"
//   - Auth.KeyEnv: environment variable holding the API key or signing secret
//   - Auth.Header: HTTP header name for apikey mode (default "x-api-key")
//   - Auth.TokenTTL: lifetime of issued bearer tokens (default 30 days)
//   - Games.TTL: how long a scored game stays in memory (default 24h)
//   - Games.Strict: reject illegal games instead of scoring them leniently
//   - Standings.Window: games per bowler in the rolling average (default 12)
//   - Broadcast.Interval: WebSocket push interval (default 5s)
//   - Metrics.Namespace: Prometheus namespace (default "tenpin")
//   - RateLimit: per-client request rate and burst; zero disables
//   - Announcements: rules evaluated per game and webhook targets
//
// Load(path) applies defaults before unmarshalling, then validates.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. The server uses it to swap
// announcement rules and the log level without a restart.
package config
