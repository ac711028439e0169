package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/tenpin/tenpin/pkg/types"
	"github.com/tenpin/tenpin/server/internal/announce"
	"github.com/tenpin/tenpin/server/internal/api"
	"github.com/tenpin/tenpin/server/internal/auth"
	"github.com/tenpin/tenpin/server/internal/config"
	"github.com/tenpin/tenpin/server/internal/metrics"
	"github.com/tenpin/tenpin/server/internal/standings"
	"github.com/tenpin/tenpin/server/internal/store"
	"github.com/tenpin/tenpin/server/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	uiDir := flag.String("ui-dir", "", "serve a lane display UI from this directory; leave empty to disable")
	issueToken := flag.String("issue-token", "", "print a bearer token for this subject and exit (auth mode jwt)")
	flag.Parse()

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("tenpin-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	level.Set(cfg.Server.Level())

	if *issueToken != "" {
		if err := printToken(cfg.Server.Auth, *issueToken); err != nil {
			slog.Error("failed to issue token", "err", err)
			os.Exit(1)
		}
		return
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"game_ttl", cfg.Server.Games.TTL,
		"strict", cfg.Server.Games.Strict,
		"standings_window", cfg.Server.Standings.Window,
		"rules", len(cfg.Server.Announcements.Rules),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Game store with background TTL eviction.
	st := store.New(cfg.Server.Games.TTL)
	go st.Run(ctx)

	standingsEngine := standings.NewEngine(cfg.Server.Standings.Window)
	announcer := announce.New(cfg.Server.Announcements)
	collector := metrics.New(cfg.Server.Metrics.Namespace)

	hub := ws.New(st, cfg.Server.Broadcast.Interval, collector.SetWSClients)
	go hub.Run(ctx)

	apiHandler := api.New(api.Deps{
		Store:     st,
		Standings: standingsEngine,
		Announce:  announcer,
		Metrics:   collector,
		Strict:    cfg.Server.Games.Strict,
		OnRecord:  func(*types.ScoredGame) { hub.Notify() },
	})

	// Apply rule, level and retention changes without a restart. Port and
	// auth changes need one.
	go func() {
		err := config.Watch(ctx, *configPath, func(next *config.Config) {
			s := next.Server
			level.Set(s.Level())
			announcer.SetRules(s.Announcements)
			apiHandler.SetStrict(s.Games.Strict)
			standingsEngine.SetWindow(s.Standings.Window)
			st.SetTTL(s.Games.TTL)
			if s.HTTPPort != cfg.Server.HTTPPort || s.Auth != cfg.Server.Auth || s.RateLimit != cfg.Server.RateLimit {
				slog.Warn("config: http_port, auth and rate_limit changes apply after restart")
			}
		})
		if err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	a := cfg.Server.Auth
	checkKey := auth.APIKey(a.Mode, a.EffectiveHeader(), a.Key())
	checkToken := auth.Bearer(a.Mode, a.Key())
	requireKey := func(h http.Handler) http.Handler { return checkKey(checkToken(h)) }
	if (a.Mode == "apikey" || a.Mode == "jwt") && a.Key() == "" {
		slog.Warn("auth is enabled but no key is set; API is open", "mode", a.Mode, "key_env", a.KeyEnv)
	}

	var limiter *auth.IPRateLimiter
	if rl := cfg.Server.RateLimit; rl.Enabled() {
		limiter = auth.NewIPRateLimiter(rl.RequestsPerSecond, rl.Burst)
		slog.Info("rate limiting enabled", "rps", rl.RequestsPerSecond, "burst", rl.Burst)
	}
	limit := auth.RateLimit(limiter)

	// Combined HTTP server: REST API, WebSocket hub and /metrics on HTTPPort.
	// Health stays open so load balancers can check it without a key.
	httpMux := http.NewServeMux()
	httpMux.Handle("/api/v1/health", apiHandler)
	httpMux.Handle("/api/", limit(requireKey(apiHandler)))
	httpMux.Handle("/ws/games", requireKey(hub))
	httpMux.Handle("/metrics", collector.Handler())

	if *uiDir != "" {
		fs := http.FileServer(http.Dir(*uiDir))
		httpMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			// SPA fallback: unknown paths get index.html.
			path := filepath.Join(*uiDir, filepath.Clean("/"+r.URL.Path))
			if _, err := os.Stat(path); os.IsNotExist(err) {
				http.ServeFile(w, r, filepath.Join(*uiDir, "index.html"))
				return
			}
			fs.ServeHTTP(w, r)
		})
		slog.Info("serving UI static files", "dir", *uiDir)
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("tenpin-server shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown", "err", err)
	}
}

// printToken writes a signed bearer token for subject to stdout.
func printToken(a config.AuthConfig, subject string) error {
	if a.Mode != "jwt" {
		return fmt.Errorf("auth.mode is %q, want jwt", a.Mode)
	}
	secret := a.Key()
	if secret == "" {
		return fmt.Errorf("signing secret %s is not set", a.KeyEnv)
	}
	tok, err := auth.IssueToken(secret, subject, a.TokenTTL)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}
