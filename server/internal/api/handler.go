package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tenpin/tenpin/pkg/bowling"
	"github.com/tenpin/tenpin/pkg/types"
	"github.com/tenpin/tenpin/server/internal/announce"
	"github.com/tenpin/tenpin/server/internal/metrics"
	"github.com/tenpin/tenpin/server/internal/standings"
	"github.com/tenpin/tenpin/server/internal/store"
)

// maxBodyBytes caps request bodies; a game is a few dozen bytes.
const maxBodyBytes = 64 << 10

// Deps are the components the API reads from and records into.
type Deps struct {
	Store     *store.Store
	Standings *standings.Engine
	Announce  *announce.Engine
	Metrics   *metrics.Collector

	// Strict rejects games that are not legal completed games.
	Strict bool

	// OnRecord, if set, is called after a submitted game has been recorded.
	OnRecord func(*types.ScoredGame)
}

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	deps   Deps
	strict atomic.Bool
	mux    *http.ServeMux
	now    func() time.Time
}

// New creates a Handler wired to deps and registers all routes.
func New(deps Deps) *Handler {
	h := &Handler{deps: deps, mux: http.NewServeMux(), now: time.Now}
	h.strict.Store(deps.Strict)

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/score", h.score)
	h.mux.HandleFunc("/api/v1/games", h.games)
	h.mux.HandleFunc("/api/v1/games/", h.getGame) // subtree, extracts {id}
	h.mux.HandleFunc("/api/v1/bowlers", h.listBowlers)
	h.mux.HandleFunc("/api/v1/bowlers/", h.getBowler) // subtree, extracts {name}
	h.mux.HandleFunc("/api/v1/announcements", h.announcements)

	return h
}

// SetStrict switches strict validation on or off for subsequent requests.
func (h *Handler) SetStrict(strict bool) {
	h.strict.Store(strict)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Strict:        h.strict.Load(),
		GameCount:     len(h.deps.Store.List()),
		BowlerCount:   len(h.deps.Standings.List()),
		Announcements: len(h.deps.Announce.Recent()),
	})
}

// score returns POST /api/v1/score: the score of one game, nothing recorded.
func (h *Handler) score(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req ScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sg, err := h.scoreGame(types.Game{Throws: req.Throws})
	if err != nil {
		jsonErr(w, statusFor(err), err.Error())
		return
	}
	jsonResp(w, http.StatusOK, ScoreResponse{Score: sg.Score, Running: bowling.Running(sg.Throws)})
}

// games serves GET /api/v1/games (recent games, newest first) and
// POST /api/v1/games (score and record one game).
func (h *Handler) games(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listGames(w, r)
	case http.MethodPost:
		h.submitGame(w, r)
	default:
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) listGames(w http.ResponseWriter, r *http.Request) {
	bowler := r.URL.Query().Get("bowler")
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			jsonErr(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	jsonResp(w, http.StatusOK, BuildGames(h.deps.Store, bowler, limit, h.now()))
}

// BuildGames collects the live games in st, newest first, for the list
// endpoint and the WebSocket stream. An empty bowler matches everyone; a
// limit of 0 means no limit.
func BuildGames(st *store.Store, bowler string, limit int, now time.Time) GamesResponse {
	entries := st.List()
	out := make([]GameResponse, 0, len(entries))
	for _, e := range entries {
		if bowler != "" && e.Game.Bowler != bowler {
			continue
		}
		out = append(out, toGameResponse(e.Game))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return GamesResponse{
		Games:       out,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) submitGame(w http.ResponseWriter, r *http.Request) {
	var g types.Game
	if !decodeBody(w, r, &g) {
		return
	}
	sg, err := h.scoreGame(g)
	if err != nil {
		slog.Info("api: rejected game", "bowler", g.Bowler, "err", err)
		jsonErr(w, statusFor(err), err.Error())
		return
	}

	held, added := h.deps.Store.Add(sg)
	if !added {
		// A resend of a recorded game is answered with the original; it is
		// not counted again.
		if held.Game.Bowler != sg.Bowler || !slices.Equal(held.Game.Throws, sg.Throws) {
			jsonErr(w, http.StatusConflict, fmt.Sprintf("game %q is already recorded with different throws", sg.ID))
			return
		}
		slog.Debug("api: duplicate game", "id", sg.ID, "bowler", sg.Bowler)
		jsonResp(w, http.StatusOK, toGameResponse(held.Game))
		return
	}
	h.deps.Standings.Record(sg, sg.ScoredAt)
	for _, a := range h.deps.Announce.Evaluate(sg) {
		h.deps.Metrics.ObserveAnnouncement(a.RuleName)
	}
	if h.deps.OnRecord != nil {
		h.deps.OnRecord(sg)
	}

	slog.Debug("api: recorded game", "id", sg.ID, "bowler", sg.Bowler, "score", sg.Score)
	jsonResp(w, http.StatusCreated, toGameResponse(sg))
}

// getGame returns GET /api/v1/games/{id}; 404 if unknown or expired.
func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/games/")
	if id == "" {
		h.listGames(w, r)
		return
	}

	e, ok := h.deps.Store.Get(id)
	if !ok || h.now().Sub(e.StoredAt) > h.deps.Store.TTL() {
		jsonErr(w, http.StatusNotFound, "game not found")
		return
	}
	jsonResp(w, http.StatusOK, toGameResponse(e.Game))
}

// listBowlers returns GET /api/v1/bowlers, best average first.
func (h *Handler) listBowlers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.deps.Standings.List())
}

// getBowler returns GET /api/v1/bowlers/{name}; 404 if the bowler has no games.
func (h *Handler) getBowler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/v1/bowlers/")
	if name == "" {
		h.listBowlers(w, r)
		return
	}

	s, ok := h.deps.Standings.Get(name)
	if !ok {
		jsonErr(w, http.StatusNotFound, "bowler not found")
		return
	}
	jsonResp(w, http.StatusOK, s)
}

// announcements returns GET /api/v1/announcements: the past hour, newest first.
func (h *Handler) announcements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.deps.Announce.Recent())
}

// --- scoring ----------------------------------------------------------------

// errRejected marks input refused before scoring, independent of strict mode.
var errRejected = errors.New("rejected")

// scoreGame scores g, assigning an ID when it has none. Pin counts outside
// 0..10 are refused in either mode. In strict mode any other illegal game is
// returned as an error wrapping bowling.ErrInvalidGame.
func (h *Handler) scoreGame(g types.Game) (*types.ScoredGame, error) {
	if len(g.Throws) == 0 {
		return nil, fmt.Errorf("%w: throws is required", errRejected)
	}
	if len(g.Throws) > bowling.MaxThrows {
		h.deps.Metrics.ObserveInvalid()
		return nil, fmt.Errorf("%w: %d throws, a game has at most %d", bowling.ErrInvalidGame, len(g.Throws), bowling.MaxThrows)
	}
	for i, p := range g.Throws {
		if p < 0 || p > bowling.Pins {
			h.deps.Metrics.ObserveInvalid()
			return nil, fmt.Errorf("%w: throw %d: %d pins, want 0 to %d", bowling.ErrInvalidGame, i+1, p, bowling.Pins)
		}
	}

	start := time.Now()
	var score int
	if h.strict.Load() {
		s, err := bowling.ScoreStrict(g.Throws)
		if err != nil {
			h.deps.Metrics.ObserveInvalid()
			return nil, err
		}
		score = s
	} else {
		score = bowling.Score(g.Throws)
	}
	h.deps.Metrics.ObserveGame(score, time.Since(start))

	id := g.ID
	if id == "" {
		id = uuid.NewString()
	}
	tally := bowling.Count(g.Throws)
	return &types.ScoredGame{
		ID:       id,
		Bowler:   g.Bowler,
		Throws:   g.Throws,
		Score:    score,
		Strikes:  tally.Strikes,
		Spares:   tally.Spares,
		Opens:    tally.Opens,
		ScoredAt: h.now().UTC(),
	}, nil
}

// statusFor maps a scoring error to its HTTP status.
func statusFor(err error) int {
	if errors.Is(err, bowling.ErrInvalidGame) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// --- helpers ----------------------------------------------------------------

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func jsonResp(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// toGameResponse maps a scored game to its JSON representation.
func toGameResponse(g *types.ScoredGame) GameResponse {
	card := bowling.Card(g.Throws)
	frames := make([]FrameResponse, 0, len(card))
	for _, f := range card {
		frames = append(frames, FrameResponse{
			Number:  f.Number,
			Kind:    f.Kind.String(),
			Pins:    f.Pins,
			Running: f.Running,
		})
	}
	return GameResponse{
		ScoredGame: *g,
		Frames:     frames,
		Highlights: computeHighlights(g, card),
	}
}
