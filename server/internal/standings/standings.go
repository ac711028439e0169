package standings

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/tenpin/tenpin/pkg/types"
)

// Standing is the derived summary for one bowler.
type Standing struct {
	Bowler    string    `json:"bowler"`
	Games     int       `json:"games"`
	Window    int       `json:"window"`
	Last      int       `json:"last"`
	High      int       `json:"high"`
	Low       int       `json:"low"`
	Average   float64   `json:"average"`
	Strikes   int       `json:"strikes"`
	Spares    int       `json:"spares"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Engine maintains per-bowler game windows.
//
// All exported methods are safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	window  int
	bowlers map[string]*bowlerState
}

// NewEngine returns an Engine that keeps the last window games per bowler.
// A window below 1 is treated as 1.
func NewEngine(window int) *Engine {
	if window < 1 {
		window = 1
	}
	return &Engine{window: window, bowlers: make(map[string]*bowlerState)}
}

// SetWindow changes the window size. Bowlers holding more games than the new
// size keep only their most recent ones.
func (e *Engine) SetWindow(window int) {
	if window < 1 {
		window = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.window = window
	for _, st := range e.bowlers {
		st.trim(window)
	}
}

// Record folds g into its bowler's window and returns the updated Standing.
// Games with no bowler are filed under "anonymous".
func (e *Engine) Record(g *types.ScoredGame, now time.Time) Standing {
	e.mu.Lock()
	defer e.mu.Unlock()

	name := bowlerName(g.Bowler)
	st, ok := e.bowlers[name]
	if !ok {
		st = &bowlerState{}
		e.bowlers[name] = st
	}
	st.record(game{score: g.Score, strikes: g.Strikes, spares: g.Spares}, e.window)
	st.updated = now

	out := st.standing(name)
	slog.Debug("standings: recorded game",
		"bowler", name, "score", g.Score, "average", out.Average, "games", out.Games)
	return out
}

// Get returns the Standing for bowler and whether any game was recorded.
func (e *Engine) Get(bowler string) (Standing, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	name := bowlerName(bowler)
	st, ok := e.bowlers[name]
	if !ok {
		return Standing{}, false
	}
	return st.standing(name), true
}

// List returns every bowler's Standing ordered by average, best first.
// Ties are broken by name.
func (e *Engine) List() []Standing {
	e.mu.Lock()
	out := make([]Standing, 0, len(e.bowlers))
	for name, st := range e.bowlers {
		out = append(out, st.standing(name))
	}
	e.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Average != out[j].Average {
			return out[i].Average > out[j].Average
		}
		return out[i].Bowler < out[j].Bowler
	})
	return out
}

// game is the part of a ScoredGame the window needs.
type game struct {
	score   int
	strikes int
	spares  int
}

// bowlerState holds one bowler's recent games, newest last.
type bowlerState struct {
	history []game
	total   int
	updated time.Time
}

func (st *bowlerState) record(g game, window int) {
	st.history = append(st.history, g)
	st.total++
	st.trim(window)
}

func (st *bowlerState) trim(window int) {
	if over := len(st.history) - window; over > 0 {
		st.history = append(st.history[:0:0], st.history[over:]...)
	}
}

func (st *bowlerState) standing(name string) Standing {
	s := Standing{
		Bowler:    name,
		Games:     st.total,
		Window:    len(st.history),
		UpdatedAt: st.updated,
	}
	if len(st.history) == 0 {
		return s
	}
	s.Last = st.history[len(st.history)-1].score
	s.High, s.Low = s.Last, s.Last
	sum := 0
	for _, g := range st.history {
		sum += g.score
		s.High = max(s.High, g.score)
		s.Low = min(s.Low, g.score)
		s.Strikes += g.strikes
		s.Spares += g.spares
	}
	s.Average = float64(sum) / float64(len(st.history))
	return s
}

func bowlerName(name string) string {
	if name == "" {
		return "anonymous"
	}
	return name
}
