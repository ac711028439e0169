package api

import "github.com/tenpin/tenpin/pkg/types"

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status        string `json:"status"`
	Strict        bool   `json:"strict"`
	GameCount     int    `json:"game_count"`
	BowlerCount   int    `json:"bowler_count"`
	Announcements int    `json:"announcement_count"`
}

// ScoreRequest is the body of POST /api/v1/score.
type ScoreRequest struct {
	Throws []int `json:"throws"`
}

// ScoreResponse is the payload for POST /api/v1/score.
type ScoreResponse struct {
	Score   int   `json:"score"`
	Running []int `json:"running"`
}

// FrameResponse is one frame of a game's score sheet.
type FrameResponse struct {
	Number  int    `json:"number"`
	Kind    string `json:"kind"`
	Pins    []int  `json:"pins"`
	Running int    `json:"running"`
}

// GameResponse is one game in GET /api/v1/games, GET /api/v1/games/{id} or
// POST /api/v1/games.
type GameResponse struct {
	types.ScoredGame
	Frames     []FrameResponse `json:"frames"`
	Highlights []Highlight     `json:"highlights"`
}

// GamesResponse is the payload for GET /api/v1/games.
type GamesResponse struct {
	Games       []GameResponse `json:"games"`
	GeneratedAt string         `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
