package types

import "time"

// Game is one completed game as submitted for scoring.
type Game struct {
	// ID identifies the game. The server assigns a UUID when it is empty.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Bowler is the name the game is recorded under.
	Bowler string `json:"bowler,omitempty" yaml:"bowler,omitempty"`

	// Throws holds the pins knocked down by every ball actually thrown.
	// A strike is a single 10.
	Throws []int `json:"throws" yaml:"throws"`
}

// ScoredGame is a Game together with its final score and frame tally.
type ScoredGame struct {
	ID       string    `json:"id"`
	Bowler   string    `json:"bowler,omitempty"`
	Throws   []int     `json:"throws"`
	Score    int       `json:"score"`
	Strikes  int       `json:"strikes"`
	Spares   int       `json:"spares"`
	Opens    int       `json:"opens"`
	ScoredAt time.Time `json:"scored_at"`
}
