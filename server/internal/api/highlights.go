package api

import (
	"fmt"

	"github.com/tenpin/tenpin/pkg/bowling"
	"github.com/tenpin/tenpin/pkg/types"
)

// Highlight is one human-readable note about a game, shown as a chip next to
// the score sheet.
type Highlight struct {
	// Key is a stable machine-readable identifier.
	Key string `json:"key"`
	// Level is "gold" | "good" | "info"
	Level string `json:"level"`
	// Title is a short label shown on the chip.
	Title string `json:"title"`
	// Detail is the longer explanation shown on hover.
	Detail string `json:"detail"`
}

// computeHighlights derives highlights from a scored game and its sheet.
// The most notable come first.
func computeHighlights(g *types.ScoredGame, card []bowling.CardFrame) []Highlight {
	hints := []Highlight{}

	if len(card) < bowling.Frames {
		return append(hints, Highlight{
			Key:    "incomplete",
			Level:  "info",
			Title:  "Incomplete game",
			Detail: fmt.Sprintf("Only %d of %d frames were bowled; the score counts what was thrown.", len(card), bowling.Frames),
		})
	}

	if g.Score == bowling.PerfectScore {
		return append(hints, Highlight{
			Key:    "perfect",
			Level:  "gold",
			Title:  "Perfect game",
			Detail: "Twelve strikes in a row for 300.",
		})
	}

	if g.Score == 0 {
		return append(hints, Highlight{
			Key:    "gutter",
			Level:  "info",
			Title:  "Gutter game",
			Detail: "No pins knocked down in any frame.",
		})
	}

	if g.Opens == 0 {
		hints = append(hints, Highlight{
			Key:    "clean",
			Level:  "good",
			Title:  "Clean game",
			Detail: "Every frame was closed with a strike or a spare.",
		})
	}

	if run := longestStrikeRun(card); run >= 3 {
		title := "Turkey"
		if run > 3 {
			title = fmt.Sprintf("%d-bagger", run)
		}
		hints = append(hints, Highlight{
			Key:    "turkey",
			Level:  "good",
			Title:  title,
			Detail: fmt.Sprintf("%d strikes in a row.", run),
		})
	}

	if g.Score >= 200 {
		hints = append(hints, Highlight{
			Key:    "two_hundred",
			Level:  "good",
			Title:  "200 club",
			Detail: fmt.Sprintf("Finished on %d.", g.Score),
		})
	}

	if g.Opens >= 5 {
		hints = append(hints, Highlight{
			Key:    "open_frames",
			Level:  "info",
			Title:  fmt.Sprintf("%d open frames", g.Opens),
			Detail: "Converting spares is usually the quickest way to raise an average.",
		})
	}
	return hints
}

// longestStrikeRun counts consecutive strike balls, ignoring tenth-frame
// balls that were not thrown at a full rack.
func longestStrikeRun(card []bowling.CardFrame) int {
	best, cur := 0, 0
	for _, f := range card {
		for i, p := range f.Pins {
			fullRack := i == 0 || (f.Number == bowling.Frames && fullRackAt(f.Pins, i))
			if p == bowling.Pins && fullRack {
				cur++
				best = max(best, cur)
			} else {
				cur = 0
			}
		}
	}
	return best
}

// fullRackAt reports whether ball i of the tenth frame was thrown at ten pins.
func fullRackAt(pins []int, i int) bool {
	standing := bowling.Pins
	for _, p := range pins[:i] {
		standing -= p
		if standing == 0 {
			standing = bowling.Pins
		}
	}
	return standing == bowling.Pins
}
