package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tenpin/tenpin/pkg/bowling"
	"github.com/tenpin/tenpin/pkg/types"
)

// ErrNoGames is returned by WriteChart when no game has a scored frame.
var ErrNoGames = errors.New("export: no games to chart")

// WriteChart renders a PNG line chart of the running total of each game,
// frame by frame.
func WriteChart(w io.Writer, games []types.ScoredGame) error {
	var series []chart.Series
	for i, g := range games {
		running := bowling.Running(g.Throws)
		if len(running) == 0 {
			continue
		}
		xs := make([]float64, len(running))
		ys := make([]float64, len(running))
		for f, total := range running {
			xs[f] = float64(f + 1)
			ys[f] = float64(total)
		}

		name := g.Bowler
		if name == "" {
			name = "game " + strconv.Itoa(i+1)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("%s (%d)", name, g.Score),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(len(series)),
				StrokeWidth: 2,
				DotWidth:    3,
				DotColor:    chart.GetDefaultColor(len(series)),
			},
		})
	}
	if len(series) == 0 {
		return ErrNoGames
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding:   chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
			FillColor: drawing.ColorWhite,
		},
		XAxis: chart.XAxis{
			Name:           "Frame",
			Range:          &chart.ContinuousRange{Min: 1, Max: bowling.Frames},
			ValueFormatter: frameFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "Score",
			Range: &chart.ContinuousRange{Min: 0, Max: bowling.PerfectScore},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("export: render chart: %w", err)
	}
	return nil
}

// frameFormatter labels x-axis ticks with whole frame numbers.
func frameFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(f))
	}
	return ""
}
