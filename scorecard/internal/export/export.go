package export

import (
	"fmt"
	"io"
	"strconv"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/tenpin/tenpin/pkg/bowling"
	"github.com/tenpin/tenpin/pkg/types"
)

// Metric family names.
const (
	ScoreFamily   = "tenpin_game_score"
	StrikesFamily = "tenpin_game_strikes"
	SparesFamily  = "tenpin_game_spares"
	OpensFamily   = "tenpin_game_opens"
	RunningFamily = "tenpin_frame_running"
)

// Families builds one gauge family per exported measure. Games without an ID,
// or whose ID is shared with another game, are labelled game-1, game-2, ...
// by position.
func Families(games []types.ScoredGame) []*dto.MetricFamily {
	seen := make(map[string]int, len(games))
	for _, g := range games {
		seen[g.ID]++
	}

	score := gaugeFamily(ScoreFamily, "Total score of the game.")
	strikes := gaugeFamily(StrikesFamily, "Strikes thrown in the game.")
	spares := gaugeFamily(SparesFamily, "Spares converted in the game.")
	opens := gaugeFamily(OpensFamily, "Open frames in the game.")
	running := gaugeFamily(RunningFamily, "Cumulative score at the end of each frame.")

	for i, g := range games {
		id := g.ID
		if id == "" || seen[id] > 1 {
			id = "game-" + strconv.Itoa(i+1)
		}
		labels := []*dto.LabelPair{label("bowler", g.Bowler), label("game", id)}

		score.Metric = append(score.Metric, gauge(labels, float64(g.Score)))
		strikes.Metric = append(strikes.Metric, gauge(labels, float64(g.Strikes)))
		spares.Metric = append(spares.Metric, gauge(labels, float64(g.Spares)))
		opens.Metric = append(opens.Metric, gauge(labels, float64(g.Opens)))

		for f, total := range bowling.Running(g.Throws) {
			frameLabels := []*dto.LabelPair{
				label("bowler", g.Bowler),
				label("frame", strconv.Itoa(f+1)),
				label("game", id),
			}
			running.Metric = append(running.Metric, gauge(frameLabels, float64(total)))
		}
	}
	return []*dto.MetricFamily{score, strikes, spares, opens, running}
}

// WriteText writes games to w in the text exposition format.
func WriteText(w io.Writer, games []types.ScoredGame) error {
	for _, mf := range Families(games) {
		if len(mf.Metric) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("export: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func gauge(labels []*dto.LabelPair, v float64) *dto.Metric {
	return &dto.Metric{
		Label: labels,
		Gauge: &dto.Gauge{Value: proto.Float64(v)},
	}
}

func label(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: proto.String(name), Value: proto.String(value)}
}
