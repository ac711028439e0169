package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tenpin/tenpin/pkg/bowling"
	"github.com/tenpin/tenpin/pkg/types"
	"github.com/tenpin/tenpin/scorecard/internal/sheet"
)

var (
	scoreStrict bool
	scoreCard   bool
)

var scoreCmd = &cobra.Command{
	Use:   "score <throw|sheet>...",
	Short: "Score one game",
	Long: `Score one completed game given as throws or sheet notation.

Examples:
  scorecard score 10 10 10 10 10 10 10 10 10 10 10 10
  scorecard score "X|7/|9-|X|-8|8/|-6|X|X|X81"
  scorecard score --card X X X X X X X X X X X X`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		throws, err := sheet.ParseNotation(strings.Join(args, " "))
		if err != nil {
			return err
		}

		sg, err := scoreGame(types.Game{Throws: throws}, scoreStrict || cfg.Scorecard.Strict)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if scoreCard {
			return writeCard(out, sg.Throws)
		}
		fmt.Fprintln(out, sg.Score)
		return nil
	},
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreStrict, "strict", false, "reject games that are not legal completed games")
	scoreCmd.Flags().BoolVar(&scoreCard, "card", false, "print the frame-by-frame score card")
	rootCmd.AddCommand(scoreCmd)
}

// scoreGame scores g. In strict mode an illegal game is an error; otherwise
// it is scored leniently.
func scoreGame(g types.Game, strict bool) (types.ScoredGame, error) {
	var score int
	if strict {
		s, err := bowling.ScoreStrict(g.Throws)
		if err != nil {
			return types.ScoredGame{}, err
		}
		score = s
	} else {
		score = bowling.Score(g.Throws)
	}

	tally := bowling.Count(g.Throws)
	return types.ScoredGame{
		ID:       g.ID,
		Bowler:   g.Bowler,
		Throws:   g.Throws,
		Score:    score,
		Strikes:  tally.Strikes,
		Spares:   tally.Spares,
		Opens:    tally.Opens,
		ScoredAt: time.Now().UTC(),
	}, nil
}

// writeCard prints one row per frame: number, pins, mark, running total.
func writeCard(w io.Writer, throws []int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tPINS\tMARK\tTOTAL")
	for _, f := range bowling.Card(throws) {
		pins := make([]string, len(f.Pins))
		for i, p := range f.Pins {
			pins[i] = strconv.Itoa(p)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", f.Number, strings.Join(pins, " "), f.Kind, f.Running)
	}
	return tw.Flush()
}
