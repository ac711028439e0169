package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tenpin/tenpin/pkg/types"
	"github.com/tenpin/tenpin/scorecard/internal/export"
	"github.com/tenpin/tenpin/scorecard/internal/sheet"
)

var (
	fileFormat string
	fileStrict bool
	fileOutput string
)

var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Score every game in a sheet file",
	Long: `Score every game in a sheet file.

YAML files (.yaml, .yml) hold a list of games under "games:", each with
either "throws" or "sheet". Workbooks (.xlsx) need a header row with a
"sheet" column or frame columns 1 to 10. Any other file is read as text
with one game per line in the form "bowler: sheet"; '#' starts a comment.

Output formats:
  text  one line per game (default)
  json  the scored games as a JSON array
  prom  Prometheus text exposition, for node_exporter's textfile collector
  xlsx  a workbook with running totals per frame
  png   a line chart of running totals per frame`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch fileFormat {
		case "text", "json", "prom", "xlsx", "png":
		default:
			return fmt.Errorf("unknown --format %q: want text|json|prom|xlsx|png", fileFormat)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		games, err := sheet.ReadFile(args[0])
		if err != nil {
			return err
		}

		strict := fileStrict || cfg.Scorecard.Strict
		scored := make([]types.ScoredGame, 0, len(games))
		var invalid int
		for i, g := range games {
			sg, err := scoreGame(g, strict)
			if err != nil {
				invalid++
				fmt.Fprintf(cmd.ErrOrStderr(), "game %d (%s): %v\n", i+1, bowlerName(g.Bowler), err)
				continue
			}
			scored = append(scored, sg)
		}

		out := cmd.OutOrStdout()
		if fileOutput != "" {
			f, err := os.Create(fileOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		if err := writeGames(out, fileFormat, scored); err != nil {
			return err
		}

		if invalid > 0 {
			return fmt.Errorf("%d of %d games invalid", invalid, len(games))
		}
		return nil
	},
}

func init() {
	fileCmd.Flags().StringVarP(&fileFormat, "format", "f", "text", "output format: text|json|prom|xlsx|png")
	fileCmd.Flags().StringVarP(&fileOutput, "output", "o", "", "write to this file instead of stdout")
	fileCmd.Flags().BoolVar(&fileStrict, "strict", false, "reject games that are not legal completed games")
	rootCmd.AddCommand(fileCmd)
}

func writeGames(w io.Writer, format string, games []types.ScoredGame) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(games)
	case "prom":
		return export.WriteText(w, games)
	case "xlsx":
		return export.WriteXLSX(w, games)
	case "png":
		return export.WriteChart(w, games)
	default:
		return writeTable(w, games)
	}
}

func writeTable(w io.Writer, games []types.ScoredGame) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BOWLER\tSCORE\tSTRIKES\tSPARES\tOPENS")
	for _, g := range games {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", bowlerName(g.Bowler), g.Score, g.Strikes, g.Spares, g.Opens)
	}
	return tw.Flush()
}

func bowlerName(name string) string {
	if name == "" {
		return "-"
	}
	return name
}
