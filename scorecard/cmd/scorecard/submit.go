package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tenpin/tenpin/pkg/bowling"
	"github.com/tenpin/tenpin/pkg/types"
	"github.com/tenpin/tenpin/scorecard/internal/sheet"
	"github.com/tenpin/tenpin/scorecard/internal/submit"
)

var submitCmd = &cobra.Command{
	Use:   "submit <path>",
	Short: "Send the games in a sheet file to tenpin-server",
	Long: `Send every game in a sheet file to tenpin-server.

The server endpoint, auth and retry settings come from the scorecard
section of the config file. With strict enabled in config, games that are
not legal completed games are skipped before sending.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		games, err := sheet.ReadFile(args[0])
		if err != nil {
			return err
		}

		var skipped int
		if cfg.Scorecard.Strict {
			valid := make([]types.Game, 0, len(games))
			for i, g := range games {
				if err := bowling.Validate(g.Throws); err != nil {
					skipped++
					fmt.Fprintf(cmd.ErrOrStderr(), "game %d (%s): skipped: %v\n", i+1, bowlerName(g.Bowler), err)
					continue
				}
				valid = append(valid, g)
			}
			games = valid
		}

		client, err := submit.New(cfg.Scorecard)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()

		results, err := client.SubmitAll(ctx, games)
		out := cmd.OutOrStdout()
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			fmt.Fprintf(out, "%s\t%s\t%d\n", r.Scored.ID, bowlerName(r.Scored.Bowler), r.Scored.Score)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "submitted %d of %d games\n", submitted(results), len(results)+skipped)
		if err != nil {
			return err
		}
		if skipped > 0 {
			return fmt.Errorf("%d games skipped as invalid", skipped)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
}

// submitted reports how many results were accepted.
func submitted(results []submit.Result) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}
