package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [variation]",
		Short: "Show games played and won",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := e.config()
			if err != nil {
				return err
			}
			store, err := e.store(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			variation := ""
			if len(args) == 1 {
				variation = args[0]
			}
			ctx := cmd.Context()
			stats, err := store.Stats(ctx, variation)
			if err != nil {
				return fmt.Errorf("reading stats: %w", err)
			}
			if len(stats) == 0 {
				fmt.Fprintln(e.out, "No games recorded.")
				return nil
			}

			fmt.Fprintf(e.out, "%-12s %6s %6s %7s\n", "VARIATION", "PLAYED", "WON", "RATE")
			for _, vs := range stats {
				fmt.Fprintf(e.out, "%-12s %6d %6d %6.1f%%\n", vs.Variation, vs.Played, vs.Won, 100*float64(vs.Won)/float64(vs.Played))
			}

			if recent, _ := cmd.Flags().GetInt("recent"); recent > 0 {
				games, err := store.ListGames(ctx, variation, recent)
				if err != nil {
					return fmt.Errorf("listing games: %w", err)
				}
				fmt.Fprintln(e.out)
				for _, g := range games {
					result := "lost"
					if g.Won {
						result = "won"
					}
					fmt.Fprintf(e.out, "%s  %-10s seed %-20d %4d moves  %s\n",
						g.FinishedAt.Local().Format("2006-01-02 15:04"), g.Variation, g.Seed, g.Moves, result)
				}
			}
			return nil
		},
	}
	cmd.Flags().Int("recent", 0, "Also list the N most recent games")
	return cmd
}
