package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/solitaire/internal/render"
)

// seedFlag returns the --seed value, or a time-based seed when it was not set.
func seedFlag(cmd *cobra.Command) int64 {
	seed, _ := cmd.Flags().GetInt64("seed")
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().UnixNano()
	}
	return seed
}

func newDealCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deal [variation]",
		Short: "Deal a game and print the table",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.app()
			if err != nil {
				return err
			}
			variation := ""
			if len(args) == 1 {
				variation = args[0]
			}
			rs, err := a.RuleSet(variation)
			if err != nil {
				return err
			}

			seed := seedFlag(cmd)
			s, err := a.NewSession(a.Context(), rs.Name, seed)
			if err != nil {
				return err
			}
			r, err := render.New(e.out, a.Config().Color, a.Registry(), rs)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "seed %d\n", seed)
			return r.Render(s.Snapshot())
		},
	}
	cmd.Flags().Int64("seed", 0, "Shuffle seed (default: time based)")
	return cmd
}
