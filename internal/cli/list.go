package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available variations",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.app()
			if err != nil {
				return err
			}
			for _, rs := range a.Variations() {
				fmt.Fprintf(e.out, "%-12s %d deck(s), %d containers  %s\n",
					rs.Name, rs.Decks, rs.ContainerCount(), rs.Description)
			}
			return nil
		},
	}
}
