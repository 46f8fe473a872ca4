package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/solitaire/internal/registry"
)

func newValidateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [DIR]",
		Short: "Check that every variation is fully implemented",
		Long: `Validate loads the built-in layouts, plus the layouts in DIR when given,
and composes them with the built-in modules. Every missing
(variation, operation) pair is reported.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				e.layouts = args[0]
			}
			a, err := e.app()
			if err != nil {
				var exitErr *ExitError
				if errors.As(err, &exitErr) {
					return err
				}
				fmt.Fprintf(e.out, "❌ Composition failed:\n%v\n", err)
				var compErr *registry.CompositionError
				if errors.As(err, &compErr) && len(compErr.Missing) > 0 {
					fmt.Fprintf(e.out, "%d missing implementation(s)\n", len(compErr.Missing))
				}
				return err
			}

			fmt.Fprintf(e.out, "✅ %d variation(s) composed.\n", len(a.Variations()))
			for _, rs := range a.Variations() {
				fmt.Fprintf(e.out, "  %s\n", rs.Name)
			}
			return nil
		},
	}
}
