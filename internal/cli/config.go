package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/solitaire/internal/app"
)

func newConfigCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the settings file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := e.settingsPath()
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("settings file %s already exists (use --force to overwrite)", path)
			}
			if err := app.WriteSettings(path, app.DefaultSettings()); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing settings file")

	cmd.AddCommand(initCmd)
	return cmd
}
