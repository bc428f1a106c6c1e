package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

// migrateCmd represents the migrate command.
var migrateCmd = newMigrateCmd()

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the current project to the target directory layout",
		Long: `Inspect the current directory against the target layout and move legacy
root-level framework directories into the app/ source directory. A tree
already in the target layout is left untouched.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}

			ui := newUI(cmd)
			defer ui.Close()

			return newWorkflow(ui).MigrateLayout(context.Background(), m.Path(cwd))
		},
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
