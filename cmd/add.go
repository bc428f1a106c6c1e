package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

// addCmd groups the module and component adder commands.
var addCmd = newAddCmd()

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a module or component to the current project",
	}

	cmd.AddCommand(newAddModuleCmd())
	cmd.AddCommand(newAddComponentCmd())

	return cmd
}

func newAddModuleCmd() *cobra.Command {
	var packageFlag string

	cmd := &cobra.Command{
		Use:   "module <name>",
		Short: "Add a framework module and register it in nuxt.config.ts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}

			ui := newUI(cmd)
			defer ui.Close()

			return newWorkflow(ui).AddModule(context.Background(), m.Path(cwd), args[0], packageFlag)
		},
	}

	cmd.Flags().StringVar(&packageFlag, "package", "", "package name to register when it differs from the module name")

	return cmd
}

func newAddComponentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "component <name>...",
		Short: "Add component library components",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}

			ui := newUI(cmd)
			defer ui.Close()

			return newWorkflow(ui).AddComponents(context.Background(), m.Path(cwd), args)
		},
	}
}

func init() {
	rootCmd.AddCommand(addCmd)
}
