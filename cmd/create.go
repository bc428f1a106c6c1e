package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"nuxtsmith.dev/pkg/nuxtsmith/internal/domain"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

var createSkipInstallFlag bool
var createSkipUIFlag bool

// supportedPackageManagers are the installer tools create can delegate to.
var supportedPackageManagers = map[string]bool{
	"npm":  true,
	"pnpm": true,
	"yarn": true,
	"bun":  true,
}

// createCmd represents the create command.
var createCmd = newCreateCmd()

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Scaffold a new project",
		Long: `Run the full scaffolding pipeline: initialize the project, install
dependencies, register default modules, migrate the directory layout and
write starter files. Defaults the project name to ` + m.DefaultProjectName + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := m.DefaultProjectName
			if len(args) == 1 {
				name = args[0]
			}

			packageManager := viper.GetString(packageManagerKey)
			if !supportedPackageManagers[packageManager] {
				return fmt.Errorf("unsupported package manager %q", packageManager)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}

			ui := newUI(cmd)
			defer ui.Close()

			return newWorkflow(ui).Create(context.Background(), domain.CreateArgs{
				Name:           name,
				BaseDir:        m.Path(cwd),
				PackageManager: packageManager,
				SkipInstall:    viper.GetBool(createSkipInstallKey),
				SkipUI:         viper.GetBool(createSkipUIKey),
				ReportsDir:     m.Path(viper.GetString(reportsFlagName)),
			})
		},
	}

	configureCreateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func configureCreateFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&createSkipInstallFlag, skipInstallFlagName, viper.GetBool(createSkipInstallKey), "skip dependency installation")
	bindFlagToConfig(cmd.Flags().Lookup(skipInstallFlagName), createSkipInstallKey)

	cmd.Flags().BoolVar(&createSkipUIFlag, skipUIFlagName, viper.GetBool(createSkipUIKey), "skip the component library steps")
	bindFlagToConfig(cmd.Flags().Lookup(skipUIFlagName), createSkipUIKey)
}
