// Package cmd provides the root command and CLI setup for nuxtsmith.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"nuxtsmith.dev/pkg/nuxtsmith/internal/adapter"
	"nuxtsmith.dev/pkg/nuxtsmith/internal/controller"
	"nuxtsmith.dev/pkg/nuxtsmith/internal/domain"
)

var fsAdapter adapter.ProjectFSAdapter
var toolAdapter adapter.ToolRunnerAdapter
var reportStore adapter.RunReportStore

// reportsOutputDirFlag is a root-level flag naming the run-report directory
// inside the scaffolded project.
var reportsOutputDirFlag string

// packageManagerFlag selects the dependency installer tool.
var packageManagerFlag string

// logFileFlag overrides the log file path.
var logFileFlag string

// plainFlag forces plain line output even on a terminal.
var plainFlag bool

// verboseFlag switches file logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalProjectFSAdapter()
	toolAdapter = adapter.NewLocalToolRunnerAdapter()
	reportStore = adapter.NewRunReportStore()
}

const rootLongDescription = `nuxtsmith scaffolds a Nuxt 4 style project: it drives the framework's own
generator tools, registers default modules in nuxt.config.ts, migrates a
legacy directory layout into the app/ source directory and writes starter
files.

Every step is idempotent: a run that failed halfway is recovered by simply
running the same command again.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nuxtsmith",
		Short: "Nuxt project scaffolder",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, reportsFlagName, "o",
			viper.GetString(reportsFlagName),
			"directory for run reports, relative to the project root",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(reportsFlagName), reportsFlagName)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().StringVar(&packageManagerFlag, packageManagerFlagName, viper.GetString(packageManagerKey), "package manager for dependency installation (npm|pnpm|yarn|bun)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(packageManagerFlagName), packageManagerKey)

	cmd.PersistentFlags().BoolVar(&plainFlag, plainFlagName, viper.GetBool(plainUIKey), "plain line output instead of the live progress view")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(plainFlagName), plainUIKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "debug-level logging to the log file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// newUI builds the UI for one command invocation, once flags are parsed.
func newUI(cmd *cobra.Command) controller.UI {
	interactive := controller.IsTTY(os.Stdout) && !viper.GetBool(plainUIKey)
	return controller.NewUI(cmd, interactive)
}

// newWorkflow wires a workflow around the shared adapters and the given UI.
func newWorkflow(ui controller.UI) *domain.Workflow {
	return domain.NewWorkflow(fsAdapter, toolAdapter, reportStore, ui)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
