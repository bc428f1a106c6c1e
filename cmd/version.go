package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the nuxtsmith version",
		Long:  "Displays the nuxtsmith build version, Go version and VCS revision.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				cmd.Println("nuxtsmith (unknown build)")
				return
			}

			version := info.Main.Version
			if version == "" || version == "(devel)" {
				version = "devel"
			}

			cmd.Printf("nuxtsmith %s (%s)\n", version, info.GoVersion)

			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					cmd.Println("revision:", setting.Value)
				}
			}
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
