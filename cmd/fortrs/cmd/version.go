// SPDX-License-Identifier: MIT
package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "fortrs v%s\n", Version)
		fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
		fmt.Fprintf(w, "  Build Date: %s\n", BuildDate)
		fmt.Fprintf(w, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
