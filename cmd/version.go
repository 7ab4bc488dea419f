package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden with -ldflags "-X lovlearn/cmd.version=..." on release builds.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lovlearn version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lovlearn %s\n", version)
	},
}
