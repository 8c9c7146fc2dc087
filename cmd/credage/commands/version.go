package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credage/credage/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Show the current version of credage`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("credage %s\n", version.Version)
	},
}
