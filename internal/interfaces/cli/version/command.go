package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boomerhub/boomerhub/internal/shared/version"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "boomerhub %s (commit %s)\n", info.Version, info.Commit)
		},
	}
}
