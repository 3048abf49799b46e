package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/boomerhub/boomerhub/internal/interfaces/cli/migrate"
	"github.com/boomerhub/boomerhub/internal/interfaces/cli/server"
	"github.com/boomerhub/boomerhub/internal/interfaces/cli/token"
	"github.com/boomerhub/boomerhub/internal/interfaces/cli/usage"
	"github.com/boomerhub/boomerhub/internal/interfaces/cli/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "boomerhub",
		Short:        "BoomerHub AI usage quota service",
		Long:         `BoomerHub tracks per-identity daily AI usage for guests and registered users and fronts the site's AI tools.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		usage.NewCommand(),
		token.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
