package main

import (
	"os"

	"github.com/spf13/cobra"

	"coachdesk/internal/interfaces/cli/admin"
	"coachdesk/internal/interfaces/cli/migrate"
	"coachdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coachdesk",
		Short: "CoachDesk - subscription and plan management for trainer platforms",
		Long:  `CoachDesk manages the plan catalog, trainer subscriptions, and billing state transitions for a personal trainer platform.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
