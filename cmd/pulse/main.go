package main

//	@title			ProjectPulse API
//	@version		1.0
//	@description	Project management API. Every read and write falls back to the sample dataset when the database is unreachable.
//	@schemes		http https
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token (e.g., "Bearer eyJ...")

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "ProjectPulse project management service",
	Long: `ProjectPulse serves projects, tasks, users, notifications and time entries over HTTP.
Reads and writes go to the database when it is enabled and reachable and to the built-in
sample dataset otherwise.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(tasksCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
