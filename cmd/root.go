package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/unicampus/campusapi/cmd/professors"
	"github.com/unicampus/campusapi/cmd/students"
	"github.com/unicampus/campusapi/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "campusapi",
	Short: "University campus management API server",
	Long: `Campus API serves student, professor, course and enrollment management
over HTTP with JWT-based authentication and role-based access control.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("db-url", "", "Database connection URL (env: DATABASE_URL)")
	rootCmd.PersistentFlags().String("server-addr", "", "Server bind address (env: SERVER_ADDR)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (env: DEBUG)")

	// Add subcommands
	rootCmd.AddCommand(students.StudentsCmd)
	rootCmd.AddCommand(professors.ProfessorsCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
