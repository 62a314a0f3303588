package students

import "github.com/spf13/cobra"

// StudentsCmd is the parent command for student management operations
var StudentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Manage students",
	Long:  `Commands for managing student records directly from the server.`,
}

func init() {
	createCmd.Flags().StringVar(&nameFlag, "name", "", "First name of the student")
	createCmd.Flags().StringVar(&lastNameFlag, "last-name", "", "Last name of the student")
	createCmd.Flags().StringVar(&emailFlag, "email", "", "Email address (must end in @universidad.com)")
	createCmd.Flags().StringVar(&addressFlag, "address", "", "Postal address")
	createCmd.Flags().StringVar(&phoneFlag, "phone", "", "Phone number (optional)")
	createCmd.Flags().StringVar(&numberFlag, "student-number", "", "Campus-issued student number (8-10 digits)")
	createCmd.Flags().StringVar(&passwordFlag, "password", "", "Password (use --stdin to avoid shell history)")
	createCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read password from stdin instead of --password flag")

	StudentsCmd.AddCommand(createCmd)
}
