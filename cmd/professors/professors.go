package professors

import "github.com/spf13/cobra"

// ProfessorsCmd is the parent command for professor management operations
var ProfessorsCmd = &cobra.Command{
	Use:   "professors",
	Short: "Manage professors",
	Long:  `Commands for managing professor records directly from the server.`,
}

func init() {
	createCmd.Flags().StringVar(&nameFlag, "name", "", "First name of the professor")
	createCmd.Flags().StringVar(&lastNameFlag, "last-name", "", "Last name of the professor")
	createCmd.Flags().StringVar(&emailFlag, "email", "", "Email address (must end in @universidad.com)")
	createCmd.Flags().StringVar(&phoneFlag, "phone", "", "Phone number (optional)")
	createCmd.Flags().StringVar(&addressFlag, "address", "", "Postal address")
	createCmd.Flags().StringVar(&cityFlag, "city", "", "City of residence")
	createCmd.Flags().StringSliceVar(&rolesFlag, "role", []string{}, "Role(s) to assign (ROLE_PROFESSOR, ROLE_ADMIN)")
	createCmd.Flags().StringVar(&passwordFlag, "password", "", "Password (use --stdin to avoid shell history)")
	createCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read password from stdin instead of --password flag")

	ProfessorsCmd.AddCommand(createCmd)
}
