package professors

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/unicampus/campusapi/internal/config"
	"github.com/unicampus/campusapi/internal/db/bunx"
	"github.com/unicampus/campusapi/internal/repository"
	professorsvc "github.com/unicampus/campusapi/internal/services/professors"
)

var (
	nameFlag     string
	lastNameFlag string
	emailFlag    string
	phoneFlag    string
	addressFlag  string
	cityFlag     string
	rolesFlag    []string
	passwordFlag string
	stdinFlag    bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new professor",
	RunE: func(cmd *cobra.Command, args []string) error {
		if nameFlag == "" || lastNameFlag == "" {
			return fmt.Errorf("--name and --last-name flags are required")
		}
		if emailFlag == "" {
			return fmt.Errorf("--email flag is required")
		}

		password := passwordFlag
		if stdinFlag {
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Print("Enter password: ")
			if scanner.Scan() {
				password = scanner.Text()
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}
		if password == "" {
			return fmt.Errorf("password is required (use --password or --stdin)")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		service := professorsvc.NewService(repository.NewBunProfessorRepository(db))
		professor, err := service.Create(context.Background(), professorsvc.Input{
			Name:         nameFlag,
			LastName:     lastNameFlag,
			Email:        emailFlag,
			Phone:        phoneFlag,
			Address:      addressFlag,
			City:         cityFlag,
			Roles:        rolesFlag,
			PasswordHash: string(hash),
		})
		if err != nil {
			return fmt.Errorf("failed to create professor: %w", err)
		}

		fmt.Println("Professor created successfully!")
		fmt.Println("----------------------------------------")
		fmt.Printf("ID: %d\n", professor.ID)
		fmt.Printf("Email: %s\n", professor.Email)
		fmt.Printf("Roles: %s\n", strings.Join(professor.Roles, ", "))
		fmt.Println("----------------------------------------")
		return nil
	},
}
