package students

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/unicampus/campusapi/internal/config"
	"github.com/unicampus/campusapi/internal/db/bunx"
	"github.com/unicampus/campusapi/internal/repository"
	studentsvc "github.com/unicampus/campusapi/internal/services/students"
)

var (
	nameFlag     string
	lastNameFlag string
	emailFlag    string
	addressFlag  string
	phoneFlag    string
	numberFlag   string
	passwordFlag string
	stdinFlag    bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new student",
	RunE: func(cmd *cobra.Command, args []string) error {
		if nameFlag == "" || lastNameFlag == "" {
			return fmt.Errorf("--name and --last-name flags are required")
		}
		if emailFlag == "" {
			return fmt.Errorf("--email flag is required")
		}
		if numberFlag == "" {
			return fmt.Errorf("--student-number flag is required")
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

		service := studentsvc.NewService(repository.NewBunStudentRepository(db))
		student, err := service.Create(context.Background(), studentsvc.Input{
			Name:          nameFlag,
			LastName:      lastNameFlag,
			Email:         emailFlag,
			Address:       addressFlag,
			Phone:         phoneFlag,
			StudentNumber: numberFlag,
			PasswordHash:  string(hash),
		})
		if err != nil {
			return fmt.Errorf("failed to create student: %w", err)
		}

		fmt.Println("Student created successfully!")
		fmt.Println("----------------------------------------")
		fmt.Printf("ID: %d\n", student.ID)
		fmt.Printf("Email: %s\n", student.Email)
		fmt.Printf("Student number: %s\n", student.StudentNumber)
		fmt.Println("----------------------------------------")
		return nil
	},
}
