package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unicampus/campusapi/internal/auth"
	"github.com/unicampus/campusapi/internal/db/bunx"
	"github.com/unicampus/campusapi/internal/repository"
	"github.com/unicampus/campusapi/internal/server"
	"github.com/unicampus/campusapi/internal/services/authn"
	"github.com/unicampus/campusapi/internal/services/courses"
	"github.com/unicampus/campusapi/internal/services/enrollments"
	"github.com/unicampus/campusapi/internal/services/professors"
	"github.com/unicampus/campusapi/internal/services/students"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the campus API server",
	Long:  `Starts the HTTP server with the login endpoints and the campus management API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cfg.Debug)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer logger.Sync()

		// Signing material is validated up front; a short key or zero
		// lifetime aborts startup.
		signingKey, err := cfg.JWT.SigningKey()
		if err != nil {
			return fmt.Errorf("invalid JWT configuration: %w", err)
		}
		codec, err := auth.NewTokenCodec(signingKey, cfg.JWT.Lifetime())
		if err != nil {
			return fmt.Errorf("invalid JWT configuration: %w", err)
		}

		// Connect to database
		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		logger.Info("connected to database")

		// Initialize repositories
		studentRepo := repository.NewBunStudentRepository(db)
		professorRepo := repository.NewBunProfessorRepository(db)
		courseRepo := repository.NewBunCourseRepository(db)
		enrollmentRepo := repository.NewBunEnrollmentRepository(db)

		// Initialize services
		authnService := authn.NewService(
			authn.NewStudentResolver(studentRepo),
			authn.NewProfessorResolver(professorRepo),
			codec,
			logger,
		)
		studentService := students.NewService(studentRepo)
		professorService := professors.NewService(professorRepo)
		courseService := courses.NewService(courseRepo, professorRepo)
		enrollmentService := enrollments.NewService(enrollmentRepo, courseRepo)

		handler := server.NewH2CHandler(server.RouterOptions{
			Authn:       authnService,
			Students:    studentService,
			Professors:  professorService,
			Courses:     courseService,
			Enrollments: enrollmentService,
			Codec:       codec,
			PolicyTable: auth.DefaultPolicyTable(),
			Logger:      logger,
		})

		srv := &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Start server in goroutine
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting server", zap.String("addr", cfg.ServerAddr))
			serverErrors <- srv.ListenAndServe()
		}()

		// Wait for interrupt signal
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down gracefully", zap.String("signal", sig.String()))

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			logger.Info("server stopped")
			return nil
		}
	},
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
