// Package authn implements the login flow: credential lookup, password
// verification and token minting. It never writes to storage.
package authn

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/unicampus/campusapi/internal/auth"
	"github.com/unicampus/campusapi/internal/repository"
)

// Login failure errors. The message text is surfaced verbatim in the error
// envelope; it never reveals whether the email exists.
var (
	ErrInvalidStudentCredentials   = errors.New("EL CORREO ELECTRÓNICO O LA CONTRASEÑA DEL ESTUDIANTE SON INCORRECTOS")
	ErrInvalidProfessorCredentials = errors.New("EL CORREO ELECTRÓNICO O LA CONTRASEÑA DEL PROFESOR SON INCORRECTOS")
	ErrMissingCredentials          = errors.New("EL CORREO ELECTRÓNICO O LA CONTRASEÑA SON INCORRECTOS")
)

// Credential is the minimal record the authenticator needs from a store.
type Credential struct {
	Subject      string
	PasswordHash string
	Roles        []string
}

// CredentialResolver looks up a credential record by exact email match.
// A miss of any kind (no row, inactive account) returns (nil, nil); the
// authenticator must not be able to tell those apart.
type CredentialResolver interface {
	LookupByEmail(ctx context.Context, email string) (*Credential, error)
}

// StudentResolver adapts the student repository to CredentialResolver.
type StudentResolver struct {
	repo repository.StudentRepository
}

func NewStudentResolver(repo repository.StudentRepository) *StudentResolver {
	return &StudentResolver{repo: repo}
}

func (r *StudentResolver) LookupByEmail(ctx context.Context, email string) (*Credential, error) {
	student, err := r.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &Credential{
		Subject:      student.Email,
		PasswordHash: student.PasswordHash,
		Roles:        student.Roles,
	}, nil
}

// ProfessorResolver adapts the professor repository to CredentialResolver.
type ProfessorResolver struct {
	repo repository.ProfessorRepository
}

func NewProfessorResolver(repo repository.ProfessorRepository) *ProfessorResolver {
	return &ProfessorResolver{repo: repo}
}

func (r *ProfessorResolver) LookupByEmail(ctx context.Context, email string) (*Credential, error) {
	professor, err := r.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &Credential{
		Subject:      professor.Email,
		PasswordHash: professor.PasswordHash,
		Roles:        professor.Roles,
	}, nil
}

// Service performs logins against the two credential stores with a shared
// token codec. One instance serves both realms; the realm only selects the
// resolver and the failure error.
type Service struct {
	students   CredentialResolver
	professors CredentialResolver
	codec      *auth.TokenCodec
	logger     *zap.Logger
}

// NewService constructs the authenticator.
func NewService(students, professors CredentialResolver, codec *auth.TokenCodec, logger *zap.Logger) *Service {
	return &Service{
		students:   students,
		professors: professors,
		codec:      codec,
		logger:     logger,
	}
}

// LoginStudent authenticates against the student store and mints a token.
func (s *Service) LoginStudent(ctx context.Context, email, password string, now time.Time) (string, error) {
	return s.login(ctx, s.students, ErrInvalidStudentCredentials, email, password, now)
}

// LoginProfessor authenticates against the professor store and mints a token.
func (s *Service) LoginProfessor(ctx context.Context, email, password string, now time.Time) (string, error) {
	return s.login(ctx, s.professors, ErrInvalidProfessorCredentials, email, password, now)
}

// login is the single authentication path. Every failure mode of a realm
// (unknown email, wrong password, malformed stored hash) collapses into that
// realm's one error so responses and logs outside this package cannot leak
// which condition occurred. On a resolver miss the password is still burned
// against a fixed dummy hash so the wall-clock cost matches the hit path.
func (s *Service) login(ctx context.Context, resolver CredentialResolver, failure error, email, password string, now time.Time) (string, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return "", ErrMissingCredentials
	}

	credential, err := resolver.LookupByEmail(ctx, email)
	if err != nil {
		s.logger.Error("credential lookup failed", zap.Error(err))
		return "", failure
	}

	if credential == nil {
		auth.VerifyPassword(auth.DummyPasswordHash, password)
		s.logger.Debug("login rejected, unknown email")
		return "", failure
	}

	if !auth.VerifyPassword(credential.PasswordHash, password) {
		s.logger.Debug("login rejected, password mismatch", zap.String("subject", credential.Subject))
		return "", failure
	}

	token, err := s.codec.Mint(credential.Subject, credential.Roles, now)
	if err != nil {
		s.logger.Error("token mint failed", zap.String("subject", credential.Subject), zap.Error(err))
		return "", failure
	}

	s.logger.Info("login succeeded", zap.String("subject", credential.Subject))
	return token, nil
}
