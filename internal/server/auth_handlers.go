package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/unicampus/campusapi/internal/apierror"
	"github.com/unicampus/campusapi/internal/services/authn"
)

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authenticateResponse struct {
	JWT string `json:"jwt"`
}

// AuthHandler serves the two login endpoints.
type AuthHandler struct {
	service *authn.Service
	logger  *zap.Logger
}

// NewAuthHandler constructs the login handler.
func NewAuthHandler(service *authn.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// LoginStudent handles POST /authenticate/estudiante.
func (h *AuthHandler) LoginStudent(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.service.LoginStudent)
}

// LoginProfessor handles POST /authenticate/profesor.
func (h *AuthHandler) LoginProfessor(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.service.LoginProfessor)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, loginFn func(ctx context.Context, email, password string, now time.Time) (string, error)) {
	var req authenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, apierror.MessageMalformedBody)
		return
	}

	token, err := loginFn(r.Context(), req.Email, req.Password, time.Now())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, authenticateResponse{JWT: token})
}
