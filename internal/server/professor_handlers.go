package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/unicampus/campusapi/internal/apierror"
	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/unicampus/campusapi/internal/services/professors"
)

type professorRequest struct {
	Name     string   `json:"name"`
	LastName string   `json:"last_name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	City     string   `json:"city"`
	Roles    []string `json:"roles"`
	Password string   `json:"password"`
}

type professorResponse struct {
	ID       int64    `json:"idProfessor"`
	Name     string   `json:"name"`
	LastName string   `json:"lastName"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	City     string   `json:"city"`
	Roles    []string `json:"roles"`
}

func toProfessorResponse(p *models.Professor) professorResponse {
	return professorResponse{
		ID:       p.ID,
		Name:     p.Name,
		LastName: p.LastName,
		Email:    p.Email,
		Phone:    p.Phone,
		Address:  p.Address,
		City:     p.City,
		Roles:    []string(p.Roles),
	}
}

func toProfessorResponses(list []models.Professor) []professorResponse {
	out := make([]professorResponse, 0, len(list))
	for i := range list {
		out = append(out, toProfessorResponse(&list[i]))
	}
	return out
}

// ProfessorHandler serves the professor management endpoints.
type ProfessorHandler struct {
	service *professors.Service
	logger  *zap.Logger
}

// NewProfessorHandler constructs the professor handler.
func NewProfessorHandler(service *professors.Service, logger *zap.Logger) *ProfessorHandler {
	return &ProfessorHandler{service: service, logger: logger}
}

// Create handles POST /api/profesor.
func (h *ProfessorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req professorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, apierror.MessageMalformedBody)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	professor, err := h.service.Create(r.Context(), professors.Input{
		Name:         req.Name,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Roles:        req.Roles,
		PasswordHash: string(hash),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProfessorResponse(professor))
}

// List handles GET /api/profesor.
func (h *ProfessorHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfessorResponses(list))
}

// Get handles GET /api/profesor/{id}.
func (h *ProfessorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, professors.ErrNotFound)
		return
	}
	professor, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfessorResponse(professor))
}

// Update handles PUT /api/profesor/{id}.
func (h *ProfessorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, professors.ErrNotFound)
		return
	}

	var req professorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, apierror.MessageMalformedBody)
		return
	}

	professor, err := h.service.Update(r.Context(), id, professors.Input{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Roles:    req.Roles,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfessorResponse(professor))
}

// Delete handles DELETE /api/profesor/{id}.
func (h *ProfessorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, professors.ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /api/profesor/buscar?b=<text>.
func (h *ProfessorHandler) Search(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.SearchByName(r.Context(), r.URL.Query().Get("b"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfessorResponses(list))
}
