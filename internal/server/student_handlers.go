package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/unicampus/campusapi/internal/apierror"
	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/unicampus/campusapi/internal/services/students"
)

type studentRequest struct {
	Name          string `json:"name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	StudentNumber string `json:"student_number"`
	Password      string `json:"password"`
}

type studentResponse struct {
	ID            int64  `json:"idStudent"`
	Name          string `json:"name"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	StudentNumber string `json:"studentNumber"`
}

func toStudentResponse(s *models.Student) studentResponse {
	return studentResponse{
		ID:            s.ID,
		Name:          s.Name,
		LastName:      s.LastName,
		Email:         s.Email,
		Address:       s.Address,
		Phone:         s.Phone,
		StudentNumber: s.StudentNumber,
	}
}

func toStudentResponses(list []models.Student) []studentResponse {
	out := make([]studentResponse, 0, len(list))
	for i := range list {
		out = append(out, toStudentResponse(&list[i]))
	}
	return out
}

// StudentHandler serves the student management endpoints.
type StudentHandler struct {
	service *students.Service
	logger  *zap.Logger
}

// NewStudentHandler constructs the student handler.
func NewStudentHandler(service *students.Service, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{service: service, logger: logger}
}

// Create handles POST /api/estudiante.
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, apierror.MessageMalformedBody)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	student, err := h.service.Create(r.Context(), students.Input{
		Name:          req.Name,
		LastName:      req.LastName,
		Email:         req.Email,
		Address:       req.Address,
		Phone:         req.Phone,
		StudentNumber: req.StudentNumber,
		PasswordHash:  string(hash),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStudentResponse(student))
}

// List handles GET /api/estudiante.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toStudentResponses(list))
}

// Get handles GET /api/estudiante/{id}.
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, students.ErrNotFound)
		return
	}
	student, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toStudentResponse(student))
}

// Update handles PUT /api/estudiante/{id}.
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, students.ErrNotFound)
		return
	}

	var req studentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, apierror.MessageMalformedBody)
		return
	}

	student, err := h.service.Update(r.Context(), id, students.Input{
		Name:          req.Name,
		LastName:      req.LastName,
		Email:         req.Email,
		Address:       req.Address,
		Phone:         req.Phone,
		StudentNumber: req.StudentNumber,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toStudentResponse(student))
}

// Delete handles DELETE /api/estudiante/{id}.
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, students.ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /api/estudiante/buscar?b=<text>.
func (h *StudentHandler) Search(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.SearchByName(r.Context(), r.URL.Query().Get("b"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toStudentResponses(list))
}
