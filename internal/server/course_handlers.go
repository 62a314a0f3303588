package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/unicampus/campusapi/internal/apierror"
	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/unicampus/campusapi/internal/services/courses"
)

type courseRequest struct {
	Name        string `json:"name"`
	CourseCode  string `json:"course_code"`
	Description string `json:"description"`
	MaxCapacity int    `json:"max_capacity"`
	ProfessorID int64  `json:"professor_id"`
}

type courseResponse struct {
	ID          int64  `json:"id_course"`
	Name        string `json:"name"`
	CourseCode  string `json:"course_code"`
	Description string `json:"description"`
	MaxCapacity int    `json:"max_capacity"`
	ProfessorID int64  `json:"professor_id"`
}

func toCourseResponse(c *models.Course) courseResponse {
	return courseResponse{
		ID:          c.ID,
		Name:        c.Name,
		CourseCode:  c.CourseCode,
		Description: c.Description,
		MaxCapacity: c.MaxCapacity,
		ProfessorID: c.ProfessorID,
	}
}

func toCourseResponses(list []models.Course) []courseResponse {
	out := make([]courseResponse, 0, len(list))
	for i := range list {
		out = append(out, toCourseResponse(&list[i]))
	}
	return out
}

// CourseHandler serves the course management endpoints.
type CourseHandler struct {
	service *courses.Service
	logger  *zap.Logger
}

// NewCourseHandler constructs the course handler.
func NewCourseHandler(service *courses.Service, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{service: service, logger: logger}
}

// Create handles POST /api/cursos.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, apierror.MessageMalformedBody)
		return
	}

	course, err := h.service.Create(r.Context(), courses.Input{
		Name:        req.Name,
		CourseCode:  req.CourseCode,
		Description: req.Description,
		MaxCapacity: req.MaxCapacity,
		ProfessorID: req.ProfessorID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCourseResponse(course))
}

// List handles GET /api/cursos.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCourseResponses(list))
}

// Get handles GET /api/cursos/{id}.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, courses.ErrNotFound)
		return
	}
	course, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCourseResponse(course))
}

// Update handles PUT /api/cursos/{id}.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, courses.ErrNotFound)
		return
	}

	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, apierror.MessageMalformedBody)
		return
	}

	course, err := h.service.Update(r.Context(), id, courses.Input{
		Name:        req.Name,
		CourseCode:  req.CourseCode,
		Description: req.Description,
		MaxCapacity: req.MaxCapacity,
		ProfessorID: req.ProfessorID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCourseResponse(course))
}

// Delete handles DELETE /api/cursos/{id}.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, courses.ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchByName handles GET /api/cursos/buscarNombre?n=<text>.
func (h *CourseHandler) SearchByName(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.SearchByName(r.Context(), r.URL.Query().Get("n"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCourseResponses(list))
}

// SearchByCode handles GET /api/cursos/buscarCode?c=<text>.
func (h *CourseHandler) SearchByCode(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.SearchByCode(r.Context(), r.URL.Query().Get("c"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCourseResponses(list))
}
