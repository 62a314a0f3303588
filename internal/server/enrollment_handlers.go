package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/unicampus/campusapi/internal/apierror"
	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/unicampus/campusapi/internal/services/enrollments"
)

// dateLayout is the wire format of enrollment dates.
const dateLayout = "2006-01-02"

type enrollmentRequest struct {
	Student         int64  `json:"student"`
	Course          int64  `json:"course"`
	EnrollmentDate  string `json:"enrollment_date"`
	EnrollmentState string `json:"enrollment_state"`
}

type enrollmentResponse struct {
	ID              int64  `json:"idEnrollment"`
	StudentID       int64  `json:"idStudent"`
	CourseID        int64  `json:"idCourse"`
	EnrollmentDate  string `json:"enrollmentDate"`
	EnrollmentState string `json:"enrollmentState"`
}

func toEnrollmentResponse(e *models.Enrollment) enrollmentResponse {
	return enrollmentResponse{
		ID:              e.ID,
		StudentID:       e.StudentID,
		CourseID:        e.CourseID,
		EnrollmentDate:  e.EnrollmentDate.Format(dateLayout),
		EnrollmentState: string(e.EnrollmentState),
	}
}

func toEnrollmentResponses(list []models.Enrollment) []enrollmentResponse {
	out := make([]enrollmentResponse, 0, len(list))
	for i := range list {
		out = append(out, toEnrollmentResponse(&list[i]))
	}
	return out
}

// toInput parses the request body into a service input. An omitted date
// defaults to today; an unparseable one is left zero for the service to
// reject.
func (req enrollmentRequest) toInput() enrollments.Input {
	in := enrollments.Input{
		StudentID: req.Student,
		CourseID:  req.Course,
		State:     models.EnrollmentState(req.EnrollmentState),
	}
	if req.EnrollmentDate == "" {
		in.EnrollmentDate = time.Now().Truncate(24 * time.Hour)
		return in
	}
	if date, err := time.Parse(dateLayout, req.EnrollmentDate); err == nil {
		in.EnrollmentDate = date
	}
	return in
}

// EnrollmentHandler serves the enrollment management endpoints.
type EnrollmentHandler struct {
	service *enrollments.Service
	logger  *zap.Logger
}

// NewEnrollmentHandler constructs the enrollment handler.
func NewEnrollmentHandler(service *enrollments.Service, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{service: service, logger: logger}
}

// Create handles POST /api/enrollments.
func (h *EnrollmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req enrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, apierror.MessageMalformedBody)
		return
	}

	enrollment, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEnrollmentResponse(enrollment))
}

// List handles GET /api/enrollments.
func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toEnrollmentResponses(list))
}

// Get handles GET /api/enrollments/{id}.
func (h *EnrollmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, enrollments.ErrNotFound)
		return
	}
	enrollment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toEnrollmentResponse(enrollment))
}

// Update handles PUT /api/enrollments/{id}.
func (h *EnrollmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, enrollments.ErrNotFound)
		return
	}

	var req enrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, apierror.MessageMalformedBody)
		return
	}

	enrollment, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toEnrollmentResponse(enrollment))
}

// Delete handles DELETE /api/enrollments/{id}.
func (h *EnrollmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, enrollments.ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListByStudent handles GET /api/enrollments/student/{id}.
func (h *EnrollmentHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, enrollments.ErrInvalidStudentID)
		return
	}
	list, err := h.service.ListByStudent(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toEnrollmentResponses(list))
}

// ListByCourse handles GET /api/enrollments/course/{id}.
func (h *EnrollmentHandler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, r, h.logger, enrollments.ErrInvalidCourseID)
		return
	}
	list, err := h.service.ListByCourse(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toEnrollmentResponses(list))
}

// ListByState handles GET /api/enrollments/state/{state}.
func (h *EnrollmentHandler) ListByState(w http.ResponseWriter, r *http.Request) {
	state := models.EnrollmentState(chi.URLParam(r, "state"))
	list, err := h.service.ListByState(r.Context(), state)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toEnrollmentResponses(list))
}
