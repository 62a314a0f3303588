package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/unicampus/campusapi/internal/apierror"
	"github.com/unicampus/campusapi/internal/services/authn"
	"github.com/unicampus/campusapi/internal/services/courses"
	"github.com/unicampus/campusapi/internal/services/enrollments"
	"github.com/unicampus/campusapi/internal/services/professors"
	"github.com/unicampus/campusapi/internal/services/students"
)

// statusFor maps every service error to its HTTP status. Unknown errors are
// internal failures.
var statusFor = []struct {
	err    error
	status int
}{
	{authn.ErrMissingCredentials, http.StatusBadRequest},
	{authn.ErrInvalidStudentCredentials, http.StatusUnauthorized},
	{authn.ErrInvalidProfessorCredentials, http.StatusUnauthorized},

	{students.ErrInvalidEmail, http.StatusBadRequest},
	{students.ErrInvalidPhone, http.StatusBadRequest},
	{students.ErrInvalidStudentNumber, http.StatusBadRequest},
	{students.ErrNotFound, http.StatusNotFound},
	{students.ErrEmailExists, http.StatusConflict},
	{students.ErrNumberExists, http.StatusConflict},

	{professors.ErrInvalidEmail, http.StatusBadRequest},
	{professors.ErrInvalidPhone, http.StatusBadRequest},
	{professors.ErrInvalidRoles, http.StatusBadRequest},
	{professors.ErrNotFound, http.StatusNotFound},
	{professors.ErrEmailExists, http.StatusConflict},

	{courses.ErrInvalidCode, http.StatusBadRequest},
	{courses.ErrInvalidCapacity, http.StatusBadRequest},
	{courses.ErrInvalidProfessor, http.StatusBadRequest},
	{courses.ErrNotFound, http.StatusNotFound},
	{courses.ErrCodeExists, http.StatusConflict},

	{enrollments.ErrInvalidStudentID, http.StatusBadRequest},
	{enrollments.ErrInvalidCourseID, http.StatusBadRequest},
	{enrollments.ErrInvalidDate, http.StatusBadRequest},
	{enrollments.ErrInvalidState, http.StatusBadRequest},
	{enrollments.ErrCourseFull, http.StatusBadRequest},
	{enrollments.ErrNotFound, http.StatusNotFound},
	{enrollments.ErrNoneInState, http.StatusNotFound},
}

// writeError renders a service error through the uniform envelope. Known
// errors surface their own message; anything else becomes an opaque 500.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	for _, m := range statusFor {
		if errors.Is(err, m.err) {
			apierror.Write(w, r, m.status, m.err.Error())
			return
		}
	}

	logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	apierror.Write(w, r, http.StatusInternalServerError, apierror.MessageInternal)
}
