package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/unicampus/campusapi/internal/auth"
	campusmiddleware "github.com/unicampus/campusapi/internal/middleware"
	"github.com/unicampus/campusapi/internal/services/authn"
	"github.com/unicampus/campusapi/internal/services/courses"
	"github.com/unicampus/campusapi/internal/services/enrollments"
	"github.com/unicampus/campusapi/internal/services/professors"
	"github.com/unicampus/campusapi/internal/services/students"
)

// RouterOptions controls the construction of the campus HTTP router.
// Sensible defaults are applied where optional fields are not set.
type RouterOptions struct {
	Authn       *authn.Service
	Students    *students.Service
	Professors  *professors.Service
	Courses     *courses.Service
	Enrollments *enrollments.Service

	Codec       *auth.TokenCodec
	PolicyTable *auth.PolicyTable
	Logger      *zap.Logger

	CORSOptions   *cors.Options
	Middleware    []func(http.Handler) http.Handler
	HealthHandler http.HandlerFunc
	ExtraRoutes   func(chi.Router)
}

// DefaultCORSOptions returns the shared development CORS policy.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
		},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func defaultHealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// NewRouter assembles a chi.Router with shared middleware, CORS policy, the
// authentication filter, the authorization gate and the campus handlers.
// The request authenticator always runs before the gate, and the gate before
// every business handler.
func NewRouter(opts RouterOptions) chi.Router {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// Baseline middleware shared across entrypoints.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsCfg := DefaultCORSOptions()
	if opts.CORSOptions != nil {
		corsCfg = *opts.CORSOptions
	}
	r.Use(cors.Handler(corsCfg))

	if opts.Codec != nil {
		r.Use(campusmiddleware.Authenticate(opts.Codec, logger))
	}

	table := opts.PolicyTable
	if table == nil {
		table = auth.DefaultPolicyTable()
	}
	r.Use(campusmiddleware.Authorize(table, logger))

	// Apply custom middleware passed from the caller.
	for _, mw := range opts.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	if opts.Authn != nil {
		authHandler := NewAuthHandler(opts.Authn, logger)
		r.Post("/authenticate/estudiante", authHandler.LoginStudent)
		r.Post("/authenticate/profesor", authHandler.LoginProfessor)
	}

	if opts.Students != nil {
		h := NewStudentHandler(opts.Students, logger)
		r.Route("/api/estudiante", func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/", h.List)
			r.Get("/buscar", h.Search)
			r.Get("/{id}", h.Get)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	}

	if opts.Professors != nil {
		h := NewProfessorHandler(opts.Professors, logger)
		r.Route("/api/profesor", func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/", h.List)
			r.Get("/buscar", h.Search)
			r.Get("/{id}", h.Get)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	}

	if opts.Courses != nil {
		h := NewCourseHandler(opts.Courses, logger)
		r.Route("/api/cursos", func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/", h.List)
			r.Get("/buscarNombre", h.SearchByName)
			r.Get("/buscarCode", h.SearchByCode)
			r.Get("/{id}", h.Get)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	}

	if opts.Enrollments != nil {
		h := NewEnrollmentHandler(opts.Enrollments, logger)
		r.Route("/api/enrollments", func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/", h.List)
			r.Get("/student/{id}", h.ListByStudent)
			r.Get("/course/{id}", h.ListByCourse)
			r.Get("/state/{state}", h.ListByState)
			r.Get("/{id}", h.Get)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	}

	healthHandler := opts.HealthHandler
	if healthHandler == nil {
		healthHandler = defaultHealthHandler
	}
	r.Get("/health", healthHandler)

	if opts.ExtraRoutes != nil {
		opts.ExtraRoutes(r)
	}

	return r
}

// NewH2CHandler wraps the router with an h2c server to provide HTTP/2 over
// cleartext for local development and reverse proxies that speak h2c.
func NewH2CHandler(opts RouterOptions) http.Handler {
	return h2c.NewHandler(NewRouter(opts), &http2.Server{})
}
