package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/roster-backend-go/internal/config"
	"github.com/cmlabs-hris/roster-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

var defaultAllowedOrigins = []string{"http://localhost:3000"}

func NewRouter(cfg *config.Config, JWTService jwt.Service, shiftHandler ShiftLookupHandler, factsHandler AttendanceFactsHandler, syncHandler SyncHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       cfg.SlogLevel(),
	})).With(
		slog.String("app", "roster-backend"),
		slog.String("env", cfg.App.Env),
	)

	allowedOrigins := cfg.App.CORSAllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = defaultAllowedOrigins
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/employees/{employeeID}/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.LookupShifts)
				r.Get("/{date}", shiftHandler.GetShiftByDate)
			})
			r.Post("/shifts/batch-lookup", shiftHandler.BatchLookup)

			r.Route("/attendance-facts", func(r chi.Router) {
				r.Post("/leave", factsHandler.Leave)
				r.Post("/overtime", factsHandler.Overtime)
				r.Post("/r-shifts", factsHandler.RShifts)
				r.Post("/summary", factsHandler.Summary)
				r.Post("/import", factsHandler.ImportGrid)
			})

			// Admin only
			r.Route("/sync", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Post("/dates/{date}", syncHandler.SyncAllDepartments)
				r.Route("/departments/{department}", func(r chi.Router) {
					r.Post("/dates/{date}", syncHandler.SyncDepartmentDate)
					r.Post("/range", syncHandler.SyncDepartmentRange)
					r.Get("/status", syncHandler.GetStatus)
					r.Get("/unprocessed", syncHandler.GetUnprocessedDates)
				})
			})
		})
	})
	return r
}
