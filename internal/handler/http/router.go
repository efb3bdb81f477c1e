package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hrms-lite-go/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	cfg *config.Config,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-lite"),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.Post("/", employeeHandler.SubmitEmployee)
			r.Post("/refresh", employeeHandler.RefreshEmployees)
			r.Put("/filter", employeeHandler.SetFilter)
			r.Delete("/filter", employeeHandler.ClearFilter)
			r.Delete("/edit", employeeHandler.CancelEdit)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.GetEmployee)
				r.Delete("/", employeeHandler.DeleteEmployee)
				r.Post("/edit", employeeHandler.EditEmployee)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.ListAttendance)
			r.Post("/", attendanceHandler.MarkAttendance)
			r.Post("/refresh", attendanceHandler.RefreshAttendance)
			r.Put("/filter", attendanceHandler.SetFilter)
			r.Delete("/filter", attendanceHandler.ClearFilter)
			r.Delete("/{id}", attendanceHandler.DeleteAttendance)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", dashboardHandler.GetDashboard)
			r.Get("/export", dashboardHandler.ExportDashboard)
		})
	})
	return r
}
