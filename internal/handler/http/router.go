package http

import (
	"log/slog"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigins []string
	LogLevel       slog.Level
	MetricsEnabled bool
}

type Handlers struct {
	Auth           AuthHandler
	Attendance     AttendanceHandler
	Break          BreakHandler
	Penalty        AdjustmentHandler
	Bonus          AdjustmentHandler
	OperatingHours OperatingHoursHandler
	Task           TaskHandler
	Employee       EmployeeHandler
	Payroll        PayrollHandler
	Report         ReportHandler
}

func NewRouter(cfg RouterConfig, logger *slog.Logger, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/badge-login", h.Auth.BadgeLogin)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/status", h.Attendance.Status)
				r.Get("/my", h.Attendance.GetMyAttendance)
				r.Get("/{id}", h.Attendance.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Attendance.List)
					r.Get("/daily-status", h.Attendance.DailyStatus)
					r.Put("/{id}", h.Attendance.Update)
					r.Delete("/{id}/clock-out", h.Attendance.ClearClockOut)
				})
			})

			r.Route("/breaks", func(r chi.Router) {
				r.Post("/start", h.Break.Start)
				r.Post("/end", h.Break.End)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Break.List)
					r.Post("/", h.Break.Create)
					r.Put("/{id}", h.Break.Update)
					r.Delete("/{id}", h.Break.Delete)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Task.List)
				r.Get("/{id}", h.Task.Get)
				r.Patch("/{id}/toggle", h.Task.Toggle)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Task.Create)
					r.Delete("/{id}", h.Task.Delete)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", h.Payroll.GetEmployeePayroll)
				r.Get("/sessions/{attendanceID}", h.Payroll.GetSessionPayroll)
			})

			r.Route("/reports/weekly", func(r chi.Router) {
				r.Get("/", h.Report.GetWeeklyReport)
				r.Get("/export", h.Report.ExportWeeklyReport)
			})

			r.Get("/operating-hours", h.OperatingHours.Get)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Post("/operating-hours", h.OperatingHours.Create)
				r.Put("/operating-hours", h.OperatingHours.Update)

				r.Route("/penalties", func(r chi.Router) {
					r.Get("/", h.Penalty.List)
					r.Post("/", h.Penalty.Create)
					r.Delete("/{id}", h.Penalty.Delete)
				})

				r.Route("/bonuses", func(r chi.Router) {
					r.Get("/", h.Bonus.List)
					r.Post("/", h.Bonus.Create)
					r.Delete("/{id}", h.Bonus.Delete)
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.ListEmployees)
					r.Post("/", h.Employee.CreateEmployee)
					r.Get("/{id}", h.Employee.GetEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
					r.Post("/{id}/badge", h.Employee.RegenerateBadge)
				})
			})
		})
	})

	return r
}
