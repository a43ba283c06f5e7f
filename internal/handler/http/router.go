package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pmjgroup/rental-hr-backend-go/internal/handler/http/middleware"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/clock-in", h.Attendance.ClockIn)
			r.Post("/clock-out", h.Attendance.ClockOut)
			r.Get("/today", h.Attendance.GetToday)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", h.Attendance.GetBoard)
				r.Get("/export.csv", h.Attendance.ExportBoard)
				r.Put("/{employeeID}/{date}", h.Attendance.Mark)
			})
		})

		r.Route("/leaves", func(r chi.Router) {
			r.Post("/", h.Leave.Apply)
			r.Get("/", h.Leave.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Put("/{id}/approve", h.Leave.Approve)
				r.Put("/{id}/reject", h.Leave.Reject)
			})
		})

		// Manager only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireManager)

			r.Route("/employees", func(r chi.Router) {
				r.Post("/", h.Employee.CreateEmployee)
				r.Get("/", h.Employee.ListEmployees)
				r.Get("/{id}", h.Employee.GetEmployee)
				r.Put("/{id}", h.Employee.UpdateEmployee)
				r.Put("/{id}/status", h.Employee.SetStatus)
				r.Get("/{id}/attendance", h.Employee.GetAttendanceHistory)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", h.Payroll.GetReport)
				r.Get("/export.csv", h.Payroll.ExportCSV)
				r.Get("/export.xlsx", h.Payroll.ExportXLSX)
			})
		})
	})
	return r
}
