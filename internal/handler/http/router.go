package http

import (
	"log/slog"
	"os"

	"github.com/fieldsquad/fieldops-backend-go/internal/handler/http/middleware"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	inventoryHandler InventoryHandler,
	salesHandler SalesHandler,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	payrollHandler PayrollHandler,
	reconciliationHandler ReconciliationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fieldops"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/assignments", func(r chi.Router) {
				r.Get("/", inventoryHandler.List)
				r.Post("/", inventoryHandler.Create)
				r.Get("/{id}", inventoryHandler.Get)
			})

			r.Route("/sales", func(r chi.Router) {
				r.Post("/", salesHandler.Record)
				r.Get("/employee/{employeeID}", salesHandler.ListByEmployee)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/employee/{employeeID}", attendanceHandler.ListByEmployee)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListActive)
				r.Get("/{id}", employeeHandler.Get)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/compute", payrollHandler.Compute)
				r.Get("/salary/{employeeID}", payrollHandler.GetSalary)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/repair-breakdowns", payrollHandler.RepairBreakdowns)
				})
			})

			r.Route("/reconciliation", func(r chi.Router) {
				r.Get("/runs/{cohortDate}", reconciliationHandler.GetRun)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/runs", reconciliationHandler.Trigger)
				})
			})
		})
	})
	return r
}
