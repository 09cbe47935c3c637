package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/resto-ops/backoffice-go/internal/handler/http/middleware"
	"github.com/resto-ops/backoffice-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	scheduleHandler ScheduleHandler,
	attendanceHandler AttendanceHandler,
	violationHandler ViolationHandler,
	penaltyHandler PenaltyHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "resto-backoffice"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", userHandler.List)
				})

				// Owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Post("/", userHandler.Create)
					r.Put("/{userID}/hourly-rate", userHandler.UpdateHourlyRate)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", scheduleHandler.ListForRange)
				r.Get("/{weekID}", scheduleHandler.GetByWeek)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Put("/{weekID}", scheduleHandler.Upsert)
					r.Put("/{weekID}/published", scheduleHandler.SetPublished)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Post("/{userID}/breaks/start", attendanceHandler.StartBreak)
				r.Post("/{userID}/breaks/end", attendanceHandler.EndBreak)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Put("/{recordID}", attendanceHandler.Correct)
				})
			})

			r.Route("/violations", func(r chi.Router) {
				r.Get("/", violationHandler.List)
				r.Post("/{violationID}/penalty", violationHandler.SubmitPenalty)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", violationHandler.Create)
					r.Post("/{violationID}/waive", violationHandler.Waive)
				})
			})

			// Manager only
			r.Route("/penalties", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/absences", penaltyHandler.ListAbsences)
				r.Post("/apply", penaltyHandler.ApplyPenalty)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/{monthID}", payrollHandler.GetSheet)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/{monthID}/calculate", payrollHandler.Calculate)
					r.Post("/{monthID}/advances", payrollHandler.AddAdvance)
					r.Post("/{monthID}/bonuses", payrollHandler.AddBonus)
					r.Delete("/{monthID}/adjustments/{adjustmentID}", payrollHandler.DeleteAdjustment)
				})

				// Owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Put("/{monthID}/payments/{userID}", payrollHandler.UpdatePayment)
				})
			})
		})
	})
	return r
}
