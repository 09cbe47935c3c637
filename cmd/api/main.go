package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/resto-ops/backoffice-go/internal/config"
	appHTTP "github.com/resto-ops/backoffice-go/internal/handler/http"
	"github.com/resto-ops/backoffice-go/internal/pkg/cron"
	"github.com/resto-ops/backoffice-go/internal/pkg/database"
	"github.com/resto-ops/backoffice-go/internal/pkg/jwt"
	"github.com/resto-ops/backoffice-go/internal/repository/postgresql"
	attendanceService "github.com/resto-ops/backoffice-go/internal/service/attendance"
	serviceAuth "github.com/resto-ops/backoffice-go/internal/service/auth"
	payrollService "github.com/resto-ops/backoffice-go/internal/service/payroll"
	penaltyService "github.com/resto-ops/backoffice-go/internal/service/penalty"
	scheduleService "github.com/resto-ops/backoffice-go/internal/service/schedule"
	userService "github.com/resto-ops/backoffice-go/internal/service/user"
	violationService "github.com/resto-ops/backoffice-go/internal/service/violation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	violationRepo := postgresql.NewViolationRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	applicationLog := postgresql.NewApplicationLog(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	userSvc := userService.NewUserService(userRepo)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo)
	violationSvc := violationService.NewViolationService(violationRepo)
	penaltySvc := penaltyService.NewPenaltyService(scheduleRepo, attendanceRepo, userRepo, payrollRepo, applicationLog)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, userRepo, attendanceRepo, violationRepo, scheduleRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	violationHandler := appHTTP.NewViolationHandler(violationSvc)
	penaltyHandler := appHTTP.NewPenaltyHandler(penaltySvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	scheduler := cron.NewScheduler()
	cron.NewBackofficeJobs(attendanceSvc, payrollSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		userHandler,
		scheduleHandler,
		attendanceHandler,
		violationHandler,
		penaltyHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	if err := server.Close(); err != nil {
		fmt.Println("Server close error:", err)
	}
}
