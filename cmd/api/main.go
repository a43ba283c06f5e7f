package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/pmjgroup/rental-hr-backend-go/internal/config"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/payroll"
	appHTTP "github.com/pmjgroup/rental-hr-backend-go/internal/handler/http"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/cron"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/database"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/jwt"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/utils"
	"github.com/pmjgroup/rental-hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/pmjgroup/rental-hr-backend-go/internal/service/attendance"
	employeeService "github.com/pmjgroup/rental-hr-backend-go/internal/service/employee"
	leaveService "github.com/pmjgroup/rental-hr-backend-go/internal/service/leave"
	payrollService "github.com/pmjgroup/rental-hr-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "rental-hr"),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, leaveRequestRepo, attendanceService.Options{
		Location:   cfg.Attendance.Location,
		LateCutoff: cfg.Attendance.LateCutoff,
		Geofence: utils.Geofence{
			Latitude:     cfg.Attendance.SiteLatitude,
			Longitude:    cfg.Attendance.SiteLongitude,
			RadiusMeters: cfg.Attendance.SiteRadiusMeters,
		},
	})
	leaveSvc := leaveService.NewLeaveService(tx, leaveRequestRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(employeeRepo, attendanceRepo, leaveRequestRepo, payroll.Settings{
		WorkingDaysPerMonth: cfg.Payroll.WorkingDaysPerMonth,
		LatePenaltyFraction: cfg.Payroll.LatePenaltyFraction,
	})

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       slog.LevelDebug,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, JWTService, appHTTP.Handlers{
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc, attendanceSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
	})

	scheduler := cron.NewScheduler()
	if cfg.Attendance.AutoMarkAbsent {
		cron.NewAttendanceJobs(attendanceSvc, cfg.Attendance.Location).RegisterJobs(scheduler)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
