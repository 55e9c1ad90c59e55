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

	"github.com/cmlabs-hris/shopclock-backend-go/internal/config"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	appHTTP "github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/repository/postgresql"
	adjustmentService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/adjustment"
	attendanceService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/shopclock-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/employee"
	operatingHoursService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/operatinghours"
	payrollService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/report"
	taskService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/task"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Invalid timezone", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	lateRecordRepo := postgresql.NewLateRecordRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	operatingHoursRepo := postgresql.NewOperatingHoursRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)

	clk := clock.New()
	businessDay := worktime.BusinessDay{StartHour: cfg.BusinessDay.StartHour, Location: loc}
	rounding := payrollService.Rounding{CurrencyPlaces: cfg.Payroll.CurrencyPlaces}
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	sheetLoader := payrollService.NewSheetLoader(breakRepo, lateRecordRepo, adjustmentRepo, employeeRepo)

	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		attendanceService.Repositories{
			Attendance:     attendanceRepo,
			Break:          breakRepo,
			LateRecord:     lateRecordRepo,
			Employee:       employeeRepo,
			OperatingHours: operatingHoursRepo,
		},
		sheetLoader,
		clk,
		businessDay,
		rounding,
	)
	breakSvc := attendanceService.NewBreakService(transactor, attendanceRepo, breakRepo, sheetLoader, clk, rounding)
	adjustmentSvc := adjustmentService.NewAdjustmentService(transactor, attendanceRepo, adjustmentRepo)
	authService := serviceAuth.NewAuthService(employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(transactor, employeeRepo)
	operatingHoursSvc := operatingHoursService.NewOperatingHoursService(transactor, operatingHoursRepo)
	taskSvc := taskService.NewTaskService(transactor, taskRepo, employeeRepo, clk)
	payrollSvc := payrollService.NewPayrollService(attendanceRepo, employeeRepo, sheetLoader, rounding, businessDay)
	reportSvc := reportService.NewReportService(employeeRepo, attendanceRepo, taskRepo, sheetLoader, rounding, businessDay, clk)

	if cfg.App.MetricsEnabled {
		metrics.Register()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			LogLevel:       cfg.LogLevel(),
			MetricsEnabled: cfg.App.MetricsEnabled,
		},
		logger,
		JWTService,
		appHTTP.Handlers{
			Auth:           appHTTP.NewAuthHandler(authService),
			Attendance:     appHTTP.NewAttendanceHandler(attendanceSvc, businessDay, clk),
			Break:          appHTTP.NewBreakHandler(breakSvc, attendanceSvc),
			Penalty:        appHTTP.NewAdjustmentHandler(adjustmentSvc, adjustment.KindPenalty),
			Bonus:          appHTTP.NewAdjustmentHandler(adjustmentSvc, adjustment.KindBonus),
			OperatingHours: appHTTP.NewOperatingHoursHandler(operatingHoursSvc),
			Task:           appHTTP.NewTaskHandler(taskSvc),
			Employee:       appHTTP.NewEmployeeHandler(employeeSvc),
			Payroll:        appHTTP.NewPayrollHandler(payrollSvc),
			Report:         appHTTP.NewReportHandler(reportSvc),
		},
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, clk, cfg.Jobs.StaleSessionAfter).RegisterJobs(scheduler, cfg.Jobs.OpenSessionInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String(), "business_day_start_hour", businessDay.StartHour)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
