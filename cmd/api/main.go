package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/config"
	appHTTP "github.com/fieldsquad/fieldops-backend-go/internal/handler/http"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/cron"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/database"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/jwt"
	"github.com/fieldsquad/fieldops-backend-go/internal/repository/postgresql"
	attendanceService "github.com/fieldsquad/fieldops-backend-go/internal/service/attendance"
	employeeService "github.com/fieldsquad/fieldops-backend-go/internal/service/employee"
	inventoryService "github.com/fieldsquad/fieldops-backend-go/internal/service/inventory"
	payrollService "github.com/fieldsquad/fieldops-backend-go/internal/service/payroll"
	reconciliationService "github.com/fieldsquad/fieldops-backend-go/internal/service/reconciliation"
	salesService "github.com/fieldsquad/fieldops-backend-go/internal/service/sales"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	saleEventRepo := postgresql.NewSaleEventRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryRecordRepo := postgresql.NewSalaryRecordRepository(db)
	runRepo := postgresql.NewRunRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	JWTService := jwt.NewJWTService(cfg.Auth.JWTSecret)
	calculator := payrollService.NewCalculator()

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	inventorySvc := inventoryService.NewInventoryService(assignmentRepo, employeeRepo)
	salesSvc := salesService.NewSalesService(saleEventRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(salaryRecordRepo, employeeRepo, attendanceRepo, saleEventRepo, calculator)
	reconciliationSvc := reconciliationService.NewReconciliationService(
		txRunner,
		assignmentRepo,
		saleEventRepo,
		runRepo,
		cfg.Jobs.WorkerLimit,
		cfg.Jobs.RecordTimeout,
	)

	inventoryHandler := appHTTP.NewInventoryHandler(inventorySvc)
	salesHandler := appHTTP.NewSalesHandler(salesSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	reconciliationHandler := appHTTP.NewReconciliationHandler(reconciliationSvc)

	router := appHTTP.NewRouter(
		JWTService,
		inventoryHandler,
		salesHandler,
		attendanceHandler,
		employeeHandler,
		payrollHandler,
		reconciliationHandler,
	)

	scheduler := cron.NewScheduler()
	reconciliationJobs := cron.NewReconciliationJobs(reconciliationSvc, cfg.Jobs)
	if err := reconciliationJobs.Register(scheduler); err != nil {
		log.Fatal("Failed to register reconciliation job:", err)
	}
	scheduler.Start()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
