package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hrms-lite-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hrms-lite-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/hrmsapi"
	attendanceService "github.com/cmlabs-hris/hrms-lite-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-lite-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite-go/internal/service/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	loc, err := cfg.Location()
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		os.Exit(1)
	}

	client, err := hrmsapi.NewClient(cfg.HRMSAPI)
	if err != nil {
		fmt.Println("Error creating HRMS API client:", err)
		os.Exit(1)
	}

	employeeRepo := hrmsapi.NewEmployeeRepository(client)
	attendanceRepo := hrmsapi.NewAttendanceRepository(client)
	records := store.NewRecords()

	employeeSvc := employeeService.NewEmployeeService(employeeRepo, records)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, records, nil, loc)
	dashboardSvc := dashboardService.NewDashboardService(employeeRepo, attendanceRepo, records, nil, loc)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		cfg,
		employeeHandler,
		attendanceHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("server starting", "addr", port, "hrms_api", cfg.HRMSAPI.BaseURL, "env", cfg.App.Env)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
		os.Exit(1)
	}
}
