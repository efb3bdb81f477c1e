package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/config"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/hrmsapi"
	attendanceService "github.com/cmlabs-hris/hrms-lite-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-lite-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite-go/internal/service/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/store"
)

func main() {
	cmd := newRootCmd(servicesFromEnv)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// servicesFromEnv wires the page services against the configured HRMS API.
func servicesFromEnv() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	client, err := hrmsapi.NewClient(cfg.HRMSAPI)
	if err != nil {
		return nil, err
	}
	return newServices(client, time.Now, loc), nil
}

func newServices(client *hrmsapi.Client, now func() time.Time, loc *time.Location) *services {
	employeeRepo := hrmsapi.NewEmployeeRepository(client)
	attendanceRepo := hrmsapi.NewAttendanceRepository(client)
	records := store.NewRecords()

	return &services{
		employees:  employeeService.NewEmployeeService(employeeRepo, records),
		attendance: attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, records, now, loc),
		dashboard:  dashboardService.NewDashboardService(employeeRepo, attendanceRepo, records, now, loc),
	}
}
