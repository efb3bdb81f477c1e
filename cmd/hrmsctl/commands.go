package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/spf13/cobra"
)

const appVersion = "1.0.0"

type services struct {
	employees  employee.EmployeeService
	attendance attendance.AttendanceService
	dashboard  dashboard.DashboardService
}

func newRootCmd(build func() (*services, error)) *cobra.Command {
	root := &cobra.Command{
		Use:           "hrmsctl",
		Short:         "Inspect employees, attendance and dashboard figures from the HRMS API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Version = appVersion
	root.SetVersionTemplate("hrmsctl v{{.Version}}\n")

	root.AddCommand(
		newEmployeesCmd(build),
		newAttendanceCmd(build),
		newDashboardCmd(build),
		newExportCmd(build),
	)
	return root
}

func newEmployeesCmd(build func() (*services, error)) *cobra.Command {
	var f employee.EmployeeFilter

	cmd := &cobra.Command{
		Use:   "employees",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := build()
			if err != nil {
				return err
			}
			if _, err := svc.employees.Load(cmd.Context()); err != nil {
				return err
			}
			view, err := svc.employees.ChangeFilter(f)
			if err != nil {
				return err
			}
			printEmployees(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Search, "search", "", "Match name, employee ID, email or department")
	cmd.Flags().StringVar(&f.Department, "department", employee.AllDepartments, "Department to show, or 'all'")
	return cmd
}

func newAttendanceCmd(build func() (*services, error)) *cobra.Command {
	var f attendance.AttendanceFilter

	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "List attendance records",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := build()
			if err != nil {
				return err
			}
			if _, err := svc.attendance.Load(cmd.Context()); err != nil {
				return err
			}
			view, err := svc.attendance.ChangeFilter(cmd.Context(), f)
			if err != nil {
				return err
			}
			printAttendance(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.EmployeeID, "employee", attendance.AllEmployees, "Employee internal id, or 'all'")
	cmd.Flags().StringVar(&f.StartDate, "start", "", "First date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.EndDate, "end", "", "Last date to include (YYYY-MM-DD)")
	return cmd
}

func newDashboardCmd(build func() (*services, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show attendance summary figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := build()
			if err != nil {
				return err
			}
			view, err := svc.dashboard.Load(cmd.Context())
			if err != nil {
				return err
			}
			printDashboard(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func newExportCmd(build func() (*services, error)) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard figures to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			svc, err := build()
			if err != nil {
				return err
			}
			if _, err := svc.dashboard.Load(cmd.Context()); err != nil {
				return err
			}
			data, err := svc.dashboard.Export()
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Destination .xlsx file")
	return cmd
}

func printEmployees(w io.Writer, view employee.EmployeePageView) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMPLOYEE ID\tNAME\tEMAIL\tDEPARTMENT")
	for _, e := range view.Employees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.EmployeeCode, e.FullName, e.Email, e.Department)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d of %d employees\n", view.Visible, view.Total)
}

func printAttendance(w io.Writer, view attendance.AttendancePageView) {
	fmt.Fprintln(w, view.Title)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMPLOYEE ID\tNAME\tDATE\tSTATUS")
	for _, r := range view.Records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.EmployeeCode, r.FullName, r.Date, r.Status)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d of %d records\n", view.Visible, view.Total)
}

func printDashboard(w io.Writer, view dashboard.DashboardResponse) {
	fmt.Fprintf(w, "Employees: %d  Present: %d  Absent: %d  Rate: %d%%\n",
		view.Overall.TotalEmployees, view.Overall.Present, view.Overall.Absent, view.Overall.Rate)
	fmt.Fprintf(w, "Today (%s): present %d, absent %d, not marked %d\n",
		view.Today.Date, view.Today.Present, view.Today.Absent, view.Today.NotMarked)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nEMPLOYEE ID\tNAME\tDEPARTMENT\tPRESENT\tABSENT\tRATE")
	for _, e := range view.Employees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d%%\n", e.EmployeeCode, e.FullName, e.Department, e.PresentDays, e.AbsentDays, e.Rate)
	}
	fmt.Fprintln(tw, "\nDEPARTMENT\tEMPLOYEES\tPRESENT\tABSENT")
	for _, d := range view.Departments {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", d.Department, d.Count, d.Present, d.Absent)
	}
	_ = tw.Flush()
}
