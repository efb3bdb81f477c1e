// Package export renders dashboard figures as an xlsx workbook.
package export

import (
	"fmt"

	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/stats"
	"github.com/xuri/excelize/v2"
)

const (
	SheetOverview    = "Overview"
	SheetEmployees   = "Employees"
	SheetDepartments = "Departments"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Workbook renders summary into an xlsx document with one sheet each for
// the overview, the per-employee rollup and the per-department rollup.
func Workbook(summary stats.Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetOverview); err != nil {
		return nil, fmt.Errorf("failed to name overview sheet: %w", err)
	}
	for _, name := range []string{SheetEmployees, SheetDepartments} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add %s sheet: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	overview := [][]interface{}{
		{"Metric", "Value"},
		{"Total Employees", summary.Overall.TotalEmployees},
		{"Total Present", summary.Overall.Present},
		{"Total Absent", summary.Overall.Absent},
		{"Attendance Rate (%)", summary.Overall.Rate},
		{"Date", summary.Today.Date},
		{"Present Today", summary.Today.Present},
		{"Absent Today", summary.Today.Absent},
		{"Not Marked Today", summary.Today.NotMarked},
	}

	employees := [][]interface{}{
		{"Employee ID", "Full Name", "Department", "Present Days", "Absent Days", "Total Days", "Attendance Rate (%)"},
	}
	for _, e := range summary.Employees {
		employees = append(employees, []interface{}{
			e.EmployeeCode, e.FullName, string(e.Department), e.PresentDays, e.AbsentDays, e.TotalDays, e.Rate,
		})
	}

	departments := [][]interface{}{
		{"Department", "Employees", "Present", "Absent"},
	}
	for _, d := range summary.Departments {
		departments = append(departments, []interface{}{string(d.Department), d.Count, d.Present, d.Absent})
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetOverview, overview},
		{SheetEmployees, employees},
		{SheetDepartments, departments},
	}
	for _, sheet := range sheets {
		if err := writeRows(f, sheet.name, sheet.rows, header); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}
