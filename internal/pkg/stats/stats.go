// Package stats derives dashboard figures from raw attendance records.
package stats

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// StatusCount partitions records by status. Records with any other status
// are left out of both counts.
type StatusCount struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
}

// Total is the number of records with a recognised status.
func (c StatusCount) Total() int {
	return c.Present + c.Absent
}

// Rate is the present share of Total as a whole percent.
func (c StatusCount) Rate() int {
	return Rate(c.Present, c.Total())
}

// EmployeeRollup is one employee's attendance summary.
type EmployeeRollup struct {
	employee.Employee
	PresentDays int `json:"present_days"`
	AbsentDays  int `json:"absent_days"`
	TotalDays   int `json:"total_days"`
	Rate        int `json:"attendance_rate"`
}

// DepartmentRollup is one department's attendance summary.
type DepartmentRollup struct {
	Department employee.Department `json:"department"`
	Count      int                 `json:"count"`
	Present    int                 `json:"present"`
	Absent     int                 `json:"absent"`
}

// Rate returns present/total as a percentage rounded half-up to an int.
// A zero total yields 0.
func Rate(present, total int) int {
	if total <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(present)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(0)
	return int(pct.IntPart())
}

// CountByStatus partitions records into present and absent counts.
func CountByStatus(records []attendance.Attendance) StatusCount {
	var c StatusCount
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			c.Present++
		case attendance.StatusAbsent:
			c.Absent++
		}
	}
	return c
}

// Today formats now as a YYYY-MM-DD date in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format(validator.DateLayout)
}

// TodaySlice keeps records dated exactly today, preserving order.
func TodaySlice(records []attendance.Attendance, today string) []attendance.Attendance {
	out := make([]attendance.Attendance, 0)
	if _, ok := validator.IsValidDate(today); !ok {
		return out
	}
	for _, r := range records {
		if r.Date == today {
			out = append(out, r)
		}
	}
	return out
}

// groupByEmployeeCode indexes status counts by the record's employee code.
func groupByEmployeeCode(records []attendance.Attendance) map[string]StatusCount {
	byCode := make(map[string]StatusCount)
	for _, r := range records {
		c := byCode[r.EmployeeCode]
		switch r.Status {
		case attendance.StatusPresent:
			c.Present++
		case attendance.StatusAbsent:
			c.Absent++
		default:
			continue
		}
		byCode[r.EmployeeCode] = c
	}
	return byCode
}

// PerEmployee returns one rollup per employee, including employees with no
// records, sorted by present days descending. Ties keep input order.
func PerEmployee(employees []employee.Employee, records []attendance.Attendance) []EmployeeRollup {
	byCode := groupByEmployeeCode(records)

	rollups := make([]EmployeeRollup, 0, len(employees))
	for _, emp := range employees {
		c := byCode[emp.EmployeeCode]
		rollups = append(rollups, EmployeeRollup{
			Employee:    emp,
			PresentDays: c.Present,
			AbsentDays:  c.Absent,
			TotalDays:   c.Total(),
			Rate:        c.Rate(),
		})
	}

	sort.SliceStable(rollups, func(i, j int) bool {
		return rollups[i].PresentDays > rollups[j].PresentDays
	})
	return rollups
}

// PerDepartment accumulates employee counts and attendance per department.
// Departments appear in the order they are first met among employees.
func PerDepartment(employees []employee.Employee, records []attendance.Attendance) []DepartmentRollup {
	byCode := groupByEmployeeCode(records)

	index := make(map[employee.Department]int)
	rollups := make([]DepartmentRollup, 0)
	for _, emp := range employees {
		i, ok := index[emp.Department]
		if !ok {
			i = len(rollups)
			index[emp.Department] = i
			rollups = append(rollups, DepartmentRollup{Department: emp.Department})
		}
		c := byCode[emp.EmployeeCode]
		rollups[i].Count++
		rollups[i].Present += c.Present
		rollups[i].Absent += c.Absent
	}
	return rollups
}
