package stats

import (
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
)

// Overall summarises every held record.
type Overall struct {
	TotalEmployees int `json:"total_employees"`
	Present        int `json:"total_present"`
	Absent         int `json:"total_absent"`
	Rate           int `json:"attendance_rate"`
}

// TodaySummary summarises the records dated today.
type TodaySummary struct {
	Date      string `json:"date"`
	Present   int    `json:"present"`
	Absent    int    `json:"absent"`
	NotMarked int    `json:"not_marked"`
}

// Summary is the full set of derived dashboard figures.
type Summary struct {
	Overall     Overall            `json:"overall"`
	Today       TodaySummary       `json:"today"`
	Employees   []EmployeeRollup   `json:"employees"`
	Departments []DepartmentRollup `json:"departments"`
}

// Summarize derives every dashboard figure from the two collections.
func Summarize(employees []employee.Employee, records []attendance.Attendance, today string) Summary {
	all := CountByStatus(records)
	todays := CountByStatus(TodaySlice(records, today))

	notMarked := len(employees) - todays.Present - todays.Absent
	if notMarked < 0 {
		notMarked = 0
	}

	return Summary{
		Overall: Overall{
			TotalEmployees: len(employees),
			Present:        all.Present,
			Absent:         all.Absent,
			Rate:           all.Rate(),
		},
		Today: TodaySummary{
			Date:      today,
			Present:   todays.Present,
			Absent:    todays.Absent,
			NotMarked: notMarked,
		},
		Employees:   PerEmployee(employees, records),
		Departments: PerDepartment(employees, records),
	}
}
