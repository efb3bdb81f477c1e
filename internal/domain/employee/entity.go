package employee

import "github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"

type Employee struct {
	ID           ident.ID   `json:"id"`
	EmployeeCode string     `json:"employee_id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Department   Department `json:"department"`
}

type Department string

const (
	DepartmentHR          Department = "HR"
	DepartmentEngineering Department = "Engineering"
	DepartmentSales       Department = "Sales"
	DepartmentMarketing   Department = "Marketing"
	DepartmentFinance     Department = "Finance"
	DepartmentOperations  Department = "Operations"
)

// AllDepartments is the filter sentinel meaning "no department constraint".
const AllDepartments = "all"

// Departments lists the selectable departments in form order.
func Departments() []Department {
	return []Department{
		DepartmentHR,
		DepartmentEngineering,
		DepartmentSales,
		DepartmentMarketing,
		DepartmentFinance,
		DepartmentOperations,
	}
}

func (d Department) IsValid() bool {
	for _, dept := range Departments() {
		if d == dept {
			return true
		}
	}
	return false
}
