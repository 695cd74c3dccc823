package validation

import (
	"strings"
	"time"

	"pharmacy/m/domain"
)

// EmployeeForm is the raw input collected for adding or editing an employee.
type EmployeeForm struct {
	ID       int64
	FullName string
	Position string
	Salary   string
	HireDate string
}

// NewEmployeeForm returns a blank form with today's hire date and the first
// position preselected.
func NewEmployeeForm(now time.Time) EmployeeForm {
	e := domain.NewEmployee(now)
	return EmployeeForm{
		Position: string(domain.Positions()[0]),
		HireDate: e.HireDate.Format(domain.DateLayout),
	}
}

// WithEmployeeDefaults fills the blank fields of form from NewEmployeeForm.
func WithEmployeeDefaults(form EmployeeForm, now time.Time) EmployeeForm {
	defaults := NewEmployeeForm(now)
	if strings.TrimSpace(form.Position) == "" {
		form.Position = defaults.Position
	}
	if strings.TrimSpace(form.HireDate) == "" {
		form.HireDate = defaults.HireDate
	}
	return form
}

func ValidateEmployee(form EmployeeForm) (domain.Employee, error) {
	fullName := strings.TrimSpace(form.FullName)
	if fullName == "" {
		return domain.Employee{}, fail("full_name", "full name is required")
	}

	salary, ok := parseDecimal(form.Salary)
	if !ok || salary.IsNegative() {
		return domain.Employee{}, fail("salary", "salary must be a non-negative number")
	}
	if !fitsMoney(salary) {
		return domain.Employee{}, fail("salary", moneyLimitMessage("salary"))
	}

	hireDate, ok := parseDate(form.HireDate)
	if !ok {
		return domain.Employee{}, fail("hire_date", "hire date is required (YYYY-MM-DD)")
	}

	position, ok := domain.ParsePosition(strings.TrimSpace(form.Position))
	if !ok {
		return domain.Employee{}, fail("position", "select a position")
	}

	return domain.Employee{
		ID:       form.ID,
		FullName: fullName,
		Position: string(position),
		Salary:   salary,
		HireDate: hireDate,
	}, nil
}
