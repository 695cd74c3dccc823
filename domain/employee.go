package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a job title from the closed list offered to operators.
type Position string

const (
	PositionPharmacist    Position = "Pharmacist"
	PositionTechnician    Position = "Pharmacy Technician"
	PositionCashier       Position = "Cashier"
	PositionManager       Position = "Manager"
	PositionAdministrator Position = "Administrator"
)

// AllPositions is the filter value that disables the position constraint.
const AllPositions = "All positions"

var positions = []Position{
	PositionPharmacist,
	PositionTechnician,
	PositionCashier,
	PositionManager,
	PositionAdministrator,
}

// Positions returns the closed set of job titles in display order.
func Positions() []Position {
	out := make([]Position, len(positions))
	copy(out, positions)
	return out
}

// ParsePosition reports whether value names a known position.
func ParsePosition(value string) (Position, bool) {
	for _, p := range positions {
		if string(p) == value {
			return p, true
		}
	}
	return "", false
}

type Employee struct {
	ID       int64           `json:"id"`
	FullName string          `json:"full_name"`
	Position string          `json:"position"`
	Salary   decimal.Decimal `json:"salary"`
	HireDate time.Time       `json:"hire_date"`
}

// NewEmployee returns an employee with the creation defaults applied.
func NewEmployee(now time.Time) Employee {
	return Employee{HireDate: Today(now)}
}

type EmployeeFilter struct {
	Name     string
	Position string
}

// MatchesAllPositions reports whether the filter leaves position unconstrained.
func (f EmployeeFilter) MatchesAllPositions() bool {
	return f.Position == "" || f.Position == AllPositions
}
