package repository

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"pharmacy/m/domain"
	"pharmacy/m/internal/database"
)

type employeeRow struct {
	ID       int64           `db:"employee_id"`
	FullName string          `db:"full_name"`
	Position string          `db:"position"`
	Salary   decimal.Decimal `db:"salary"`
	HireDate dateColumn      `db:"hire_date"`
}

func (row employeeRow) toDomain() domain.Employee {
	return domain.Employee{
		ID:       row.ID,
		FullName: row.FullName,
		Position: row.Position,
		Salary:   row.Salary,
		HireDate: timeOf(row.HireDate),
	}
}

const selectEmployees = `SELECT EmployeeID AS employee_id, FullName AS full_name, Position AS position, Salary AS salary, HireDate AS hire_date FROM Employees WHERE 1=1`

// ListEmployees returns employees whose name contains filter.Name and whose
// position equals filter.Position. Empty values do not constrain.
func (r *Repository) ListEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	query := selectEmployees
	var args []any

	if filter.Name != "" {
		query += " AND " + r.dialect.Contains("FullName")
		args = append(args, database.ContainsPattern(filter.Name))
	}
	if !filter.MatchesAllPositions() {
		query += " AND Position = ?"
		args = append(args, filter.Position)
	}

	var rows []employeeRow
	if err := r.selectRows(ctx, "list employees", &rows, query, args...); err != nil {
		return nil, err
	}

	employees := make([]domain.Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, row.toDomain())
	}
	return employees, nil
}

// AddEmployee inserts e and stores the assigned id back into it.
func (r *Repository) AddEmployee(ctx context.Context, e *domain.Employee) (domain.Result, error) {
	id, result, err := r.insert(ctx, "insert employee",
		`INSERT INTO Employees (FullName, Position, Salary, HireDate) VALUES (?, ?, ?, ?) RETURNING EmployeeID`,
		strings.TrimSpace(e.FullName), e.Position, e.Salary, dateColumn(e.HireDate))
	if result.OK() {
		e.ID = id
	}
	return result, err
}

func (r *Repository) UpdateEmployee(ctx context.Context, e domain.Employee) (domain.Result, error) {
	return r.exec(ctx, "update employee",
		`UPDATE Employees SET FullName = ?, Position = ?, Salary = ?, HireDate = ? WHERE EmployeeID = ?`,
		strings.TrimSpace(e.FullName), e.Position, e.Salary, dateColumn(e.HireDate), e.ID)
}

func (r *Repository) DeleteEmployee(ctx context.Context, id int64) (domain.Result, error) {
	return r.exec(ctx, "delete employee", `DELETE FROM Employees WHERE EmployeeID = ?`, id)
}
