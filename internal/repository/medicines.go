package repository

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"pharmacy/m/domain"
	"pharmacy/m/internal/database"
)

type medicineRow struct {
	ID                   int64           `db:"medicine_id"`
	Name                 string          `db:"name"`
	Manufacturer         string          `db:"manufacturer"`
	Form                 string          `db:"form"`
	Price                decimal.Decimal `db:"price"`
	Quantity             int             `db:"quantity"`
	ExpiryDate           dateColumn      `db:"expiry_date"`
	PrescriptionRequired bool            `db:"prescription_required"`
}

func (row medicineRow) toDomain() domain.Medicine {
	return domain.Medicine{
		ID:                   row.ID,
		Name:                 row.Name,
		Manufacturer:         row.Manufacturer,
		Form:                 row.Form,
		Price:                row.Price,
		Quantity:             row.Quantity,
		ExpiryDate:           timeOf(row.ExpiryDate),
		PrescriptionRequired: row.PrescriptionRequired,
	}
}

const selectMedicines = `SELECT MedicineID AS medicine_id, Name AS name, Manufacturer AS manufacturer, Form AS form, Price AS price, Quantity AS quantity, ExpiryDate AS expiry_date, PrescriptionRequired AS prescription_required FROM Medicines WHERE 1=1`

// ListMedicines returns medicines whose name or manufacturer contains
// filter.Search, optionally only those requiring a prescription.
func (r *Repository) ListMedicines(ctx context.Context, filter domain.MedicineFilter) ([]domain.Medicine, error) {
	query := selectMedicines
	var args []any

	if filter.Search != "" {
		pattern := database.ContainsPattern(filter.Search)
		query += " AND " + r.dialect.Contains("Name", "Manufacturer")
		args = append(args, pattern, pattern)
	}
	if filter.PrescriptionOnly {
		query += " AND PrescriptionRequired = ?"
		args = append(args, true)
	}

	var rows []medicineRow
	if err := r.selectRows(ctx, "list medicines", &rows, query, args...); err != nil {
		return nil, err
	}

	medicines := make([]domain.Medicine, 0, len(rows))
	for _, row := range rows {
		medicines = append(medicines, row.toDomain())
	}
	return medicines, nil
}

func (r *Repository) AddMedicine(ctx context.Context, m *domain.Medicine) (domain.Result, error) {
	id, result, err := r.insert(ctx, "insert medicine",
		`INSERT INTO Medicines (Name, Manufacturer, Form, Price, Quantity, ExpiryDate, PrescriptionRequired) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING MedicineID`,
		strings.TrimSpace(m.Name), strings.TrimSpace(m.Manufacturer), m.Form, m.Price, m.Quantity, dateColumn(m.ExpiryDate), m.PrescriptionRequired)
	if result.OK() {
		m.ID = id
	}
	return result, err
}

func (r *Repository) UpdateMedicine(ctx context.Context, m domain.Medicine) (domain.Result, error) {
	return r.exec(ctx, "update medicine",
		`UPDATE Medicines SET Name = ?, Manufacturer = ?, Form = ?, Price = ?, Quantity = ?, ExpiryDate = ?, PrescriptionRequired = ? WHERE MedicineID = ?`,
		strings.TrimSpace(m.Name), strings.TrimSpace(m.Manufacturer), m.Form, m.Price, m.Quantity, dateColumn(m.ExpiryDate), m.PrescriptionRequired, m.ID)
}

func (r *Repository) DeleteMedicine(ctx context.Context, id int64) (domain.Result, error) {
	return r.exec(ctx, "delete medicine", `DELETE FROM Medicines WHERE MedicineID = ?`, id)
}
