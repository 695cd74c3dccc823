package seed

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"pharmacy/m/pkg/logger"
)

var suppliers = table{
	name:    "Suppliers",
	insert:  `INSERT INTO Suppliers (CompanyName, ContactPerson, Phone) VALUES (?, ?, ?)`,
	columns: 3,
	args: func(record []string) ([]any, error) {
		if record[0] == "" {
			return nil, errors.New("company name is required")
		}
		return []any{record[0], record[1], record[2]}, nil
	},
}

// LoadSuppliers imports company_name,contact_person,phone rows into an empty
// Suppliers table.
func LoadSuppliers(ctx context.Context, db *sqlx.DB, path string, log logger.Logger) (int, error) {
	return load(ctx, db, log, suppliers, path)
}
