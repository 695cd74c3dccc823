package seed

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"pharmacy/m/domain"
	"pharmacy/m/pkg/logger"
)

var medicines = table{
	name: "Medicines",
	insert: `INSERT INTO Medicines (Name, Manufacturer, Form, Price, Quantity, ExpiryDate, PrescriptionRequired)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
	columns: 7,
	args:    medicineArgs,
}

// LoadMedicines imports name,manufacturer,form,price,quantity,expiry_date,
// prescription_required rows into an empty Medicines table.
func LoadMedicines(ctx context.Context, db *sqlx.DB, path string, log logger.Logger) (int, error) {
	return load(ctx, db, log, medicines, path)
}

func medicineArgs(record []string) ([]any, error) {
	if record[0] == "" || record[1] == "" {
		return nil, errors.New("name and manufacturer are required")
	}
	form, ok := domain.ParseDosageForm(record[2])
	if !ok {
		return nil, errors.New("unknown dosage form " + strconv.Quote(record[2]))
	}
	price, err := decimal.NewFromString(record[3])
	if err != nil || !price.IsPositive() {
		return nil, errors.New("invalid price " + strconv.Quote(record[3]))
	}
	quantity, err := strconv.Atoi(record[4])
	if err != nil || quantity < 0 {
		return nil, errors.New("invalid quantity " + strconv.Quote(record[4]))
	}
	expiry, err := time.Parse(domain.DateLayout, record[5])
	if err != nil {
		return nil, errors.New("invalid expiry date " + strconv.Quote(record[5]))
	}
	prescription, err := strconv.ParseBool(record[6])
	if err != nil {
		return nil, errors.New("invalid prescription flag " + strconv.Quote(record[6]))
	}

	return []any{
		record[0],
		record[1],
		string(form),
		price,
		quantity,
		expiry.Format(domain.DateLayout),
		prescription,
	}, nil
}
