package repository

import (
	"database/sql/driver"
	"fmt"
	"time"

	"pharmacy/m/domain"
)

// dateColumn stores a calendar day as YYYY-MM-DD. SQLite keeps it as TEXT;
// PostgreSQL DATE columns come back from pgx as time.Time.
type dateColumn time.Time

func (d dateColumn) Value() (driver.Value, error) {
	return time.Time(d).Format(domain.DateLayout), nil
}

func (d *dateColumn) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = dateColumn(domain.Today(v))
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		*d = dateColumn(time.Time{})
		return nil
	default:
		return fmt.Errorf("date column: unsupported type %T", src)
	}
}

func (d *dateColumn) parse(value string) error {
	if len(value) > len(domain.DateLayout) {
		value = value[:len(domain.DateLayout)]
	}
	parsed, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return fmt.Errorf("date column: %w", err)
	}
	*d = dateColumn(parsed)
	return nil
}

func timeOf(d dateColumn) time.Time {
	return time.Time(d)
}
