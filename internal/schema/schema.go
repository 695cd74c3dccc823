package schema

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pharmacy/m/internal/database"
)

var sqliteTables = []string{
	`CREATE TABLE IF NOT EXISTS Employees (
            EmployeeID INTEGER PRIMARY KEY AUTOINCREMENT,
            FullName TEXT NOT NULL,
            Position TEXT NOT NULL,
            Salary DECIMAL(12,2) NOT NULL DEFAULT 0,
            HireDate TEXT NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS Medicines (
            MedicineID INTEGER PRIMARY KEY AUTOINCREMENT,
            Name TEXT NOT NULL,
            Manufacturer TEXT NOT NULL,
            Form TEXT NOT NULL,
            Price DECIMAL(12,2) NOT NULL,
            Quantity INTEGER NOT NULL DEFAULT 0,
            ExpiryDate TEXT NOT NULL,
            PrescriptionRequired BOOLEAN NOT NULL DEFAULT 0
        );`,
	`CREATE TABLE IF NOT EXISTS Suppliers (
            SupplierID INTEGER PRIMARY KEY AUTOINCREMENT,
            CompanyName TEXT NOT NULL,
            ContactPerson TEXT,
            Phone TEXT
        );`,
}

var postgresTables = []string{
	`CREATE TABLE IF NOT EXISTS Employees (
            EmployeeID SERIAL PRIMARY KEY,
            FullName TEXT NOT NULL,
            Position TEXT NOT NULL,
            Salary NUMERIC(12,2) NOT NULL DEFAULT 0,
            HireDate DATE NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS Medicines (
            MedicineID SERIAL PRIMARY KEY,
            Name TEXT NOT NULL,
            Manufacturer TEXT NOT NULL,
            Form TEXT NOT NULL,
            Price NUMERIC(12,2) NOT NULL,
            Quantity INTEGER NOT NULL DEFAULT 0,
            ExpiryDate DATE NOT NULL,
            PrescriptionRequired BOOLEAN NOT NULL DEFAULT FALSE
        );`,
	`CREATE TABLE IF NOT EXISTS Suppliers (
            SupplierID SERIAL PRIMARY KEY,
            CompanyName TEXT NOT NULL,
            ContactPerson TEXT,
            Phone TEXT
        );`,
}

// Ensure creates the three relations if they are missing. Existing tables are
// left untouched.
func Ensure(ctx context.Context, db *sqlx.DB) error {
	tables := sqliteTables
	if database.DialectOf(db) == database.Postgres {
		tables = postgresTables
	}

	for _, stmt := range tables {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return database.Classify("create schema", fmt.Errorf("%s: %w", firstLine(stmt), err))
		}
	}
	return nil
}

func firstLine(stmt string) string {
	for i, r := range stmt {
		if r == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
