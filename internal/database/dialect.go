package database

import (
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Dialect captures the few statement differences between supported stores.
type Dialect struct {
	Name string
	// LowerFunc is the SQL function applied to a column before a
	// case-insensitive substring match.
	LowerFunc string
}

var (
	SQLite   = Dialect{Name: "sqlite", LowerFunc: FoldFunction}
	Postgres = Dialect{Name: "postgres", LowerFunc: "LOWER"}
)

// DialectOf infers the dialect from the handle's driver.
func DialectOf(db *sqlx.DB) Dialect {
	if db.DriverName() == "pgx" {
		return Postgres
	}
	return SQLite
}

// Contains builds a clause matching a lower-cased substring in any of the
// columns. All columns share one bind parameter per column.
func (d Dialect) Contains(columns ...string) string {
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = d.LowerFunc + "(" + column + `) LIKE ? ESCAPE '\'`
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// ContainsPattern turns user text into a LIKE pattern where %, _ and \ match
// literally.
func ContainsPattern(text string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(Fold(text))
	return "%" + escaped + "%"
}

// Fold lower-cases text with Unicode rules.
func Fold(text string) string {
	return cases.Lower(language.Und).String(text)
}
