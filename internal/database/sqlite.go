package database

import (
	"database/sql/driver"

	"modernc.org/sqlite"
)

// FoldFunction is the scalar function registered with the SQLite driver for
// Unicode-aware lower-casing; the built-in lower() only handles ASCII.
const FoldFunction = "fold_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(FoldFunction, 1, foldLower)
}

func foldLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return Fold(v), nil
	case []byte:
		return Fold(string(v)), nil
	default:
		return v, nil
	}
}
