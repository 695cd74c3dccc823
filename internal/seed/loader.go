// Package seed fills empty tables from the CSV files shipped in assets/.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"pharmacy/m/internal/database"
	"pharmacy/m/pkg/logger"
)

// table describes how one CSV file maps onto one table.
type table struct {
	name    string
	insert  string
	columns int
	args    func(record []string) ([]any, error)
}

// load imports path into t inside a single transaction. Nothing happens when
// the table already has rows or the file does not exist.
func load(ctx context.Context, db *sqlx.DB, log logger.Logger, t table, path string) (int, error) {
	var existing int
	if err := db.GetContext(ctx, &existing, "SELECT COUNT(*) FROM "+t.name); err != nil {
		return 0, database.Classify("count "+t.name, err)
	}
	if existing > 0 {
		log.Debug("seed skipped, table not empty", "table", t.name, "rows", existing)
		return 0, nil
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("seed file not found", "table", t.name, "path", path)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	// Skip header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("read %s header: %w", path, err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, database.Classify("begin seed "+t.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(t.insert))
	if err != nil {
		return 0, database.Classify("prepare seed "+t.name, err)
	}
	defer stmt.Close()

	rows := 0
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("unable to read seed row", "table", t.name, "line", line, "error", err)
			continue
		}
		if len(record) < t.columns {
			log.Warn("short seed row", "table", t.name, "line", line)
			continue
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}

		args, err := t.args(record)
		if err != nil {
			log.Warn("invalid seed row", "table", t.name, "line", line, "error", err)
			continue
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, database.Classify("seed "+t.name, err)
		}
		rows++
	}

	if err := tx.Commit(); err != nil {
		return 0, database.Classify("commit seed "+t.name, err)
	}
	log.Info("seeded table", "table", t.name, "rows", rows)
	return rows, nil
}
