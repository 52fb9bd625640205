package dataset

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/launchdash/launchdash/pkg/types"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DefaultTable is the table read by LoadSQLite when none is configured.
const DefaultTable = "launches"

// LoadSQLite reads launch records from table in the SQLite database at path.
// Columns carry the same names as the CSV header; extra columns are ignored.
// The database is closed before returning.
func LoadSQLite(path, table string) (*Dataset, error) {
	if table == "" {
		table = DefaultTable
	}
	source := path + "#" + table

	// sql.Open does not touch the file, and the driver would create a missing one.
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	defer db.Close()

	rows, err := db.Query("SELECT * FROM " + quoteIdent(table))
	if err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("query table: %w", err)}
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	p, err := newRowParser(source, header)
	if err != nil {
		return nil, err
	}

	vals := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	var records []types.LaunchRecord
	line := 1
	for rows.Next() {
		line++
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &LoadError{Source: source, Line: line, Err: err}
		}
		cells := make([]string, len(vals))
		for i, v := range vals {
			cells[i] = cellString(v)
		}
		rec, err := p.parse(line, cells)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return New(source, records)
}

// cellString renders a dynamically typed SQLite value the way it would appear
// in a CSV cell.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
