// Package dataset loads the launch record table once at startup and exposes it
// as an immutable, validated Dataset.
//
// Sources:
//   - CSV (LoadCSV / ReadCSV) with a header row. Required columns:
//     "Launch Site", "Payload Mass (kg)", "Booster Version", "class".
//     "Booster Version Category" is optional; when absent it is derived from
//     the booster version (DeriveCategory).
//   - SQLite (LoadSQLite) with a table using the same column names.
//
// Any schema violation (missing column, non-numeric or negative payload, empty
// site or booster, outcome other than 0/1, no rows) is reported as a *LoadError
// carrying the source, line and column. Callers treat it as fatal.
//
// A Dataset is never modified after New returns. Accessors return copies or
// iterate by value, so the table can be shared across goroutines without locks.
package dataset
