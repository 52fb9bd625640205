package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/launchdash/launchdash/pkg/types"
)

// Column names as they appear in the launch CSV header.
const (
	ColSite            = "Launch Site"
	ColPayload         = "Payload Mass (kg)"
	ColBoosterVersion  = "Booster Version"
	ColBoosterCategory = "Booster Version Category"
	ColOutcome         = "class"
)

// Supported source formats.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Load reads the dataset at path in the given format. An empty format is
// inferred from the file extension (.db, .sqlite, .sqlite3 → sqlite, else csv).
// table is only used for the sqlite format.
func Load(path, format, table string) (*Dataset, error) {
	if format == "" {
		format = FormatFor(path)
	}

	var (
		d   *Dataset
		err error
	)
	switch format {
	case FormatCSV:
		d, err = LoadCSV(path)
	case FormatSQLite:
		d, err = LoadSQLite(path, table)
	default:
		return nil, &LoadError{Source: path, Err: fmt.Errorf("unknown format %q", format)}
	}
	if err != nil {
		return nil, err
	}

	slog.Info("dataset: loaded",
		"source", path,
		"format", format,
		"records", d.Len(),
		"sites", len(d.sites),
		"payload_min", d.bounds.Low,
		"payload_max", d.bounds.High,
	)
	return d, nil
}

// FormatFor infers a source format from the file extension.
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}

// LoadCSV reads a launch CSV file from disk.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()
	return ReadCSV(path, f)
}

// ReadCSV parses a launch CSV from r. The header row is required; columns are
// matched by name, case-insensitively, and unknown columns are ignored.
func ReadCSV(source string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Source: source, Err: ErrEmpty}
		}
		return nil, &LoadError{Source: source, Line: 1, Err: err}
	}
	p, err := newRowParser(source, header)
	if err != nil {
		return nil, err
	}

	var records []types.LaunchRecord
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &LoadError{Source: source, Line: line, Err: err}
		}
		rec, err := p.parse(line, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return New(source, records)
}

// rowParser maps header positions to LaunchRecord fields. It is shared by the
// CSV and SQLite loaders; both present rows as string cells.
type rowParser struct {
	source   string
	site     int
	payload  int
	version  int
	category int // -1 when the column is absent
	outcome  int
}

func newRowParser(source string, header []string) (*rowParser, error) {
	index := func(name string) int {
		for i, h := range header {
			// Excel exports prepend a UTF-8 BOM to the first header cell.
			h = strings.TrimPrefix(h, "\ufeff")
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	p := &rowParser{
		source:   source,
		site:     index(ColSite),
		payload:  index(ColPayload),
		version:  index(ColBoosterVersion),
		category: index(ColBoosterCategory),
		outcome:  index(ColOutcome),
	}
	required := []struct {
		name string
		pos  int
	}{
		{ColSite, p.site},
		{ColPayload, p.payload},
		{ColBoosterVersion, p.version},
		{ColOutcome, p.outcome},
	}
	for _, c := range required {
		if c.pos < 0 {
			return nil, &LoadError{Source: source, Line: 1, Column: c.name, Err: ErrMissingColumn}
		}
	}
	return p, nil
}

func (p *rowParser) parse(line int, row []string) (types.LaunchRecord, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	fail := func(col string, err error) (types.LaunchRecord, error) {
		return types.LaunchRecord{}, &LoadError{Source: p.source, Line: line, Column: col, Err: err}
	}

	rec := types.LaunchRecord{
		Site:            cell(p.site),
		BoosterVersion:  cell(p.version),
		BoosterCategory: cell(p.category),
	}
	if rec.Site == "" {
		return fail(ColSite, errors.New("empty value"))
	}
	if rec.BoosterVersion == "" {
		return fail(ColBoosterVersion, errors.New("empty value"))
	}

	payload, err := strconv.ParseFloat(cell(p.payload), 64)
	if err != nil {
		return fail(ColPayload, fmt.Errorf("not numeric: %q", cell(p.payload)))
	}
	if payload < 0 {
		return fail(ColPayload, fmt.Errorf("negative payload %v", payload))
	}
	rec.PayloadMassKg = payload

	outcome, err := strconv.ParseFloat(cell(p.outcome), 64)
	if err != nil || (outcome != 0 && outcome != 1) {
		return fail(ColOutcome, fmt.Errorf("want 0 or 1, got %q", cell(p.outcome)))
	}
	rec.Outcome = types.Outcome(outcome)

	return rec, nil
}

// DeriveCategory returns the booster category for a version string such as
// "F9 v1.1 B1003" (→ "v1.1") or "F9 B5 B1048.4" (→ "B5"). A version with a
// single token is its own category.
func DeriveCategory(version string) string {
	fields := strings.Fields(version)
	if len(fields) >= 2 {
		return fields[1]
	}
	return strings.TrimSpace(version)
}
