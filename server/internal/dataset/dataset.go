package dataset

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/launchdash/launchdash/pkg/types"
)

// LoadError reports a dataset that could not be read or failed schema
// validation. Line is 1-based and counts the header row; it is zero when the
// failure is not tied to a row.
type LoadError struct {
	Source string
	Line   int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("dataset %s: line %d: column %q: %v", e.Source, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("dataset %s: line %d: %v", e.Source, e.Line, e.Err)
	case e.Column != "":
		return fmt.Sprintf("dataset %s: column %q: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("dataset %s: %v", e.Source, e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

var (
	// ErrMissingColumn is wrapped by LoadError when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmpty is wrapped by LoadError when the source holds no records.
	ErrEmpty = errors.New("no launch records")
)

// Dataset is the immutable, validated launch table. It is safe for concurrent
// reads from any number of goroutines.
type Dataset struct {
	source  string
	records []types.LaunchRecord
	sites   []string
	siteSet map[string]struct{}
	bounds  types.PayloadRange
}

// New validates records and builds a Dataset from a private copy of them.
// source names the origin in error messages and logs.
func New(source string, records []types.LaunchRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, &LoadError{Source: source, Err: ErrEmpty}
	}

	d := &Dataset{
		source:  source,
		records: slices.Clone(records),
		siteSet: make(map[string]struct{}),
		bounds:  types.PayloadRange{Low: math.Inf(1), High: math.Inf(-1)},
	}
	for i, r := range d.records {
		if err := validateRecord(r); err != nil {
			// Line numbers count the header row, matching the file loaders.
			return nil, &LoadError{Source: source, Line: i + 2, Err: err}
		}
		if d.records[i].BoosterCategory == "" {
			d.records[i].BoosterCategory = DeriveCategory(r.BoosterVersion)
		}
		if _, ok := d.siteSet[r.Site]; !ok {
			d.siteSet[r.Site] = struct{}{}
			d.sites = append(d.sites, r.Site)
		}
		d.bounds.Low = math.Min(d.bounds.Low, r.PayloadMassKg)
		d.bounds.High = math.Max(d.bounds.High, r.PayloadMassKg)
	}
	return d, nil
}

func validateRecord(r types.LaunchRecord) error {
	switch {
	case r.Site == "":
		return errors.New("empty launch site")
	case r.BoosterVersion == "":
		return errors.New("empty booster version")
	case math.IsNaN(r.PayloadMassKg) || math.IsInf(r.PayloadMassKg, 0):
		return fmt.Errorf("payload %v is not finite", r.PayloadMassKg)
	case r.PayloadMassKg < 0:
		return fmt.Errorf("payload %v is negative", r.PayloadMassKg)
	case r.Outcome != types.Success && r.Outcome != types.Failure:
		return fmt.Errorf("outcome %d is not 0 or 1", r.Outcome)
	}
	return nil
}

// Source returns the name the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// All yields every record in load order. Records are yielded by value.
func (d *Dataset) All() iter.Seq[types.LaunchRecord] {
	return func(yield func(types.LaunchRecord) bool) {
		for _, r := range d.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Records returns a copy of all records in load order.
func (d *Dataset) Records() []types.LaunchRecord {
	return slices.Clone(d.records)
}

// Sites returns the distinct launch sites in first-seen order.
func (d *Dataset) Sites() []string {
	return slices.Clone(d.sites)
}

// HasSite reports whether at least one record was launched from site.
func (d *Dataset) HasSite(site string) bool {
	_, ok := d.siteSet[site]
	return ok
}

// PayloadBounds returns the smallest and largest observed payload.
func (d *Dataset) PayloadBounds() types.PayloadRange {
	return d.bounds
}
