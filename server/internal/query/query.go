package query

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/dataset"
)

var (
	// ErrInsufficientData is returned when a selection leaves no rows an
	// aggregate can be computed from. Callers render a fallback message.
	ErrInsufficientData = errors.New("insufficient data for selection")

	// ErrInvalidSelection is wrapped by ValidateSelection when the selection
	// cannot be applied to the dataset.
	ErrInvalidSelection = errors.New("invalid selection")
)

// Outcome labels used when a single site is selected.
const (
	LabelSuccess = "Success"
	LabelFailure = "Failure"
)

// Outcomes returns the pie-chart data for site.
//
// For SiteAll it returns one slice per site, in first-seen dataset order,
// counting that site's successful launches. For a single site it returns the
// site's success and failure counts, success first. A site with no rows
// yields an empty, non-nil result.
func Outcomes(ds *dataset.Dataset, site string) []types.OutcomeSlice {
	if site == types.SiteAll {
		idx := make(map[string]int)
		out := make([]types.OutcomeSlice, 0, len(ds.Sites()))
		for _, s := range ds.Sites() {
			idx[s] = len(out)
			out = append(out, types.OutcomeSlice{Label: s})
		}
		for r := range ds.All() {
			if r.Outcome == types.Success {
				out[idx[r.Site]].Count++
			}
		}
		return out
	}

	var succ, fail int
	for r := range ds.All() {
		if r.Site != site {
			continue
		}
		if r.Outcome == types.Success {
			succ++
		} else {
			fail++
		}
	}
	if succ+fail == 0 {
		return []types.OutcomeSlice{}
	}
	s, f := types.Success, types.Failure
	return []types.OutcomeSlice{
		{Label: LabelSuccess, Outcome: &s, Count: succ},
		{Label: LabelFailure, Outcome: &f, Count: fail},
	}
}

// Scatter returns one point per record inside the selection's payload range
// (inclusive) and, unless the site is SiteAll, launched from the selected
// site. Points keep dataset order.
func Scatter(ds *dataset.Dataset, sel types.Selection) []types.ScatterPoint {
	out := make([]types.ScatterPoint, 0)
	for r := range ds.All() {
		if !matches(sel, r) {
			continue
		}
		out = append(out, types.ScatterPoint{
			PayloadMassKg:   r.PayloadMassKg,
			Outcome:         r.Outcome,
			BoosterVersion:  r.BoosterVersion,
			BoosterCategory: r.BoosterCategory,
			Site:            r.Site,
		})
	}
	return out
}

// PayloadSummary computes the success rate of each fixed payload bucket over
// the records Scatter would return, and names the best and worst buckets.
// Ties resolve to the lower bucket. Records outside [0, BucketAxisMax] are not
// bucketed. ErrInsufficientData is returned when no bucket has members.
func PayloadSummary(ds *dataset.Dataset, sel types.Selection) (types.PayloadSummary, error) {
	var count, succ [types.BucketCount]int
	for r := range ds.All() {
		if !matches(sel, r) {
			continue
		}
		b, ok := types.BucketFor(r.PayloadMassKg)
		if !ok {
			continue
		}
		count[b.Index]++
		if r.Outcome == types.Success {
			succ[b.Index]++
		}
	}

	sum := types.PayloadSummary{
		HighestRate: math.Inf(-1),
		LowestRate:  math.Inf(1),
		Buckets:     make([]types.BucketStat, 0, types.BucketCount),
	}
	found := false
	for _, b := range types.Buckets() {
		st := types.BucketStat{Bucket: b, Count: count[b.Index]}
		if st.Count > 0 {
			rate := float64(succ[b.Index]) / float64(st.Count)
			st.Rate = &rate
			found = true
			// Strict comparisons keep the first (lowest) bucket on ties.
			if rate > sum.HighestRate {
				sum.Highest, sum.HighestRate = b, rate
			}
			if rate < sum.LowestRate {
				sum.Lowest, sum.LowestRate = b, rate
			}
		}
		sum.Buckets = append(sum.Buckets, st)
	}
	if !found {
		return types.PayloadSummary{}, ErrInsufficientData
	}
	return sum, nil
}

// BestBooster returns the booster version with the highest success rate among
// launches from site (every site for SiteAll). Ties resolve to the
// lexicographically smallest version. ErrInsufficientData is returned when the
// site has no launches.
func BestBooster(ds *dataset.Dataset, site string) (types.BoosterSummary, error) {
	type tally struct{ n, succ int }
	groups := make(map[string]*tally)
	for r := range ds.All() {
		if site != types.SiteAll && r.Site != site {
			continue
		}
		g, ok := groups[r.BoosterVersion]
		if !ok {
			g = &tally{}
			groups[r.BoosterVersion] = g
		}
		g.n++
		if r.Outcome == types.Success {
			g.succ++
		}
	}
	if len(groups) == 0 {
		return types.BoosterSummary{}, ErrInsufficientData
	}

	versions := make([]string, 0, len(groups))
	for v := range groups {
		versions = append(versions, v)
	}
	slices.Sort(versions)

	best := types.BoosterSummary{SuccessRate: -1}
	for _, v := range versions {
		g := groups[v]
		rate := float64(g.succ) / float64(g.n)
		if rate > best.SuccessRate {
			best = types.BoosterSummary{BoosterVersion: v, SuccessRate: rate, Launches: g.n}
		}
	}
	return best, nil
}

func matches(sel types.Selection, r types.LaunchRecord) bool {
	return sel.Payload.Contains(r.PayloadMassKg) && sel.MatchesSite(r.Site)
}

// DefaultSelection is the initial selection shown by the dashboard: every site
// over the full observed payload range.
func DefaultSelection(ds *dataset.Dataset) types.Selection {
	return types.Selection{Site: types.SiteAll, Payload: ds.PayloadBounds()}
}

// ValidateSite checks that site is SiteAll or present in the dataset.
func ValidateSite(ds *dataset.Dataset, site string) error {
	if site == types.SiteAll || ds.HasSite(site) {
		return nil
	}
	return fmt.Errorf("%w: unknown site %q", ErrInvalidSelection, site)
}

// ValidateSelection checks the site and that 0 ≤ low ≤ high. A high bound
// above the observed maximum is accepted, since UI sliders span a fixed axis
// that may exceed the data.
func ValidateSelection(ds *dataset.Dataset, sel types.Selection) error {
	if err := ValidateSite(ds, sel.Site); err != nil {
		return err
	}
	lo, hi := sel.Payload.Low, sel.Payload.High
	switch {
	case math.IsNaN(lo) || math.IsNaN(hi):
		return fmt.Errorf("%w: payload bound is not a number", ErrInvalidSelection)
	case lo < 0:
		return fmt.Errorf("%w: payload low %v is negative", ErrInvalidSelection, lo)
	case lo > hi:
		return fmt.Errorf("%w: payload low %v exceeds high %v", ErrInvalidSelection, lo, hi)
	}
	return nil
}

// ClampSelection coerces sel into a valid selection: an unknown site becomes
// SiteAll, bounds are clamped into [0, max payload] and swapped when reversed.
func ClampSelection(ds *dataset.Dataset, sel types.Selection) types.Selection {
	if ValidateSite(ds, sel.Site) != nil {
		sel.Site = types.SiteAll
	}
	maxKg := ds.PayloadBounds().High
	clamp := func(v float64) float64 {
		if math.IsNaN(v) {
			return 0
		}
		return math.Min(math.Max(v, 0), maxKg)
	}
	lo, hi := clamp(sel.Payload.Low), clamp(sel.Payload.High)
	if lo > hi {
		lo, hi = hi, lo
	}
	sel.Payload = types.PayloadRange{Low: lo, High: hi}
	return sel
}
