package api

import (
	"errors"
	"time"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/metrics"
	"github.com/launchdash/launchdash/server/internal/query"
	"github.com/launchdash/launchdash/server/internal/render"
)

// BuildView computes every derived view for sel. sel must already be valid
// for ds; see query.ValidateSelection. m may be nil.
func BuildView(ds *dataset.Dataset, sel types.Selection, m *metrics.Metrics) View {
	return View{
		Selection:      sel,
		Outcomes:       outcomesView(ds, sel.Site, m),
		Scatter:        scatterView(ds, sel, m),
		PayloadSummary: payloadSummaryView(ds, sel, m),
		Booster:        boosterView(ds, sel.Site, m),
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

func outcomesView(ds *dataset.Dataset, site string, m *metrics.Metrics) OutcomesResponse {
	start := time.Now()
	slices := query.Outcomes(ds, site)
	total := 0
	for _, s := range slices {
		total += s.Count
	}
	m.Observe(metrics.ViewOutcomes, start, total == 0)
	return OutcomesResponse{
		Site:   site,
		Title:  render.OutcomesTitle(site),
		Slices: slices,
		Total:  total,
	}
}

func scatterView(ds *dataset.Dataset, sel types.Selection, m *metrics.Metrics) ScatterResponse {
	start := time.Now()
	points := query.Scatter(ds, sel)
	m.Observe(metrics.ViewScatter, start, len(points) == 0)
	return ScatterResponse{
		Site:    sel.Site,
		Title:   render.ScatterTitle(sel.Site),
		Payload: sel.Payload,
		Points:  points,
		Count:   len(points),
	}
}

func payloadSummaryView(ds *dataset.Dataset, sel types.Selection, m *metrics.Metrics) PayloadSummaryResponse {
	start := time.Now()
	sum, err := query.PayloadSummary(ds, sel)
	m.Observe(metrics.ViewPayloadSummary, start, errors.Is(err, query.ErrInsufficientData))
	if err != nil {
		return PayloadSummaryResponse{Message: render.PayloadSummaryText(sum, err)}
	}
	return PayloadSummaryResponse{
		Available: true,
		Summary:   &sum,
		Text:      render.PayloadSummaryText(sum, nil),
	}
}

func boosterView(ds *dataset.Dataset, site string, m *metrics.Metrics) BoosterResponse {
	start := time.Now()
	b, err := query.BestBooster(ds, site)
	m.Observe(metrics.ViewBooster, start, errors.Is(err, query.ErrInsufficientData))
	if err != nil {
		return BoosterResponse{Message: render.BoosterText(b, err)}
	}
	return BoosterResponse{
		Available: true,
		Booster:   &b,
		Text:      render.BoosterText(b, nil),
	}
}
