package api

import "github.com/launchdash/launchdash/pkg/types"

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Source  string `json:"source"`
	Records int    `json:"records"`
	Sites   int    `json:"sites"`
}

// SiteOption is one entry of the site dropdown.
type SiteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SliderMark is one labelled tick of the payload slider.
type SliderMark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Slider describes the payload range slider axis.
type Slider struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Step      float64 `json:"step"`
	MarkEvery float64 `json:"-"`
}

// SliderResponse is Slider plus its computed marks.
type SliderResponse struct {
	Slider
	Marks []SliderMark `json:"marks"`
}

// OptionsResponse is the payload for GET /api/v1/options: everything the page
// needs to build its controls.
type OptionsResponse struct {
	Sites   []SiteOption       `json:"sites"`
	Payload types.PayloadRange `json:"payload"`
	Slider  SliderResponse     `json:"slider"`
	Default types.Selection    `json:"default"`
}

// OutcomesResponse is the payload for GET /api/v1/outcomes.
type OutcomesResponse struct {
	Site   string               `json:"site"`
	Title  string               `json:"title"`
	Slices []types.OutcomeSlice `json:"slices"`
	Total  int                  `json:"total"`
}

// ScatterResponse is the payload for GET /api/v1/scatter.
type ScatterResponse struct {
	Site    string               `json:"site"`
	Title   string               `json:"title"`
	Payload types.PayloadRange   `json:"payload"`
	Points  []types.ScatterPoint `json:"points"`
	Count   int                  `json:"count"`
}

// PayloadSummaryResponse is the payload for GET /api/v1/payload-summary.
// When Available is false Summary and Text are omitted and Message holds the
// fallback.
type PayloadSummaryResponse struct {
	Available bool                  `json:"available"`
	Summary   *types.PayloadSummary `json:"summary,omitempty"`
	Text      string                `json:"text,omitempty"`
	Message   string                `json:"message,omitempty"`
}

// BoosterResponse is the payload for GET /api/v1/booster.
type BoosterResponse struct {
	Available bool                  `json:"available"`
	Booster   *types.BoosterSummary `json:"booster,omitempty"`
	Text      string                `json:"text,omitempty"`
	Message   string                `json:"message,omitempty"`
}

// View is every derived view for one selection. It is served by
// GET /api/v1/view and pushed to websocket clients.
type View struct {
	Selection      types.Selection        `json:"selection"`
	Outcomes       OutcomesResponse       `json:"outcomes"`
	Scatter        ScatterResponse        `json:"scatter"`
	PayloadSummary PayloadSummaryResponse `json:"payload_summary"`
	Booster        BoosterResponse        `json:"booster"`
	GeneratedAt    string                 `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
