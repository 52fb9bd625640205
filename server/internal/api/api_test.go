package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/api"
	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/metrics"
	"github.com/launchdash/launchdash/server/internal/render"
)

// --- test helpers -----------------------------------------------------------

var testSlider = api.Slider{Min: 0, Max: 10000, Step: 1000, MarkEvery: 2500}

// newDataset returns three sites, payloads spanning [1000, 12000].
func newDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New("test", []types.LaunchRecord{
		{Site: "A", PayloadMassKg: 1000, BoosterVersion: "F9 v1.0 B0003", Outcome: types.Failure},
		{Site: "A", PayloadMassKg: 2500, BoosterVersion: "F9 v1.1 B1010", Outcome: types.Success},
		{Site: "B", PayloadMassKg: 5000, BoosterVersion: "F9 FT B1020", Outcome: types.Success},
		{Site: "B", PayloadMassKg: 9000, BoosterVersion: "F9 FT B1021", Outcome: types.Failure},
		{Site: "C", PayloadMassKg: 12000, BoosterVersion: "F9 B4 B1040", Outcome: types.Success},
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return ds
}

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	return api.New(newDataset(t), nil, testSlider)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON: %v (body: %s)", err, rr.Body.String())
	}
}

func wantStatus(t *testing.T, rr *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rr.Code != code {
		t.Fatalf("status: got %d, want %d (body: %s)", rr.Code, code, rr.Body.String())
	}
}

// --- /api/v1/health ---------------------------------------------------------

func TestHealth(t *testing.T) {
	rr := get(t, newHandler(t), "/api/v1/health")
	wantStatus(t, rr, http.StatusOK)

	var resp api.HealthResponse
	decode(t, rr, &resp)
	if resp.Status != "ok" || resp.Records != 5 || resp.Sites != 3 {
		t.Errorf("health: got %+v, want status ok, 5 records, 3 sites", resp)
	}
}

// --- /api/v1/options --------------------------------------------------------

func TestOptions(t *testing.T) {
	rr := get(t, newHandler(t), "/api/v1/options")
	wantStatus(t, rr, http.StatusOK)

	var resp api.OptionsResponse
	decode(t, rr, &resp)

	if len(resp.Sites) != 4 {
		t.Fatalf("sites: got %d, want 4", len(resp.Sites))
	}
	if resp.Sites[0] != (api.SiteOption{Label: "All Sites", Value: types.SiteAll}) {
		t.Errorf("first option: got %+v, want All Sites/ALL", resp.Sites[0])
	}
	if resp.Sites[1].Value != "A" || resp.Sites[3].Value != "C" {
		t.Errorf("site order: got %+v, want first-seen order", resp.Sites)
	}
	if resp.Payload != (types.PayloadRange{Low: 1000, High: 12000}) {
		t.Errorf("payload: got %+v, want [1000, 12000]", resp.Payload)
	}
	if resp.Default.Site != types.SiteAll || resp.Default.Payload != resp.Payload {
		t.Errorf("default: got %+v, want ALL over observed bounds", resp.Default)
	}
	if len(resp.Slider.Marks) != 5 {
		t.Fatalf("marks: got %d, want 5", len(resp.Slider.Marks))
	}
	if resp.Slider.Marks[1].Label != "2500 Kg" {
		t.Errorf("mark label: got %q, want %q", resp.Slider.Marks[1].Label, "2500 Kg")
	}
	if resp.Slider.Step != 1000 {
		t.Errorf("step: got %v, want 1000", resp.Slider.Step)
	}
}

// --- /api/v1/outcomes -------------------------------------------------------

func TestOutcomes_AllSites(t *testing.T) {
	rr := get(t, newHandler(t), "/api/v1/outcomes")
	wantStatus(t, rr, http.StatusOK)

	var resp api.OutcomesResponse
	decode(t, rr, &resp)
	if resp.Site != types.SiteAll {
		t.Errorf("site: got %q, want ALL", resp.Site)
	}
	if resp.Title != render.OutcomesTitle(types.SiteAll) {
		t.Errorf("title: got %q", resp.Title)
	}
	if resp.Total != 3 {
		t.Errorf("total: got %d, want 3 successes", resp.Total)
	}
	if len(resp.Slices) != 3 || resp.Slices[0].Label != "A" {
		t.Errorf("slices: got %+v, want one per site starting with A", resp.Slices)
	}
}

func TestOutcomes_SingleSite(t *testing.T) {
	rr := get(t, newHandler(t), "/api/v1/outcomes?site=B")
	wantStatus(t, rr, http.StatusOK)

	var resp api.OutcomesResponse
	decode(t, rr, &resp)
	if len(resp.Slices) != 2 {
		t.Fatalf("slices: got %d, want 2", len(resp.Slices))
	}
	if resp.Slices[0].Count != 1 || resp.Slices[1].Count != 1 {
		t.Errorf("counts: got %+v, want 1 success and 1 failure", resp.Slices)
	}
	if resp.Total != 2 {
		t.Errorf("total: got %d, want 2", resp.Total)
	}
}

func TestOutcomes_UnknownSite(t *testing.T) {
	rr := get(t, newHandler(t), "/api/v1/outcomes?site=Nowhere")
	wantStatus(t, rr, http.StatusBadRequest)
}

// --- /api/v1/scatter --------------------------------------------------------

func TestScatter_Range(t *testing.T) {
	rr := get(t, newHandler(t), "/api/v1/scatter?low=2000&high=9000")
	wantStatus(t, rr, http.StatusOK)

	var resp api.ScatterResponse
	decode(t, rr, &resp)
	if resp.Count != 3 || len(resp.Points) != 3 {
		t.Fatalf("points: got %d, want 3", len(resp.Points))
	}
	for _, p := range resp.Points {
		if p.PayloadMassKg < 2000 || p.PayloadMassKg > 9000 {
			t.Errorf("point %v outside [2000, 9000]", p.PayloadMassKg)
		}
	}
	if resp.Points[1].BoosterCategory != "FT" {
		t.Errorf("category: got %q, want FT", resp.Points[1].BoosterCategory)
	}
}

func TestScatter_EmptyIsNotAnError(t *testing.T) {
	rr := get(t, newHandler(t), "/api/v1/scatter?site=C&low=0&high=5000")
	wantStatus(t, rr, http.StatusOK)

	var resp api.ScatterResponse
	decode(t, rr, &resp)
	if resp.Points == nil || len(resp.Points) != 0 {
		t.Errorf("points: got %v, want empty list", resp.Points)
	}
}

func TestSelection_Invalid(t *testing.T) {
	h := newHandler(t)
	for _, path := range []string{
		"/api/v1/scatter?low=abc",
		"/api/v1/scatter?high=Inf",
		"/api/v1/scatter?low=-1",
		"/api/v1/scatter?low=5000&high=1000",
		"/api/v1/payload-summary?site=Nowhere",
		"/api/v1/view?low=NaN",
	} {
		t.Run(path, func(t *testing.T) {
			rr := get(t, h, path)
			wantStatus(t, rr, http.StatusBadRequest)
			var resp map[string]string
			decode(t, rr, &resp)
			if resp["error"] == "" {
				t.Error("expected an error message")
			}
		})
	}
}

// --- /api/v1/payload-summary ------------------------------------------------

func TestPayloadSummary(t *testing.T) {
	rr := get(t, newHandler(t), "/api/v1/payload-summary")
	wantStatus(t, rr, http.StatusOK)

	var resp api.PayloadSummaryResponse
	decode(t, rr, &resp)
	if !resp.Available || resp.Summary == nil {
		t.Fatalf("summary unavailable: %+v", resp)
	}
	// Buckets 1 and 2 both succeed every time; the lower index wins.
	if resp.Summary.Highest.Label != "2000-4000 kg" {
		t.Errorf("highest: got %q, want 2000-4000 kg", resp.Summary.Highest.Label)
	}
	if resp.Summary.Lowest.Label != "0-2000 kg" {
		t.Errorf("lowest: got %q, want 0-2000 kg", resp.Summary.Lowest.Label)
	}
	if !strings.Contains(resp.Text, "100.00%") {
		t.Errorf("text: got %q, want a 100.00%% rate", resp.Text)
	}
	if resp.Message != "" {
		t.Errorf("message: got %q, want empty", resp.Message)
	}
}

func TestPayloadSummary_Insufficient(t *testing.T) {
	// Site C's only launch is above the bucket axis.
	rr := get(t, newHandler(t), "/api/v1/payload-summary?site=C")
	wantStatus(t, rr, http.StatusOK)

	var resp map[string]interface{}
	decode(t, rr, &resp)
	if resp["available"] != false {
		t.Errorf("available: got %v, want false", resp["available"])
	}
	if resp["message"] != render.NoDataMessage {
		t.Errorf("message: got %v, want %q", resp["message"], render.NoDataMessage)
	}
	if _, ok := resp["summary"]; ok {
		t.Error("summary should be omitted")
	}
}

// --- /api/v1/booster --------------------------------------------------------

func TestBooster_TieBreak(t *testing.T) {
	rr := get(t, newHandler(t), "/api/v1/booster")
	wantStatus(t, rr, http.StatusOK)

	var resp api.BoosterResponse
	decode(t, rr, &resp)
	if !resp.Available || resp.Booster == nil {
		t.Fatalf("booster unavailable: %+v", resp)
	}
	// Three versions reach 100%; the lexicographically smallest wins.
	if resp.Booster.BoosterVersion != "F9 B4 B1040" {
		t.Errorf("version: got %q, want F9 B4 B1040", resp.Booster.BoosterVersion)
	}
	want := "The F9 Booster version with the highest success rate is F9 B4 B1040 with a success rate of 100.00%."
	if resp.Text != want {
		t.Errorf("text: got %q, want %q", resp.Text, want)
	}
}

func TestBooster_Site(t *testing.T) {
	rr := get(t, newHandler(t), "/api/v1/booster?site=A")
	wantStatus(t, rr, http.StatusOK)

	var resp api.BoosterResponse
	decode(t, rr, &resp)
	if resp.Booster == nil || resp.Booster.BoosterVersion != "F9 v1.1 B1010" {
		t.Errorf("booster: got %+v, want F9 v1.1 B1010", resp.Booster)
	}
}

// --- /api/v1/view -----------------------------------------------------------

func TestView(t *testing.T) {
	rr := get(t, newHandler(t), "/api/v1/view?site=B&low=4000&high=6000")
	wantStatus(t, rr, http.StatusOK)

	var v api.View
	decode(t, rr, &v)
	want := types.Selection{Site: "B", Payload: types.PayloadRange{Low: 4000, High: 6000}}
	if v.Selection != want {
		t.Errorf("selection: got %+v, want %+v", v.Selection, want)
	}
	if v.Scatter.Count != 1 {
		t.Errorf("scatter count: got %d, want 1", v.Scatter.Count)
	}
	if !v.PayloadSummary.Available {
		t.Error("payload summary should be available")
	}
	// Outcomes and booster ignore the payload range.
	if v.Outcomes.Total != 2 {
		t.Errorf("outcomes total: got %d, want 2", v.Outcomes.Total)
	}
	if v.Booster.Booster == nil || v.Booster.Booster.BoosterVersion != "F9 FT B1020" {
		t.Errorf("booster: got %+v", v.Booster.Booster)
	}
	if v.GeneratedAt == "" {
		t.Error("generated_at should be set")
	}
}

// --- charts -----------------------------------------------------------------

func TestCharts_SVG(t *testing.T) {
	h := newHandler(t)
	for _, path := range []string{
		"/api/v1/charts/outcomes.svg",
		"/api/v1/charts/outcomes.svg?site=A",
		"/api/v1/charts/scatter.svg?low=0&high=10000",
		"/api/v1/charts/scatter.svg?site=C&low=0&high=10",
	} {
		t.Run(path, func(t *testing.T) {
			rr := get(t, h, path)
			wantStatus(t, rr, http.StatusOK)
			if ct := rr.Header().Get("Content-Type"); ct != "image/svg+xml" {
				t.Errorf("Content-Type: got %q, want image/svg+xml", ct)
			}
			if !strings.Contains(rr.Body.String(), "<svg") {
				t.Errorf("body is not SVG: %.80s", rr.Body.String())
			}
		})
	}
}

// --- cross-cutting ----------------------------------------------------------

func TestMethodNotAllowed(t *testing.T) {
	h := newHandler(t)
	for _, path := range []string{
		"/api/v1/health",
		"/api/v1/options",
		"/api/v1/outcomes",
		"/api/v1/scatter",
		"/api/v1/payload-summary",
		"/api/v1/booster",
		"/api/v1/view",
		"/api/v1/charts/outcomes.svg",
		"/api/v1/charts/scatter.svg",
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, nil))
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s: got %d, want 405", path, rr.Code)
		}
	}
}

func TestContentTypeJSON(t *testing.T) {
	rr := get(t, newHandler(t), "/api/v1/view")
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
}

func TestMetricsRecorded(t *testing.T) {
	m := metrics.New()
	h := api.New(newDataset(t), m, testSlider)
	get(t, h, "/api/v1/view")
	get(t, h, "/api/v1/payload-summary?site=C")

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rr.Body.String()
	for _, want := range []string{
		`launchdash_query_total{view="payload_summary"} 2`,
		`launchdash_query_total{view="outcomes"} 1`,
		`launchdash_query_insufficient_total{view="payload_summary"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
