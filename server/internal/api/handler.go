package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/metrics"
	"github.com/launchdash/launchdash/server/internal/query"
	"github.com/launchdash/launchdash/server/internal/render"
)

// AllSitesLabel is the dropdown label for types.SiteAll.
const AllSitesLabel = "All Sites"

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It answers every request from the immutable dataset it was built with.
type Handler struct {
	ds      *dataset.Dataset
	metrics *metrics.Metrics
	slider  Slider
	mux     *http.ServeMux
}

// New creates a Handler over ds and registers all routes. m may be nil.
func New(ds *dataset.Dataset, m *metrics.Metrics, slider Slider) http.Handler {
	h := &Handler{ds: ds, metrics: m, slider: slider, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/options", h.options)
	h.mux.HandleFunc("/api/v1/outcomes", h.outcomes)
	h.mux.HandleFunc("/api/v1/scatter", h.scatter)
	h.mux.HandleFunc("/api/v1/payload-summary", h.payloadSummary)
	h.mux.HandleFunc("/api/v1/booster", h.booster)
	h.mux.HandleFunc("/api/v1/view", h.view)
	h.mux.HandleFunc("/api/v1/charts/outcomes.svg", h.outcomesChart)
	h.mux.HandleFunc("/api/v1/charts/scatter.svg", h.scatterChart)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Source:  h.ds.Source(),
		Records: h.ds.Len(),
		Sites:   len(h.ds.Sites()),
	})
}

// options returns GET /api/v1/options: dropdown entries, payload bounds and
// slider axis.
func (h *Handler) options(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, Options(h.ds, h.slider))
}

// outcomes returns GET /api/v1/outcomes?site=.
func (h *Handler) outcomes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	site, err := h.parseSite(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResp(w, http.StatusOK, outcomesView(h.ds, site, h.metrics))
}

// scatter returns GET /api/v1/scatter?site=&low=&high=.
func (h *Handler) scatter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sel, err := h.parseSelection(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResp(w, http.StatusOK, scatterView(h.ds, sel, h.metrics))
}

// payloadSummary returns GET /api/v1/payload-summary?site=&low=&high=.
// An empty selection is still 200 with available=false.
func (h *Handler) payloadSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sel, err := h.parseSelection(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResp(w, http.StatusOK, payloadSummaryView(h.ds, sel, h.metrics))
}

// booster returns GET /api/v1/booster?site=.
func (h *Handler) booster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	site, err := h.parseSite(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResp(w, http.StatusOK, boosterView(h.ds, site, h.metrics))
}

// view returns GET /api/v1/view?site=&low=&high=: every view at once.
func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sel, err := h.parseSelection(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResp(w, http.StatusOK, BuildView(h.ds, sel, h.metrics))
}

// outcomesChart returns GET /api/v1/charts/outcomes.svg?site=.
func (h *Handler) outcomesChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	site, err := h.parseSite(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	v := outcomesView(h.ds, site, h.metrics)
	svgResp(w, func(buf *bytes.Buffer) error {
		return render.OutcomesSVG(buf, site, v.Slices)
	})
}

// scatterChart returns GET /api/v1/charts/scatter.svg?site=&low=&high=.
func (h *Handler) scatterChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sel, err := h.parseSelection(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	v := scatterView(h.ds, sel, h.metrics)
	svgResp(w, func(buf *bytes.Buffer) error {
		return render.ScatterSVG(buf, sel, v.Points)
	})
}

// --- selection parsing ------------------------------------------------------

// parseSite reads ?site=, defaulting to types.SiteAll.
func (h *Handler) parseSite(r *http.Request) (string, error) {
	site := r.URL.Query().Get("site")
	if site == "" {
		site = types.SiteAll
	}
	if err := query.ValidateSite(h.ds, site); err != nil {
		return "", err
	}
	return site, nil
}

// parseSelection reads ?site=&low=&high=. Missing bounds default to the
// dataset's observed payload range.
func (h *Handler) parseSelection(r *http.Request) (types.Selection, error) {
	q := r.URL.Query()
	sel := query.DefaultSelection(h.ds)
	if site := q.Get("site"); site != "" {
		sel.Site = site
	}
	var err error
	if sel.Payload.Low, err = parseBound(q.Get("low"), sel.Payload.Low); err != nil {
		return types.Selection{}, fmt.Errorf("low: %w", err)
	}
	if sel.Payload.High, err = parseBound(q.Get("high"), sel.Payload.High); err != nil {
		return types.Selection{}, fmt.Errorf("high: %w", err)
	}
	if err := query.ValidateSelection(h.ds, sel); err != nil {
		return types.Selection{}, err
	}
	return sel, nil
}

func parseBound(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", query.ErrInvalidSelection, raw)
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", query.ErrInvalidSelection, raw)
	}
	return v, nil
}

// Options builds the control description for ds. Exported for the page
// template, which embeds it as the initial state.
func Options(ds *dataset.Dataset, slider Slider) OptionsResponse {
	sites := ds.Sites()
	opts := make([]SiteOption, 0, len(sites)+1)
	opts = append(opts, SiteOption{Label: AllSitesLabel, Value: types.SiteAll})
	for _, s := range sites {
		opts = append(opts, SiteOption{Label: s, Value: s})
	}
	return OptionsResponse{
		Sites:   opts,
		Payload: ds.PayloadBounds(),
		Slider:  SliderResponse{Slider: slider, Marks: sliderMarks(slider)},
		Default: query.DefaultSelection(ds),
	}
}

// sliderMarks labels the axis every MarkEvery kilograms from Min to Max.
func sliderMarks(s Slider) []SliderMark {
	marks := make([]SliderMark, 0)
	if s.MarkEvery <= 0 {
		return marks
	}
	for v := s.Min; v <= s.Max; v += s.MarkEvery {
		marks = append(marks, SliderMark{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64) + " Kg"})
	}
	return marks
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// svgResp renders into a buffer first so a failure can still become a 500.
func svgResp(w http.ResponseWriter, draw func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		slog.Error("api: render chart failed", "err", err)
		jsonErr(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}
