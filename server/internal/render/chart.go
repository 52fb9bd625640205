package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"log/slog"
	"sort"

	"github.com/dustin/go-humanize"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/launchdash/launchdash/pkg/types"
)

// Chart dimensions in pixels.
const (
	Width  = 720
	Height = 420
)

// palette colours scatter series and pie wedges in order of first appearance.
var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorCyan,
	chart.ColorYellow,
	chart.ColorAlternateGray,
}

func colorAt(i int) drawing.Color {
	return palette[i%len(palette)]
}

// OutcomesTitle returns the pie chart title for site.
func OutcomesTitle(site string) string {
	if site == types.SiteAll {
		return "Total Success Launches for All Sites"
	}
	return "Total Success and Failure Launches for Site " + site
}

// ScatterTitle returns the scatter chart title for site.
func ScatterTitle(site string) string {
	if site == types.SiteAll {
		return "Correlation between Payload and Success for All Sites"
	}
	return "Correlation between Payload and Success for Site " + site
}

// OutcomesSVG renders the outcome pie chart for site as SVG. Zero-count
// wedges are omitted; when nothing remains an empty placeholder is drawn.
func OutcomesSVG(w io.Writer, site string, slices []types.OutcomeSlice) error {
	title := OutcomesTitle(site)

	var values []chart.Value
	for i, s := range slices {
		if s.Count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%s)", s.Label, humanize.Comma(int64(s.Count))),
			Value: float64(s.Count),
			Style: chart.Style{FillColor: colorAt(i), StrokeColor: chart.ColorWhite},
		})
	}
	if len(values) == 0 {
		return placeholder(w, title, NoDataMessage)
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  Width,
		Height: Height,
		Values: values,
	}
	return renderOrPlaceholder(w, title, pie.Render)
}

// ScatterSVG renders payload mass against outcome, one series per booster
// category, over the selection's payload range.
func ScatterSVG(w io.Writer, sel types.Selection, points []types.ScatterPoint) error {
	title := ScatterTitle(sel.Site)
	if len(points) == 0 {
		return placeholder(w, title, NoDataMessage)
	}

	byCategory := make(map[string]*chart.ContinuousSeries)
	var order []string
	for _, p := range points {
		s, ok := byCategory[p.BoosterCategory]
		if !ok {
			s = &chart.ContinuousSeries{Name: p.BoosterCategory}
			byCategory[p.BoosterCategory] = s
			order = append(order, p.BoosterCategory)
		}
		s.XValues = append(s.XValues, p.PayloadMassKg)
		s.YValues = append(s.YValues, float64(p.Outcome))
	}
	sort.Strings(order)

	series := make([]chart.Series, 0, len(order))
	for i, name := range order {
		s := byCategory[name]
		s.Style = chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    5,
			DotColor:    colorAt(i),
		}
		series = append(series, *s)
	}

	lo, hi := sel.Payload.Low, sel.Payload.High
	if hi <= lo {
		// A point range still needs a non-empty axis.
		lo, hi = lo-500, hi+500
	}

	ch := chart.Chart{
		Title:      title,
		Width:      Width,
		Height:     Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Payload Mass (kg)",
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		YAxis: chart.YAxis{
			Name:  "class",
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return renderOrPlaceholder(w, title, ch.Render)
}

// renderOrPlaceholder buffers a go-chart render so a failure can still produce
// a valid SVG document instead of a truncated one.
func renderOrPlaceholder(w io.Writer, title string, render func(chart.RendererProvider, io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(chart.SVG, &buf); err != nil {
		slog.Warn("render: chart failed, drawing placeholder", "title", title, "err", err)
		return placeholder(w, title, "Chart unavailable.")
	}
	_, err := buf.WriteTo(w)
	return err
}

// placeholder writes a minimal SVG with the chart title and a message.
func placeholder(w io.Writer, title, msg string) error {
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<rect width="100%%" height="100%%" fill="#ffffff"/>`+
			`<text x="50%%" y="32" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`+
			`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#888888">%s</text>`+
			`</svg>`,
		Width, Height, Width, Height, html.EscapeString(title), html.EscapeString(msg))
	return err
}
