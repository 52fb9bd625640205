// Package render turns query results into what the page displays: SVG charts
// drawn with go-chart and the summary sentences.
//
// Chart functions never fail on empty input; they draw a placeholder with
// NoDataMessage so the page always receives a valid SVG document.
package render
