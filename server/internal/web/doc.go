// Package web serves the single dashboard page.
//
// The page is an html/template embedded in the binary and rendered once at
// startup with the site dropdown and slider axis from api.Options. Its script
// opens /ws/select, sends a select frame whenever a control changes, and
// redraws from each view event. Charts load from /api/v1/charts/*.svg.
//
// An api_key query parameter on the page URL is forwarded to the API and
// websocket requests.
package web
