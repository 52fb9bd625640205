// Package api implements the dashboard's HTTP REST API.
//
// New(dataset, metrics, slider) returns an http.Handler that serves:
//
//	GET /api/v1/health                            dataset source, record and site counts
//	GET /api/v1/options                           site dropdown, payload bounds, slider axis
//	GET /api/v1/outcomes?site=                    successes per site, or success/failure for one site
//	GET /api/v1/scatter?site=&low=&high=          payload vs outcome points
//	GET /api/v1/payload-summary?site=&low=&high=  best and worst payload bucket
//	GET /api/v1/booster?site=                     booster version with the highest success rate
//	GET /api/v1/view?site=&low=&high=             all of the above for one selection
//	GET /api/v1/charts/outcomes.svg?site=
//	GET /api/v1/charts/scatter.svg?site=&low=&high=
//
// All endpoints:
//   - Respond with Content-Type: application/json (SVG for the chart routes)
//   - Return 405 for non-GET methods
//   - Return 400 for an unknown site, a non-numeric bound, a negative low
//     or low > high
//
// site defaults to ALL and low/high default to the dataset's observed payload
// range. A selection that matches nothing is not an error: the summary and
// booster endpoints answer 200 with available=false and a message.
//
// BuildView is shared with the websocket hub. JSON types are defined in
// types.go. No external HTTP framework is used.
package api
