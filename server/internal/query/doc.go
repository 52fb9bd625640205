// Package query holds the dashboard's derived views. Each is a pure function
// of a *dataset.Dataset and the caller's selection:
//
//   - Outcomes(ds, site)      : pie data: successes per site, or success/failure for one site
//   - Scatter(ds, sel)        : payload/outcome points inside the payload range
//   - PayloadSummary(ds, sel) : best and worst fixed 2000 kg payload bucket by success rate
//   - BestBooster(ds, site)   : booster version with the highest success rate
//
// Nothing is cached and the dataset is never written, so repeated calls with
// the same input return identical output and calls may run concurrently.
//
// PayloadSummary and BestBooster return ErrInsufficientData when the selection
// leaves nothing to aggregate. ValidateSelection reports ErrInvalidSelection;
// ClampSelection is the lenient alternative for UI input.
package query
