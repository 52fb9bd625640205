// Package ws implements the WebSocket hub that drives the dashboard page.
//
// Each connected client owns a selection (site plus payload range). The hub
// sends the full view for the default selection on connect and a fresh view
// every time the client changes its selection. Clients never see each other's
// selections.
//
// New(dataset, metrics) creates a Hub.
// Hub.Run(ctx) blocks until ctx is cancelled, then closes all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket and serves the client.
//
// Messages sent to clients:
//
//	{"event": "view",  "data": { /* same schema as GET /api/v1/view */ }}
//	{"event": "error", "data": {"message": "...", "selection": { /* unchanged */ }}}
//
// Messages read from clients:
//
//	{"event": "select", "data": {"site": "KSC LC-39A", "low": 0, "high": 5000}}
//
// Omitted select fields keep their current value. An invalid selection is
// answered with an error event and the previous selection stays in effect.
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level. The endpoint is mounted at /ws/select by the server.
package ws
