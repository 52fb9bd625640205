// Package config loads the dashboard configuration from config.yaml.
//
// Config fields:
//   - Server.Host / Server.HTTPPort: listen address (default ":8050"),
//     overridden by LAUNCHDASH_HOST and LAUNCHDASH_PORT
//   - Server.LogLevel  : debug | info | warn | error (default info)
//   - Server.Auth.Mode : "apikey" or "none"
//   - Server.Auth.KeyEnv: environment variable holding the expected API key
//   - Server.Auth.Header: HTTP header name (default "x-api-key")
//   - Dataset.Path     : CSV file or SQLite database (required)
//   - Dataset.Format   : csv | sqlite; inferred from the extension when empty
//   - Dataset.Table    : SQLite table (default "launches")
//   - UI.Slider        : payload slider axis: min 0, max 10000, step 1000, marks every 2500
//
// Load(path) applies defaults before unmarshalling, then validates.
// Watch(ctx, path, fn) reloads on file change; Apply decides what a reload
// can change without a restart.
package config
