// Package server wires configuration, storage, desktops and the HTTP API
// into a runnable server.
//
// Startup order:
//   - logger and Prometheus registry
//   - app catalog (embedded, then CATALOG_DIR overrides)
//   - key-value store and codec
//   - session manager
//   - gin router with recovery, tracing, request logging, metrics, CORS and
//     rate limiting
//
// Shutdown drains HTTP first, then flushes every open desktop before the
// store is closed, so no debounced write is lost.
package server
