// Package config provides 12-factor configuration for the desktop backend.
//
// Configuration is loaded from environment variables with defaults. An
// optional .env file in the working directory is read first; variables
// already present in the environment are not overridden.
//
// Configuration Sections:
//   - Server: listen address, CORS origins, shutdown timeout
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting
//   - Storage: key-value backend (memory or sqlite), quota, compression
//   - Persistence: debounce delays for snapshot writes
//   - Desktop: viewport, taskbar height, default profile, extra app catalogs
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Server.Addr())
//
// Environment Variables:
//   - PORT, HOST, CORS_ORIGINS, SHUTDOWN_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - STORAGE_DRIVER, STORAGE_PATH, STORAGE_QUOTA, STORAGE_COMPRESS
//   - PERSIST_DEBOUNCE, PERSIST_APP_DEBOUNCE
//   - VIEWPORT_WIDTH, VIEWPORT_HEIGHT, TASKBAR_HEIGHT, DEFAULT_PROFILE, CATALOG_DIR
package config
