// Package middleware provides the HTTP middleware of the desktop API.
//
// Middleware stack:
//   - Recovery: panic recovery logged through zap
//   - RequestLogger: one structured log line per request
//   - CORS: cross-origin resource sharing (gin-contrib/cors)
//   - RateLimit: per-IP token bucket with idle client cleanup
//
// Example Usage:
//
//	router.Use(middleware.Recovery(logger))
//	router.Use(middleware.CORS(middleware.OriginsCORSConfig(cfg.Server.AllowedOrigins)))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
