/*
Package monitoring provides Prometheus metrics for the desktop backend.

# Overview

Metrics cover HTTP traffic, window lifecycle, file system mutations, the
outcomes of confirmation-gated operations, key-value persistence (including
writes dropped on quota errors), sessions and WebSocket connections.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	windows := window.NewManager(opts, bus).WithMetrics(metrics)

	timer := monitoring.NewTimer(metrics, "fileSystem")
	// ... write ...
	timer.Stop("success")
*/
package monitoring
