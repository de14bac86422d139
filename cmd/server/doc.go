// Package main is the entry point of the WebDesk shell backend.
//
// The server keeps one desktop per profile: windows, the virtual file
// system with its recycle bin and clipboard, and the installed apps. State
// is persisted to a key-value store (memory or SQLite) and changes are
// pushed to clients over WebSocket.
//
// Configuration:
//   - Environment variables, optionally from a .env file
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# In-memory store, default profile "user"
//	./server -port 8000
//
//	# Durable store
//	STORAGE_DRIVER=sqlite STORAGE_PATH=data/webdesk.db ./server
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown, pending writes are flushed
package main
