// Package types provides shared data structures for the desktop shell backend.
//
// Core Types:
//   - Window: Open application window record
//   - Item: File or folder in the virtual file system
//   - Clipboard: Copy/cut staging buffer
//   - App: Installed application definition
//   - Event: State change notification published by the domain managers
//
// Request Types:
//   - OpenWindowRequest, CreateItemRequest, UpdateItemRequest: HTTP payloads
//   - WSMessage: WebSocket communication
//
// State Management:
//   - WindowPosition, WindowSize: Window geometry
//   - Outcome: Result of a gated (confirm/deny) operation
//   - WindowStats, ItemStats: Manager statistics
//
// Example Usage:
//
//	win := types.Window{
//	    ID:    id.NewWindowID("calculator"),
//	    Title: "Calculator",
//	    AppID: "calculator",
//	    Size:  types.WindowSize{Width: 800, Height: 600},
//	}
package types
