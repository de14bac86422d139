// Package ws streams desktop state changes to clients over WebSocket.
//
// A connection is bound to one open desktop. Every event published by the
// desktop's managers (windows, items, clipboard, apps, pins) is forwarded
// as it happens, so a client can keep its view current without polling.
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - system: Connection established
//   - event: A desktop event ({"type":"event","event":{...}})
//   - pong: Reply to ping
//   - error: Unknown message type
//
// Slow clients lose events rather than stall the desktop; the buffer holds
// 256 messages.
//
// Example Usage:
//
//	handler := ws.NewHandler(sessions, metrics, logger, origins)
//	router.GET("/desktops/:profile/stream", handler.HandleConnection)
package ws
