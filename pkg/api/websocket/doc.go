// Package websocket provides real-time event streaming via WebSocket.
//
// Clients can connect to /api/v1/trips/:id/ws to receive real-time
// updates about a plan's progress through the pipeline.
package websocket
