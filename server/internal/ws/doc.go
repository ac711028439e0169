// Package ws implements the WebSocket hub for tenpin-server.
//
// Hub keeps a set of connected clients and pushes the most recent scored
// games to all of them on a configurable interval, and right away when a new
// game is recorded (Notify).
//
// Message format sent to clients:
//
//	{
//	  "event": "games",
//	  "data":  { /* same schema as GET /api/v1/games */ }
//	}
//
// The upgrader accepts all origins. The server mounts the hub at /ws/games.
package ws
