// Package server shares the device card with other machines on the LAN.
//
// The server exposes the same profile the TUI renders, as JSON over plain
// HTTP and as a periodic WebSocket stream. It is meant to run next to the
// card viewer on a trusted network; there is no authentication.
//
// # Endpoints
//
//   - GET /api/profile: the current profile as JSON, rebuilt per request
//   - GET /healthz: liveness probe
//   - GET /ws: WebSocket upgrade; pushes a fresh profile every interval
//
// # Profile Document
//
// A profile bundles the device snapshot with the public IP:
//
//	{
//	  "device":   { ... snapshot ... } | null,
//	  "publicIp": "203.0.113.7",
//	  "host":     "office-nas",
//	  "takenAt":  "2025-01-01T12:00:00Z"
//	}
//
// The snapshot and the public IP lookup always run concurrently. When the
// hardware metadata cannot be read, "device" is null and "publicIp" still
// carries the lookup result (or its sentinel); clients get a partial
// profile rather than an error.
//
// # Push Loop
//
// Each WebSocket client gets its own push loop: one profile immediately
// after the upgrade, then a fresh one per configured interval. Pings keep
// idle connections alive; a client that stops answering is dropped after
// the read deadline expires.
//
// # Usage Example
//
//	config := &server.Config{
//	    Listen:   ":8790",
//	    Interval: 5 * time.Second,
//	    LogLevel: "info",
//	}
//
//	srv, err := server.New(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Start blocks until shutdown signal or error
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// The server handles SIGINT and SIGTERM:
//  1. Stop accepting new connections and drain in-flight requests
//  2. Close all WebSocket clients
//  3. Wait for push loops to finish, bounded by a timeout
//
// # Thread Safety
//
// Every client connection runs in its own goroutine; the client registry
// is guarded by a mutex. Profile assembly is stateless, so concurrent
// requests never contend with each other.
package server
