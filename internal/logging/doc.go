// Package logging provides structured logging for devcard.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the tool. Logging is silent unless asked for:
// a plain `devcard` run prints the card and nothing else.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (lookup URLs, push payload sizes)
//   - Info: Normal operations (server start, client connects, requests)
//   - Warn: Non-fatal issues (probe failures, settings fallbacks)
//   - Error: Fatal issues (startup failures, upgrade errors)
//
// # Configuration
//
// Initialize with an explicit level, or from the environment:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// InitializeFromEnv reads the DEVCARD_LOG_LEVEL environment variable and
// falls back to silent mode when it is unset, which is what the CLI
// commands use. Helpers called before any Initialize succeed quietly
// against a nop logger.
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Share client connected",
//	    zap.String("remote_addr", "192.168.1.100:54012"),
//	    zap.Int("active_clients", 3),
//	)
//
// # Specialized Logging
//
// The share server logs through two domain helpers:
//
//	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path)
//	logging.LogProfilePush(remoteAddr, len(payload))
//
// # Output
//
// Logs are written to stderr in console format. Stdout belongs to the
// card itself (TUI, text, JSON); keeping log lines off it means piped
// output stays parseable:
//
//	2025-11-25T10:30:45.123-0800  INFO  HTTP request received
//	  remote_addr=192.168.1.100:54012
//	  method=GET
//	  path=/api/profile
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
