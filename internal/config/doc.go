// Package config provides user configuration management for devcard.
//
// This package manages a YAML-based settings file covering the public IP
// lookup endpoints and timeout, the snapshot probe timeout, the share
// server address and push interval, and the nearby-discovery service
// name. The file follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/devcard/config.yaml or $HOME/.config/devcard/config.yaml
//   - macOS: $HOME/.config/devcard/config.yaml
//   - Windows: %LOCALAPPDATA%\devcard\config.yaml
//
// The DEVCARD_CONFIG_DIR environment variable overrides the directory
// entirely, which tests use to stay out of the real home directory.
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// A resolver tuned to the configured endpoints and timeout
//	resolver := settings.Resolver()
//	fmt.Println(resolver.Resolve(context.Background()))
//
//	// Persist changes atomically
//	settings.Share.Listen = ":9000"
//	if err := settings.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Behavior
//
// Load reads the file fresh on every call; a missing file yields the
// defaults without error, so first runs need no setup step. Save writes
// through a temporary file and an atomic rename. Files with an
// unsupported version field are rejected rather than silently migrated.
// Out-of-range values (non-positive timeouts, empty endpoints) are
// normalized back to their defaults on load.
//
// # Thread Safety
//
// File operations are protected by a mutex to ensure atomic writes.
package config
