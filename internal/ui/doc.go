// Package ui renders the device card in the terminal.
//
// The centerpiece is the Profile View (Model): a Bubble Tea program that
// loads the device snapshot and the public IP concurrently, joins both
// results, and renders them as labeled rows in two sections inside a
// scrollable viewport. A SearchBar filters rows, and the plain-text
// renderer backs the text command, piped output, and clipboard copy.
//
// # Load Model
//
// The card load has three states:
//
//	loading → ready
//	        ↘ failed (alert box; partial data still rendered)
//
// One load produces exactly one message carrying both the snapshot and
// the public IP; the view never renders with only one of the two. The
// load runs under a context created with the model and canceled on
// quit, so completions after teardown are dropped.
//
// # Row Policy
//
// A row appears only when its backing value is present. Optional fields
// (model, brand, manufacturer, device name, model ID, local IP, year
// class, total memory) are omitted when absent instead of rendering
// placeholder text. Always-present fields (OS, OS version, device type,
// tablet flag, resolution, font scale, battery, network type, connected)
// render their degraded string values. A failed IP lookup renders its
// sentinel; only a deliberately skipped lookup omits the row. A nil
// snapshot empties the device section but never suppresses the network
// section.
//
// # Key Bindings
//
//	/        focus the filter field
//	esc      blur the field, or clear the filter
//	r        reload the card
//	c        copy the card as plain text
//	?        expand help
//	q        quit
//
// # Logging Integration
//
// Logging is controlled via the DEVCARD_LOG_LEVEL environment variable.
// When unset, zap logging is silent so the rendered card stays clean.
package ui
