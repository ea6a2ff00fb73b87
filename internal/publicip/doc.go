// Package publicip resolves the machine's externally-visible IP address.
//
// The resolver queries a primary lookup service and parses the "ip" field
// of its JSON response. Any failure on the primary path (network error,
// non-2xx status, malformed body, empty field) triggers exactly one call
// to a fallback service, whose response carries the address in an "origin"
// field. When both services fail the resolver yields the fixed sentinel
// string "Unable to fetch IP" instead of an error.
//
// # Contract
//
// Resolve never returns an error and never returns an empty string. Callers
// render its result directly; the sentinel is a displayable value, not a
// failure signal to branch on. ResolveDetail additionally reports which
// service answered, for logging and for the share payload.
//
// # Timeouts
//
// Each call (primary and fallback separately) runs under an explicit
// timeout, DefaultTimeout (5s) unless overridden via the Timeout field.
// The timeout composes with the caller's context: whichever expires first
// cancels the request.
//
// # Usage Example
//
//	resolver := publicip.NewResolver()
//	ip := resolver.Resolve(ctx) // "203.0.113.7" or "Unable to fetch IP"
package publicip
