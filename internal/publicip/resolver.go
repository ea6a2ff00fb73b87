package publicip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/haldis/devcard/internal/logging"
)

const (
	// DefaultPrimaryURL is the primary lookup service. Its JSON response
	// carries the address in an "ip" field.
	DefaultPrimaryURL = "https://api.ipify.org?format=json"

	// DefaultFallbackURL is the fallback lookup service. Its JSON response
	// carries the address in an "origin" field.
	DefaultFallbackURL = "https://httpbin.org/ip"

	// DefaultTimeout bounds each lookup call (primary and fallback
	// separately). The upstream services normally answer well under a
	// second; a hung connection must not stall the profile load.
	DefaultTimeout = 5 * time.Second

	// Sentinel is returned when both lookup services fail. It is a
	// displayable placeholder, not an error.
	Sentinel = "Unable to fetch IP"

	// maxResponseBytes caps how much of a lookup response is read.
	// Both services answer with a few dozen bytes; anything near the
	// cap is garbage.
	maxResponseBytes = 1 << 20
)

// Source identifies which lookup service produced a result.
type Source int

const (
	// SourceNone means both services failed and the sentinel was returned
	SourceNone Source = iota
	// SourcePrimary means the primary service answered
	SourcePrimary
	// SourceFallback means the fallback service answered
	SourceFallback
)

// String returns a human-readable name for the source
func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourceFallback:
		return "fallback"
	case SourceNone:
		return "none"
	default:
		return fmt.Sprintf("Source(%d)", s)
	}
}

// Resolver queries public IP lookup services. The zero value is usable;
// empty fields fall back to the package defaults.
type Resolver struct {
	// PrimaryURL is the first service queried (default: DefaultPrimaryURL)
	PrimaryURL string

	// FallbackURL is queried once if the primary fails (default: DefaultFallbackURL)
	FallbackURL string

	// Timeout bounds each individual call (default: DefaultTimeout)
	Timeout time.Duration

	// HTTPClient is the underlying HTTP client (default: http.DefaultClient)
	HTTPClient *http.Client
}

// NewResolver creates a resolver with the default endpoints and timeout
func NewResolver() *Resolver {
	return &Resolver{
		PrimaryURL:  DefaultPrimaryURL,
		FallbackURL: DefaultFallbackURL,
		Timeout:     DefaultTimeout,
		HTTPClient:  &http.Client{},
	}
}

// Resolve returns the machine's public IP address as reported by the
// lookup services, or Sentinel when both fail. It never returns an error
// and never returns an empty string.
func (r *Resolver) Resolve(ctx context.Context) string {
	ip, _ := r.ResolveDetail(ctx)
	return ip
}

// ResolveDetail is Resolve plus the source that answered. A SourceNone
// result always carries the sentinel string.
func (r *Resolver) ResolveDetail(ctx context.Context) (string, Source) {
	ip, err := r.fetchField(ctx, r.primaryURL(), "ip")
	if err == nil {
		logging.Debug("Public IP resolved",
			zap.String("source", SourcePrimary.String()),
			zap.String("ip", ip),
		)
		return ip, SourcePrimary
	}
	logging.Debug("Primary IP lookup failed", zap.Error(err))

	ip, err = r.fetchField(ctx, r.fallbackURL(), "origin")
	if err == nil {
		logging.Debug("Public IP resolved",
			zap.String("source", SourceFallback.String()),
			zap.String("ip", ip),
		)
		return ip, SourceFallback
	}
	logging.Debug("Fallback IP lookup failed", zap.Error(err))

	return Sentinel, SourceNone
}

// fetchField performs one GET against a lookup service and extracts the
// named string field from its JSON response.
func (r *Resolver) fetchField(ctx context.Context, rawURL, field string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse JSON response: %w", err)
	}

	value, ok := parsed[field].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("response has no %q field", field)
	}
	return value, nil
}

func (r *Resolver) primaryURL() string {
	if r.PrimaryURL != "" {
		return r.PrimaryURL
	}
	return DefaultPrimaryURL
}

func (r *Resolver) fallbackURL() string {
	if r.FallbackURL != "" {
		return r.FallbackURL
	}
	return DefaultFallbackURL
}

func (r *Resolver) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

func (r *Resolver) client() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return http.DefaultClient
}
