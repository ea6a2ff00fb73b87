package config

import (
	"time"

	"github.com/haldis/devcard/internal/publicip"
)

// Default values applied by DefaultSettings and restored by Normalize
// when a loaded file carries values that cannot work.
const (
	DefaultLookupTimeoutSeconds = 5
	DefaultProbeTimeoutSeconds  = 3
	DefaultShareListen          = ":8790"
	DefaultShareIntervalSeconds = 5
	DefaultNearbyService        = "_workstation._tcp"
	DefaultNearbyTimeoutSeconds = 5
)

// Settings represents the entire user configuration file.
type Settings struct {
	Version int            `yaml:"version"`
	Lookup  LookupSettings `yaml:"lookup"`
	Probe   ProbeSettings  `yaml:"probe"`
	Share   ShareSettings  `yaml:"share"`
	Nearby  NearbySettings `yaml:"nearby"`
}

// LookupSettings configures the public IP resolution.
type LookupSettings struct {
	// PrimaryURL answers with JSON carrying an "ip" field
	PrimaryURL string `yaml:"primary_url"`
	// FallbackURL answers with JSON carrying an "origin" field
	FallbackURL string `yaml:"fallback_url"`
	// TimeoutSeconds bounds each lookup call individually
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ProbeSettings configures the snapshot builder's async probes.
type ProbeSettings struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ShareSettings configures the share server.
type ShareSettings struct {
	// Listen is the HTTP listen address, e.g. ":8790"
	Listen string `yaml:"listen"`
	// IntervalSeconds is the WebSocket push period
	IntervalSeconds int `yaml:"interval_seconds"`
}

// NearbySettings configures LAN discovery.
type NearbySettings struct {
	// Service is the mDNS service type to browse for
	Service string `yaml:"service"`
	// TimeoutSeconds bounds one browse pass
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// DefaultSettings returns a Settings with every field at its default.
func DefaultSettings() *Settings {
	return &Settings{
		Version: 1,
		Lookup: LookupSettings{
			PrimaryURL:     publicip.DefaultPrimaryURL,
			FallbackURL:    publicip.DefaultFallbackURL,
			TimeoutSeconds: DefaultLookupTimeoutSeconds,
		},
		Probe: ProbeSettings{
			TimeoutSeconds: DefaultProbeTimeoutSeconds,
		},
		Share: ShareSettings{
			Listen:          DefaultShareListen,
			IntervalSeconds: DefaultShareIntervalSeconds,
		},
		Nearby: NearbySettings{
			Service:        DefaultNearbyService,
			TimeoutSeconds: DefaultNearbyTimeoutSeconds,
		},
	}
}

// Normalize replaces unusable values (empty endpoints, non-positive
// timeouts) with their defaults. A hand-edited file with a typo degrades
// to defaults instead of breaking the tool.
func (s *Settings) Normalize() {
	if s.Lookup.PrimaryURL == "" {
		s.Lookup.PrimaryURL = publicip.DefaultPrimaryURL
	}
	if s.Lookup.FallbackURL == "" {
		s.Lookup.FallbackURL = publicip.DefaultFallbackURL
	}
	if s.Lookup.TimeoutSeconds <= 0 {
		s.Lookup.TimeoutSeconds = DefaultLookupTimeoutSeconds
	}
	if s.Probe.TimeoutSeconds <= 0 {
		s.Probe.TimeoutSeconds = DefaultProbeTimeoutSeconds
	}
	if s.Share.Listen == "" {
		s.Share.Listen = DefaultShareListen
	}
	if s.Share.IntervalSeconds <= 0 {
		s.Share.IntervalSeconds = DefaultShareIntervalSeconds
	}
	if s.Nearby.Service == "" {
		s.Nearby.Service = DefaultNearbyService
	}
	if s.Nearby.TimeoutSeconds <= 0 {
		s.Nearby.TimeoutSeconds = DefaultNearbyTimeoutSeconds
	}
}

// LookupTimeout returns the per-call lookup timeout as a duration
func (s *Settings) LookupTimeout() time.Duration {
	return time.Duration(s.Lookup.TimeoutSeconds) * time.Second
}

// ProbeTimeout returns the probe timeout as a duration
func (s *Settings) ProbeTimeout() time.Duration {
	return time.Duration(s.Probe.TimeoutSeconds) * time.Second
}

// ShareInterval returns the WebSocket push period as a duration
func (s *Settings) ShareInterval() time.Duration {
	return time.Duration(s.Share.IntervalSeconds) * time.Second
}

// NearbyTimeout returns the browse timeout as a duration
func (s *Settings) NearbyTimeout() time.Duration {
	return time.Duration(s.Nearby.TimeoutSeconds) * time.Second
}

// Resolver builds a publicip.Resolver honoring these settings
func (s *Settings) Resolver() *publicip.Resolver {
	return &publicip.Resolver{
		PrimaryURL:  s.Lookup.PrimaryURL,
		FallbackURL: s.Lookup.FallbackURL,
		Timeout:     s.LookupTimeout(),
	}
}
