package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// DefaultService is the mDNS service type browsed when none is
	// configured. "_workstation._tcp" is advertised by most desktop
	// machines running Avahi.
	DefaultService = "_workstation._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultBrowseTimeout is the default time to wait for responses
	DefaultBrowseTimeout = 5 * time.Second
)

// Browser handles mDNS neighbor discovery
type Browser struct {
	// Service is the mDNS service type to browse for
	Service string

	// Timeout is the maximum time to wait for neighbor discovery
	Timeout time.Duration
}

// NewBrowser creates a new mDNS browser with default settings
func NewBrowser() *Browser {
	return &Browser{
		Service: DefaultService,
		Timeout: DefaultBrowseTimeout,
	}
}

// Browse discovers neighbors advertising the configured service type on
// the local network. It blocks until the timeout elapses or ctx is
// canceled, then returns the neighbors seen so far sorted by hostname.
func (b *Browser) Browse(ctx context.Context) ([]Neighbor, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout())
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Channel to receive service entries
	entries := make(chan *zeroconf.ServiceEntry)
	neighbors := make([]Neighbor, 0)

	// Collect entries in a goroutine; the resolver closes the channel
	// once browsing stops
	done := make(chan struct{})
	go func() {
		defer close(done)
		for entry := range entries {
			if n := b.parseServiceEntry(entry); n != nil {
				neighbors = append(neighbors, *n)
			}
		}
	}()

	if err := resolver.Browse(ctx, b.service(), ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for timeout or cancellation, then for the collector to drain
	<-ctx.Done()
	<-done

	sortByHost(neighbors)
	return neighbors, nil
}

// parseServiceEntry converts a zeroconf service entry to a Neighbor.
// Returns nil for entries with no hostname or no address.
func (b *Browser) parseServiceEntry(entry *zeroconf.ServiceEntry) *Neighbor {
	hostname := entry.HostName
	if hostname == "" {
		return nil
	}

	// Get IP address (prefer IPv4)
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}

	// Fallback to IPv6 if no IPv4
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}

	if ip == "" {
		return nil
	}

	// Parse TXT records into key/value pairs
	txt := make(map[string]string)
	for _, record := range entry.Text {
		// TXT records are in "key=value" format
		parts := strings.SplitN(record, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else {
			// Key without value
			txt[parts[0]] = ""
		}
	}

	service := entry.Service
	if service == "" {
		service = b.service()
	}

	return &Neighbor{
		Instance:     entry.Instance,
		Host:         hostname,
		IP:           ip,
		Port:         entry.Port,
		Service:      service,
		TXT:          txt,
		DiscoveredAt: time.Now(),
	}
}

func (b *Browser) service() string {
	if b.Service == "" {
		return DefaultService
	}
	return b.Service
}

func (b *Browser) timeout() time.Duration {
	if b.Timeout <= 0 {
		return DefaultBrowseTimeout
	}
	return b.Timeout
}

// sortByHost orders neighbors by hostname, falling back to IP so that
// entries from the same host keep a stable order
func sortByHost(neighbors []Neighbor) {
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Host != neighbors[j].Host {
			return neighbors[i].Host < neighbors[j].Host
		}
		return neighbors[i].IP < neighbors[j].IP
	})
}
