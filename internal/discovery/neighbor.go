package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Neighbor represents a service instance discovered on the local network.
type Neighbor struct {
	// Instance is the advertised service instance name (e.g., "office-nas")
	Instance string

	// Host is the mDNS hostname (e.g., "office-nas.local.")
	Host string

	// IP is the neighbor's address, preferring IPv4 when both are advertised
	IP string

	// Port is the advertised service port
	Port int

	// Service is the mDNS service type the neighbor was found under
	Service string

	// TXT contains the entry's TXT record data as key/value pairs
	TXT map[string]string

	// DiscoveredAt is when the neighbor was discovered
	DiscoveredAt time.Time
}

// Name returns the best human-readable identifier for the neighbor:
// the advertised instance name when present, otherwise the hostname
// with the mDNS suffix trimmed.
func (n *Neighbor) Name() string {
	if n.Instance != "" {
		return n.Instance
	}
	host := strings.TrimSuffix(n.Host, ".")
	return strings.TrimSuffix(host, ".local")
}

// String returns a human-readable string representation of the neighbor
func (n *Neighbor) String() string {
	return fmt.Sprintf("%s (%s) at %s", n.Name(), n.Host, n.Addr())
}

// Addr returns the neighbor's address as "host:port", safe for IPv6
func (n *Neighbor) Addr() string {
	return net.JoinHostPort(n.IP, strconv.Itoa(n.Port))
}

// GetTXT retrieves a TXT record value by key, or returns empty string if not found
func (n *Neighbor) GetTXT(key string) string {
	if n.TXT == nil {
		return ""
	}
	return n.TXT[key]
}
