package device

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

// defaultRoutePath is the kernel routing table on Linux. Platforms
// without it fall back to interface-flag inference.
const defaultRoutePath = "/proc/net/route"

// SysNetwork reads local network state from the kernel.
//
// The link type comes from the name of the interface carrying the
// default route (wl* -> WIFI, en*/eth* -> ETHERNET, ...); connectivity is
// the existence of that route. The local IP is the first global IPv4 on
// an active interface, the same walk fleet agents use.
type SysNetwork struct {
	// RoutePath overrides the routing table location, for tests
	RoutePath string
}

// Status implements NetworkProvider
func (p *SysNetwork) Status(ctx context.Context) (NetworkStatus, error) {
	if err := ctx.Err(); err != nil {
		return NetworkStatus{}, err
	}

	iface, err := p.defaultRouteInterface()
	if err == nil {
		if iface == "" {
			// Routing table readable but no default route: definitively offline
			return NetworkStatus{Connected: Some(false)}, nil
		}
		return NetworkStatus{
			Type:      Some(InterfaceType(iface)),
			Connected: Some(true),
		}, nil
	}

	// No routing table on this platform; infer connectivity from
	// interface flags and leave the type absent.
	up, err := hasActiveInterface()
	if err != nil {
		return NetworkStatus{}, err
	}
	return NetworkStatus{Connected: Some(up)}, nil
}

// LocalIP implements NetworkProvider. It returns the first non-loopback
// IPv4 address on an active interface.
func (p *SysNetwork) LocalIP(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("failed to list interfaces: %w", err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip != nil && ip.To4() != nil && !ip.IsLoopback() {
				return ip.String(), nil
			}
		}
	}

	return "", errors.New("no active IPv4 interface")
}

// defaultRouteInterface parses the kernel routing table and returns the
// interface holding the default route, or "" when no default route
// exists. The error path means the table itself is unreadable.
func (p *SysNetwork) defaultRouteInterface() (string, error) {
	path := p.RoutePath
	if path == "" {
		path = defaultRoutePath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read routing table: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines[1:] { // skip header
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		// Destination 00000000 marks the default route
		if fields[1] == "00000000" {
			return fields[0], nil
		}
	}

	return "", nil
}

// InterfaceType classifies an interface name into a coarse link type.
// Kernel naming conventions make the prefix a reliable signal: wl* for
// wireless, en*/eth* for wired, ww*/ppp* for modems.
func InterfaceType(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "wl"):
		return "WIFI"
	case strings.HasPrefix(lower, "en"), strings.HasPrefix(lower, "eth"):
		return "ETHERNET"
	case strings.HasPrefix(lower, "ww"), strings.HasPrefix(lower, "ppp"), strings.HasPrefix(lower, "rmnet"):
		return "CELLULAR"
	case strings.HasPrefix(lower, "tun"), strings.HasPrefix(lower, "tap"), strings.HasPrefix(lower, "wg"):
		return "VPN"
	case strings.HasPrefix(lower, "br"), strings.HasPrefix(lower, "docker"), strings.HasPrefix(lower, "virbr"), strings.HasPrefix(lower, "veth"):
		return "BRIDGE"
	default:
		return Unknown
	}
}

// hasActiveInterface reports whether any non-loopback interface is up
// with at least one address.
func hasActiveInterface() (bool, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false, fmt.Errorf("failed to list interfaces: %w", err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		if addrs, err := iface.Addrs(); err == nil && len(addrs) > 0 {
			return true, nil
		}
	}
	return false, nil
}
