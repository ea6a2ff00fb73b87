// Package discovery provides mDNS-based discovery of neighboring
// machines on the local network.
//
// This package implements multicast DNS (mDNS) service browsing to find
// other hosts advertising a given service type. By default it browses
// "_workstation._tcp", which Avahi-enabled desktops advertise out of
// the box, but any service type can be configured.
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Broadcasts an mDNS query for the configured service type
//  2. Listens for service advertisements until the timeout elapses
//  3. Parses each response into a Neighbor (hostname, address, port, TXT)
//  4. Returns the collected neighbors sorted by hostname
//
// # Usage Example
//
//	browser := discovery.NewBrowser()
//	browser.Timeout = 5 * time.Second
//
//	neighbors, err := browser.Browse(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, n := range neighbors {
//	    fmt.Printf("Found: %s at %s\n", n.Name(), n.Addr())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Neighbors must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple browse sessions can
// run simultaneously without interference.
package discovery
