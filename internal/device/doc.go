// Package device assembles a snapshot of the machine the tool runs on.
//
// A Snapshot is a flat record of hardware identity (model, brand,
// manufacturer, model ID), operating system, display metrics, battery
// level, local network state, and memory/performance classification. It is
// built once per load and never mutated afterwards.
//
// # Presence and absence
//
// Fields the platform may genuinely lack (model, brand, local IP, year
// class, total memory, ...) are Optional values rather than pointers or
// empty strings. Renderers use Present to decide whether a row exists at
// all, which keeps "no data" distinct from "the data is the literal word
// Unknown".
//
// # Failure model
//
// Build fails - returning a nil snapshot - only when the metadata provider
// fails; that is the single fatal path. Every other acquisition degrades
// the affected field and nothing else:
//
//   - battery errors or missing batteries render as "Unknown"
//   - an unreadable network state renders as "Unknown" / not connected
//   - a missing local IP simply omits the row
//
// # Providers
//
// The Builder reads through four small interfaces (MetadataProvider,
// DisplayProvider, NetworkProvider, BatteryProvider) so tests can
// substitute fakes. The real implementations are:
//
//   - HostMetadata: gopsutil host/mem/cpu plus the DMI tree under
//     /sys/class/dmi/id for vendor strings and chassis type
//   - TermDisplay: terminal size via golang.org/x/term, font scale from
//     the DEVCARD_FONT_SCALE environment variable
//   - SysNetwork: default-route interface from /proc/net/route, link-type
//     classification by interface name, local IP from the interface walk
//   - SysBattery: charge fraction via the distatus/battery library
//
// The asynchronous probes (network status, local IP, battery) run
// concurrently under a bounded context and are joined before Build
// returns; a probe overrunning the timeout degrades its field exactly
// like a failed one.
package device
