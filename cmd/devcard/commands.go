package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/haldis/devcard/internal/config"
	"github.com/haldis/devcard/internal/device"
	"github.com/haldis/devcard/internal/discovery"
	"github.com/haldis/devcard/internal/logging"
	"github.com/haldis/devcard/internal/server"
	"github.com/haldis/devcard/internal/ui"
)

// Command flags
var (
	lookupTimeout int
	plainOutput   bool
	noIP          bool
	nearbyTimeout int
	nearbyService string
	shareListen   string
	shareInterval int
	shareLogLevel string
)

func init() {
	// Common flags (persistent on root)
	rootCmd.PersistentFlags().IntVar(&lookupTimeout, "timeout", config.DefaultLookupTimeoutSeconds, "Public IP lookup timeout in seconds")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Print the card as plain text instead of the interactive view")

	// Add subcommands directly to root
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(jsonCmd)
	rootCmd.AddCommand(ipCmd)
	rootCmd.AddCommand(nearbyCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(configCmd)
}

// readSettings loads the settings file. A missing or broken file degrades
// to defaults: the card must still render.
func readSettings() *config.Settings {
	settings, err := config.Load()
	if err != nil {
		logging.Warn("Falling back to default settings", zap.Error(err))
		settings = config.DefaultSettings()
	}
	return settings
}

// loadSettings layers the changed root flags on top of the settings file
func loadSettings(cmd *cobra.Command) *config.Settings {
	settings := readSettings()
	if cmd.Flags().Changed("timeout") {
		settings.Lookup.TimeoutSeconds = lookupTimeout
	}
	return settings
}

// newBuilder returns a snapshot builder tuned by the settings
func newBuilder(settings *config.Settings) *device.Builder {
	builder := device.NewBuilder()
	builder.ProbeTimeout = settings.ProbeTimeout()
	return builder
}

// runCard opens the interactive card view. When stdout is not a terminal
// (or --plain was given) it prints the plain card instead, so piping
// `devcard` behaves like `devcard text`.
func runCard(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	settings := loadSettings(cmd)

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if plainOutput || !interactive {
		return printTextCard(settings, false)
	}

	return ui.Run(newBuilder(settings), settings.Resolver())
}

// textCmd prints the card without the interactive view
var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Print the card as plain text",
	Long: `Print the device card as plain text, without the interactive view.

The output carries the same rows as the interactive card: absent device
attributes are omitted, not rendered as placeholders.`,
	Example: `  # Print the card
  devcard text

  # Skip the public IP lookup (offline, or just faster)
  devcard text --no-ip`,
	RunE: runText,
}

func init() {
	textCmd.Flags().BoolVar(&noIP, "no-ip", false, "Skip the public IP lookup")
}

func runText(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return printTextCard(loadSettings(cmd), noIP)
}

// printTextCard builds the snapshot and, unless skipped, the public IP
// concurrently (like the interactive view) and prints the plain card.
// A metadata failure degrades to an empty device section, not an abort.
func printTextCard(settings *config.Settings, skipIP bool) error {
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		snapshot *device.Snapshot
		snapErr  error
		publicIP string
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		snapshot, snapErr = newBuilder(settings).Build(ctx)
	}()
	if !skipIP {
		wg.Add(1)
		go func() {
			defer wg.Done()
			publicIP = settings.Resolver().Resolve(ctx)
		}()
	}
	wg.Wait()

	if snapErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read device details: %v\n", snapErr)
	}

	fmt.Print(ui.PlainText(ui.BuildSections(snapshot, publicIP)))
	return nil
}

// jsonCmd prints the profile document
var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Print the card as JSON",
	Long: `Print the full profile (device snapshot, public IP, host, timestamp)
as indented JSON on stdout.

This is the same document the share server serves at /api/profile. When
the hardware metadata cannot be read, "device" is null and the public IP
is still present.`,
	Example: `  # Pretty-printed profile
  devcard json

  # Feed it to jq
  devcard json | jq .device.osName`,
	RunE: runJSON,
}

func runJSON(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	settings := loadSettings(cmd)

	profile := server.BuildProfile(context.Background(), newBuilder(settings), settings.Resolver())

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// ipCmd prints just the public IP
var ipCmd = &cobra.Command{
	Use:   "ip",
	Short: "Print the public IP",
	Long: `Print the public IP address and nothing else.

The lookup asks the primary endpoint first and falls back to the secondary
exactly once. When both fail, the sentinel "Unable to fetch IP" is printed
and the exit code is still 0: not knowing the address is an answer, not an
error.`,
	Example: `  devcard ip

  # Longer timeout for slow links
  devcard ip --timeout 15`,
	RunE: runIP,
}

func runIP(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	settings := loadSettings(cmd)

	fmt.Println(settings.Resolver().Resolve(context.Background()))
	return nil
}

// nearbyCmd lists machines advertising themselves on the LAN
var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List machines advertising themselves on the LAN",
	Long: `Browse the local network for machines advertising an mDNS service
and list them with their addresses.

By default the workstation service (_workstation._tcp) is browsed; Avahi
publishes it when publish-workstation is enabled. Any other DNS-SD service
type can be given with --service.`,
	Example: `  # Browse for workstations for 5 seconds (default)
  devcard nearby

  # Quick 2-second pass
  devcard nearby --timeout 2

  # Find SSH hosts instead
  devcard nearby --service _ssh._tcp`,
	RunE: runNearby,
}

func init() {
	nearbyCmd.Flags().IntVar(&nearbyTimeout, "timeout", config.DefaultNearbyTimeoutSeconds, "Browse timeout in seconds")
	nearbyCmd.Flags().StringVar(&nearbyService, "service", config.DefaultNearbyService, "mDNS service type to browse for")
}

func runNearby(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	settings := readSettings()

	service := settings.Nearby.Service
	if cmd.Flags().Changed("service") {
		service = nearbyService
	}
	timeout := settings.NearbyTimeout()
	if cmd.Flags().Changed("timeout") {
		timeout = time.Duration(nearbyTimeout) * time.Second
	}

	fmt.Printf("Browsing for %s on the LAN (timeout: %s)...\n\n", service, timeout)

	browser := &discovery.Browser{Service: service, Timeout: timeout}
	neighbors, err := browser.Browse(context.Background())
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}

	if len(neighbors) == 0 {
		fmt.Println("No neighbors found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Other machines must advertise the service (Avahi: publish-workstation=yes)")
		fmt.Println("  - Multicast UDP must be allowed on this network segment")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Try another type with --service (e.g. _ssh._tcp)")
		return nil
	}

	fmt.Printf("Found %d neighbor(s):\n\n", len(neighbors))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tADDRESS\tSERVICE")
	for _, n := range neighbors {
		fmt.Fprintf(w, "%s\t%s\t%s\n", n.Name(), n.Addr(), n.Service)
	}
	return w.Flush()
}

// shareCmd runs the share server
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Serve the card to other machines",
	Long: `Run the share server: the current card as JSON over HTTP, plus a
WebSocket stream that pushes a fresh profile on a fixed interval.

Endpoints:
  GET /api/profile  the profile as JSON, rebuilt per request
  GET /healthz      liveness
  GET /ws           WebSocket upgrade, one profile per interval

The server runs until interrupted (Ctrl-C / SIGTERM) and shuts down
gracefully, closing connected clients.`,
	Example: `  # Share on the default address
  devcard share

  # Custom port and a faster stream
  devcard share --listen :9000 --interval 2

  # Verbose request logging
  devcard share --log-level debug`,
	RunE: runShare,
}

func init() {
	shareCmd.Flags().StringVar(&shareListen, "listen", config.DefaultShareListen, "Listen address (host:port)")
	shareCmd.Flags().IntVar(&shareInterval, "interval", config.DefaultShareIntervalSeconds, "WebSocket push interval in seconds")
	shareCmd.Flags().StringVar(&shareLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runShare(cmd *cobra.Command, args []string) error {
	settings := readSettings()

	listen := settings.Share.Listen
	if cmd.Flags().Changed("listen") {
		listen = shareListen
	}
	interval := settings.ShareInterval()
	if cmd.Flags().Changed("interval") {
		interval = time.Duration(shareInterval) * time.Second
	}

	serverConfig := &server.Config{
		Listen:   listen,
		Interval: interval,
		LogLevel: shareLogLevel,
		Builder:  newBuilder(settings),
		Resolver: settings.Resolver(),
	}

	srv, err := server.New(serverConfig)
	if err != nil {
		return fmt.Errorf("failed to create share server: %w", err)
	}

	return srv.Start()
}

// configCmd manages the settings file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
	Long: `Inspect and manage the devcard settings file.

Settings live in a versioned YAML file under the user config directory
(override with DEVCARD_CONFIG_DIR). Missing values fall back to defaults,
so a partial file is fine.`,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetCmd)
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.InitializeFromEnv(); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		settings := readSettings()

		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
		fmt.Println(path)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Reset(); err != nil {
			return fmt.Errorf("failed to reset settings: %w", err)
		}

		path, err := config.GetConfigPath()
		if err != nil {
			fmt.Println("✓ Settings reset to defaults")
			return nil
		}
		fmt.Printf("✓ Settings reset to defaults (%s)\n", path)
		return nil
	},
}
