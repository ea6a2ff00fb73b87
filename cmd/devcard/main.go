// Devcard shows a card of the machine it runs on.
//
// It renders an interactive device card (hardware identity, OS, display,
// battery, network, public IP) in the terminal, and can also print the
// card as plain text or JSON, list other machines advertising themselves
// on the LAN, and serve the card over HTTP/WebSocket.
//
// Usage:
//
//	devcard [command] [flags]
//
// Running without arguments opens the interactive card view (plain text
// when stdout is not a terminal). See 'devcard --help' for commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haldis/devcard/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "devcard",
	Short: "Device Card Viewer",
	Long: `A terminal viewer for the card of the machine it runs on.

Shows hardware identity, OS, display, battery and network details next to
the public IP, with search, clipboard copy and reload. The same card can
be printed as plain text or JSON, shared over HTTP/WebSocket, and nearby
machines on the LAN can be listed.

If no command is specified, the interactive card view opens.`,
	Version: version.Version,
	RunE:    runCard,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("devcard %s (commit: %s)\n", version.Version, version.Commit)
	},
}
