// Lanscan discovers networked media devices (Bluesound, Volumio, Spotify
// Connect, Qobuz Connect) by browsing a fixed set of mDNS service categories.
//
// It can run a one-shot scan in the terminal, a live watch UI, or a small
// HTTP/WebSocket server that host front-ends drive with start/stop commands
// and listen to for discovery events.
//
// Usage:
//
//	lanscan scan            run one scan session and print the results
//	lanscan watch           run a scan session with a live terminal UI
//	lanscan serve [flags]   expose scan control over HTTP/WebSocket
//
// See 'lanscan --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/lanscan/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanscan",
	Short: "LAN media-device discovery",
	Long: `Discovers networked media devices by browsing mDNS service categories.

Each scan session browses the Bluesound, Volumio/HTTP, Spotify Connect and
Qobuz Connect categories concurrently, merges repeated advertisements into a
single record per device address, and stops automatically after 30 seconds
unless stopped earlier.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lanscan %s\n", version.Full())
	},
}
