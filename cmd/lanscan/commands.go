package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/muurk/lanscan/internal/config"
	"github.com/muurk/lanscan/internal/logging"
	"github.com/muurk/lanscan/internal/mdns"
	"github.com/muurk/lanscan/internal/scan"
	"github.com/muurk/lanscan/internal/server"
	"github.com/muurk/lanscan/internal/tui"
)

var (
	listenFlag   string
	logLevelFlag string
)

func init() {
	serveCmd.Flags().StringVar(&listenFlag, "listen", "", "listen address (overrides config file)")
	serveCmd.Flags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	scanCmd.Flags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
}

func newBackend() (scan.Backend, error) {
	return mdns.NewDaemon()
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan session and print the discovered devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Initialize(logLevelFlag); err != nil {
			return err
		}
		defer logging.Sync()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		notifier := newPrintNotifier(cmd.OutOrStdout())
		session, err := scan.NewSession(scan.Config{
			Backend:     newBackend,
			Notifier:    notifier,
			ScanSeconds: cfg.ScanSeconds,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Scanning for %d seconds...\n\n", cfg.ScanSeconds)
		if err := session.Start(); err != nil {
			return err
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		select {
		case <-notifier.done:
		case <-sigChan:
			if err := session.Stop(); err != nil {
				return err
			}
		}

		printSummary(cmd.OutOrStdout(), session.Devices())
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run a scan session with a live terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The alt-screen UI owns the terminal; keep zap silent unless
		// the environment explicitly asks for logs.
		if err := logging.InitializeFromEnv(); err != nil {
			return err
		}
		defer logging.Sync()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		notifier := &tui.Notifier{}
		session, err := scan.NewSession(scan.Config{
			Backend:     newBackend,
			Notifier:    notifier,
			ScanSeconds: cfg.ScanSeconds,
		})
		if err != nil {
			return err
		}

		return tui.Run(session, notifier, cfg.ScanSeconds)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose scan control over HTTP and push events over WebSocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if listenFlag != "" {
			cfg.Listen = listenFlag
		}
		logLevel := logLevelFlag
		if logLevel == "" {
			logLevel = cfg.LogLevel
		}

		hub := server.NewHub()
		session, err := scan.NewSession(scan.Config{
			Backend:     newBackend,
			Notifier:    hub,
			ScanSeconds: cfg.ScanSeconds,
		})
		if err != nil {
			return err
		}

		srv, err := server.New(&server.Config{
			Listen:   cfg.Listen,
			LogLevel: logLevel,
		}, session, hub)
		if err != nil {
			return err
		}
		defer logging.Sync()

		return srv.Run()
	},
}

// printNotifier writes scan events as plain lines and signals completion so
// the scan command can wait for the countdown.
type printNotifier struct {
	w    io.Writer
	once sync.Once
	done chan struct{}
}

func newPrintNotifier(w io.Writer) *printNotifier {
	return &printNotifier{w: w, done: make(chan struct{})}
}

func (n *printNotifier) DeviceFound(device scan.Device) error {
	_, err := fmt.Fprintf(n.w, "found %s\n", device.String())
	return err
}

func (n *printNotifier) Tick(secondsLeft int) error {
	return nil
}

func (n *printNotifier) Stopped() error {
	n.once.Do(func() { close(n.done) })
	return nil
}

func printSummary(w io.Writer, devices []scan.Device) {
	if len(devices) == 0 {
		fmt.Fprintln(w, "\nNo devices found.")
		return
	}

	fmt.Fprintf(w, "\n%d device(s) found:\n\n", len(devices))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tIP\tSERVICE\tPORT\tTYPE\tFOUND AT")
	for _, device := range devices {
		for _, svc := range device.Services {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%dms\n",
				device.Name, device.IP, svc.ServiceType, svc.Port, svc.DeviceType, svc.LastSeenMs)
		}
	}
	_ = tw.Flush()
}
