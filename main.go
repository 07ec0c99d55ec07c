// Command joydiag verifies, from inside the translation layer, that the
// virtual gamepad created by the mapping system is discoverable and reports
// plausible capabilities and live values. All diagnostic output is KEY=VALUE
// lines on stdout; logging goes to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/PhialsBasement/fnuipad-VR/internal/config"
	"github.com/PhialsBasement/fnuipad-VR/internal/console"
	"github.com/PhialsBasement/fnuipad-VR/internal/diag"
	"github.com/PhialsBasement/fnuipad-VR/internal/hidscan"
	"github.com/PhialsBasement/fnuipad-VR/internal/hub"
	"github.com/PhialsBasement/fnuipad-VR/internal/joyquery"
	"github.com/PhialsBasement/fnuipad-VR/internal/report"
	"github.com/PhialsBasement/fnuipad-VR/internal/server"
	"github.com/PhialsBasement/fnuipad-VR/internal/tray"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Windows: os.Interrupt is sent when Ctrl+C is pressed
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: joydiag [flags] <command> [args]

Commands:
  list                                      enumerate joystick slots and identify the test device
  sample [deviceId [sampleCount [delayMs]]] sample one device's live state (defaults 0 10 50)
  watch  [deviceId]                         stream live device state over WebSocket
  hid                                       list joystick-class HID interfaces

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	backend := flag.String("backend", "", "device backend: auto, winmm or sdl (overrides config)")
	addr := flag.String("addr", "", "listen address for watch mode (overrides config)")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *backend != "" {
		cfg.Device.Backend = *backend
	}
	if *addr != "" {
		cfg.Watch.ListenAddr = *addr
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "list":
		os.Exit(runList(cfg))
	case "sample":
		os.Exit(runSample(cfg, args[1:]))
	case "watch":
		os.Exit(runWatch(cfg, args[1:]))
	case "hid":
		os.Exit(runHID())
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}
}

// parseIntArg mirrors C atoi semantics on purpose: malformed input yields 0
// instead of an error. Wrapping harnesses rely on this.
func parseIntArg(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func matcherFromConfig(cfg *config.Config) diag.Matcher {
	return diag.Matcher{
		NamePatterns: cfg.Match.NamePatterns,
		VendorID:     cfg.Match.VendorID,
		ProductID:    cfg.Match.ProductID,
	}
}

func runList(cfg *config.Config) int {
	q, closeQuerier, err := joyquery.Open(cfg.Device.Backend)
	if err != nil {
		log.Printf("Failed to open device backend: %v", err)
		return 1
	}
	defer closeQuerier()

	bound := q.NumDevices()
	devs := diag.Enumerate(q, bound)
	match := matcherFromConfig(cfg).Select(devs)

	if err := report.WriteEnumeration(os.Stdout, bound, devs, match); err != nil {
		log.Printf("Failed to write report: %v", err)
		return 1
	}
	return 0
}

func runSample(cfg *config.Config, args []string) int {
	deviceID := 0
	samples := cfg.Sample.Count
	delayMs := cfg.Sample.DelayMs
	if len(args) > 0 {
		deviceID = parseIntArg(args[0])
	}
	if len(args) > 1 {
		samples = parseIntArg(args[1])
	}
	if len(args) > 2 {
		delayMs = parseIntArg(args[2])
	}
	delay := time.Duration(delayMs) * time.Millisecond
	if delay < 0 {
		delay = 0
	}

	q, closeQuerier, err := joyquery.Open(cfg.Device.Backend)
	if err != nil {
		log.Printf("Failed to open device backend: %v", err)
		return 1
	}
	defer closeQuerier()

	ctx, cancel := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer cancel()

	collector := &diag.Collector{
		Querier:  q,
		DeviceID: deviceID,
		Samples:  samples,
		Delay:    delay,
	}
	res, err := collector.Run(ctx)
	if errors.Is(err, diag.ErrNoDevice) {
		if werr := report.WriteNoDevice(os.Stdout, deviceID); werr != nil {
			log.Printf("Failed to write report: %v", werr)
		}
		return 1
	}
	if err != nil {
		// Cancelled mid-run: no partial report.
		log.Printf("Sampling aborted: %v", err)
		return 1
	}

	if err := report.WriteSampling(os.Stdout, deviceID, samples, delay, res); err != nil {
		log.Printf("Failed to write report: %v", err)
		return 1
	}
	if res.Stats.Errors > 0 {
		return 1
	}
	return 0
}

func runWatch(cfg *config.Config, args []string) int {
	deviceID := 0
	if len(args) > 0 {
		deviceID = parseIntArg(args[0])
	}
	pollInterval := time.Duration(cfg.Watch.PollMs) * time.Millisecond
	if pollInterval <= 0 {
		pollInterval = 16 * time.Millisecond
	}

	q, closeQuerier, err := joyquery.Open(cfg.Device.Backend)
	if err != nil {
		log.Printf("Failed to open device backend: %v", err)
		return 1
	}
	defer closeQuerier()

	// Create cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Native Ctrl+C handler; SDL with LockOSThread can swallow os.Interrupt.
	ctrlCh := make(chan struct{})
	console.SetupCtrlHandler(ctrlCh)

	watcher := diag.NewWatcher(q, deviceID, pollInterval)

	h := hub.NewHub()
	go h.Run()

	broadcaster := hub.NewBroadcaster(h, watcher.Changes())
	go broadcaster.Run()

	srv := server.New(h, broadcaster, cfg.Watch.ListenAddr)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	watcherDone := make(chan struct{})
	go func() {
		watcher.Run(ctx)
		close(watcherDone)
	}()

	log.Printf("Watching device %d, feed on ws://localhost%s/ws", deviceID, cfg.Watch.ListenAddr)

	// Channel for tray-triggered shutdown
	shutdownRequested := make(chan struct{})

	// Initialize system tray on Windows only
	if runtime.GOOS == "windows" {
		go func() {
			t := tray.New(cfg.Watch.ListenAddr, func() {
				close(shutdownRequested)
			})
			t.Run(tray.GetIcon())
		}()
	} else {
		log.Println("Press Ctrl+C to exit")
	}

	// Wait for shutdown signal, tray request, or server error
	exitCode := 0
	select {
	case <-sigCh:
		log.Println("Shutting down...")
	case <-ctrlCh:
		log.Println("Shutting down...")
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
	case err := <-serverErrCh:
		log.Printf("HTTP server error: %v", err)
		exitCode = 1
	}
	cancel()

	// Wait for the watcher to finish before tearing the feed down
	<-watcherDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Watch feed stopped")
	return exitCode
}

func runHID() int {
	infos, err := hidscan.Scan()
	if err != nil {
		log.Printf("HID scan failed: %v", err)
		return 1
	}
	if err := hidscan.Write(os.Stdout, infos); err != nil {
		log.Printf("Failed to write report: %v", err)
		return 1
	}
	return 0
}
