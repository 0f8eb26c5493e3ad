package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrymomot/lockkit/pkg/analytics"
	"github.com/dmitrymomot/lockkit/pkg/config"
	"github.com/dmitrymomot/lockkit/pkg/eventlog"
)

// Config collects the reader-side settings sourced from the environment.
// Health thresholds and the timeline window live in analytics.Config and
// are loaded separately.
type Config struct {
	LogPath      string        `env:"LOCKKIT_LOG_PATH" envDefault:"lock_events.log"`
	StoreTimeout time.Duration `env:"LOCKKIT_STORE_TIMEOUT" envDefault:"5s"`
}

// Command-line flags
var (
	logPath    = flag.String("log", "", "Event log path (overrides LOCKKIT_LOG_PATH)")
	jsonOut    = flag.Bool("json", false, "Emit the snapshot as indented JSON instead of the text report")
	healthOnly = flag.Bool("health", false, "Print only the health classification; exit 1 on ERROR")
	window     = flag.Duration("window", 0, "Timeline window override (overrides LOCKKIT_TIMELINE_WINDOW)")
)

func main() {
	flag.Usage = showUsage
	flag.Parse()

	var cfg Config
	config.MustLoad(&cfg)
	if *logPath != "" {
		cfg.LogPath = *logPath
	}

	var statsCfg analytics.Config
	config.MustLoad(&statsCfg)
	if *window > 0 {
		statsCfg.TimelineWindow = *window
	}

	// Stats are read-only: a missing log is reported, never created.
	if _, err := os.Stat(cfg.LogPath); err != nil {
		if *healthOnly {
			fmt.Println(analytics.HealthError)
			os.Exit(1)
		}
		exitWithError("No event log at "+cfg.LogPath, err)
	}

	store, err := eventlog.NewFileStore(cfg.LogPath, eventlog.WithTimeout(cfg.StoreTimeout))
	if err != nil {
		exitWithError("Error opening event log", err)
	}
	engine := analytics.New(store, analytics.WithConfig(statsCfg))

	ctx := context.Background()

	if *healthOnly {
		health := engine.Health(ctx)
		fmt.Println(health)
		if health == analytics.HealthError {
			os.Exit(1)
		}
		return
	}

	snap, err := engine.Snapshot(ctx)
	if err != nil {
		exitWithError("Error reading event log", err)
	}

	if *jsonOut {
		out, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			exitWithError("Error encoding snapshot", err)
		}
		fmt.Println(string(out))
		return
	}

	writeReport(os.Stdout, snap)
}

// showUsage prints help information for the CLI
func showUsage() {
	fmt.Println("lockstats - lock event log statistics")
	fmt.Println("\nUsage:")
	fmt.Println("  lockstats [options]")
	fmt.Println("\nOptions:")
	fmt.Println("  -log string      Event log path (default from LOCKKIT_LOG_PATH, then \"lock_events.log\")")
	fmt.Println("  -json            Emit the snapshot as indented JSON")
	fmt.Println("  -health          Print only the health classification; exit 1 on ERROR")
	fmt.Println("  -window duration Timeline window override, e.g. 24h")
	fmt.Println("\nEnvironment:")
	fmt.Println("  LOCKKIT_LOG_PATH                      Event log path")
	fmt.Println("  LOCKKIT_HEALTH_MAX_PARSE_ERROR_RATIO  Malformed line ratio before WARNING (default 0.05)")
	fmt.Println("  LOCKKIT_HEALTH_STALE_AFTER            Log age before WARNING (default 24h)")
	fmt.Println("  LOCKKIT_TIMELINE_WINDOW               Timeline window (default 168h)")
}

// Prints error message and exits
func exitWithError(message string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", message, err)
	} else {
		fmt.Fprintf(os.Stderr, "%s\n", message)
	}
	os.Exit(1)
}
