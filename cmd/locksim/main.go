package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/lockkit/pkg/config"
	"github.com/dmitrymomot/lockkit/pkg/emergency"
	"github.com/dmitrymomot/lockkit/pkg/environment"
	"github.com/dmitrymomot/lockkit/pkg/eventlog"
	"github.com/dmitrymomot/lockkit/pkg/lock"
	"github.com/dmitrymomot/lockkit/pkg/logger"
	"github.com/dmitrymomot/lockkit/pkg/scenario"
	"github.com/dmitrymomot/lockkit/pkg/watch"
)

// Config collects the simulator settings sourced from the environment.
// Command-line flags override individual values.
type Config struct {
	LogPath      string        `env:"LOCKKIT_LOG_PATH" envDefault:"lock_events.log"`
	StoreTimeout time.Duration `env:"LOCKKIT_STORE_TIMEOUT" envDefault:"5s"`
	InitialState string        `env:"LOCKKIT_INITIAL_STATE" envDefault:"LOCKED"`
	Env          string        `env:"LOCKKIT_ENV" envDefault:"development"`
}

// Command-line flags
var (
	logPath   = flag.String("log", "", "Event log path (overrides LOCKKIT_LOG_PATH)")
	resume    = flag.Bool("resume", true, "Restore the lock state from the event log before applying anything")
	watchFeed = flag.Bool("watch", false, "Echo every recorded event to stdout as it is appended")
)

func main() {
	flag.Usage = showUsage
	flag.Parse()

	if flag.NArg() < 1 {
		showUsage()
		os.Exit(1)
	}
	command := flag.Arg(0)
	args := flag.Args()[1:]

	if command == "help" {
		showUsage()
		return
	}

	var cfg Config
	config.MustLoad(&cfg)
	if *logPath != "" {
		cfg.LogPath = *logPath
	}

	env := environment.Parse(cfg.Env)
	log := logger.New(
		logger.WithEnvironment(cfg.Env, "locksim"),
		logger.WithContextExtractors(environment.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx, cancel := signal.NotifyContext(
		environment.WithContext(context.Background(), env),
		syscall.SIGINT, syscall.SIGTERM,
	)
	defer cancel()

	store, err := eventlog.NewFileStore(cfg.LogPath, eventlog.WithTimeout(cfg.StoreTimeout))
	if err != nil {
		exitWithError("Error opening event log", err)
	}

	notifier := watch.New(store)
	defer notifier.Close()

	initial, err := lock.ParseState(cfg.InitialState)
	if err != nil {
		exitWithError(fmt.Sprintf("Invalid LOCKKIT_INITIAL_STATE %q", cfg.InitialState), err)
	}

	machine, err := lock.New(notifier, lock.WithInitialState(initial))
	if err != nil {
		exitWithError("Error building lock machine", err)
	}

	if *resume && command != "clear" {
		if _, err := machine.Restore(ctx); err != nil {
			exitWithError("Error restoring state from event log", err)
		}
	}

	echoDone := startEcho(ctx, notifier)

	switch command {
	case "run":
		handleRunCommand(ctx, args, machine, log)
	case "send":
		handleSendCommand(ctx, args, machine)
	case "emergency":
		handleEmergencyCommand(ctx, args, machine, log)
	case "state":
		handleStateCommand(ctx, machine, notifier)
	case "clear":
		handleClearCommand(ctx, notifier, cfg.LogPath)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		showUsage()
		os.Exit(1)
	}

	notifier.Close()
	if echoDone != nil {
		<-echoDone
	}
}

// startEcho subscribes to the notifier and prints every recorded event in
// log-line form. Returns nil when -watch is off.
func startEcho(ctx context.Context, notifier *watch.Notifier) <-chan struct{} {
	if !*watchFeed {
		return nil
	}

	sub := notifier.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range sub.Events() {
			fmt.Println(eventlog.FormatLine(e))
		}
	}()
	return done
}

func handleRunCommand(ctx context.Context, args []string, machine *lock.Machine, log *slog.Logger) {
	runCmd := flag.NewFlagSet("run", flag.ExitOnError)
	file := runCmd.String("file", "", "Scenario YAML file")
	demo := runCmd.Bool("demo", false, "Run the built-in demo scenario")
	pace := runCmd.Duration("pace", 0, "Delay between steps (0 replays back to back)")
	check := runCmd.Bool("check", false, "Validate the scenario without applying it")
	runCmd.Parse(args)

	var (
		sc  scenario.Scenario
		err error
	)
	switch {
	case *file != "":
		sc, err = scenario.LoadFile(*file)
		if err != nil {
			exitWithError("Error loading scenario", err)
		}
	case *demo:
		sc = scenario.Demo()
	default:
		fmt.Fprintln(os.Stderr, "Provide -file <path> or -demo for the run command")
		os.Exit(1)
	}

	opts := []scenario.Option{scenario.WithLogger(log)}
	if *pace > 0 {
		opts = append(opts, scenario.WithPace(rate.NewLimiter(rate.Every(*pace), 1)))
	}
	runner := scenario.NewRunner(machine, opts...)

	if *check {
		if err := runner.Validate(sc); err != nil {
			exitWithError(fmt.Sprintf("Scenario %q is not runnable", sc.Name), err)
		}
		fmt.Printf("Scenario %q is runnable: %d steps from state %s\n",
			sc.Name, len(sc.Steps), machine.Current())
		return
	}

	res, err := runner.Run(ctx, sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Run %s stopped after %d of %d steps: %v\n",
			res.ID, len(res.Applied), len(sc.Steps), err)
		os.Exit(1)
	}

	changed := 0
	for _, e := range res.Applied {
		if e.StateChanged() {
			changed++
		}
	}
	fmt.Printf("Run %s finished: %d steps applied (%d state changes) in %s, final state %s\n",
		res.ID, len(res.Applied), changed,
		res.FinishedAt.Sub(res.StartedAt).Round(time.Millisecond), machine.Current())
}

func handleSendCommand(ctx context.Context, args []string, machine *lock.Machine) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Event name required for send command")
		os.Exit(1)
	}

	event := lock.Event(args[0])
	reason := strings.Join(args[1:], " ")
	if reason == "" {
		reason = "Manual request via locksim"
	}

	e, err := machine.Request(ctx, event, reason)
	if err != nil {
		exitWithError("Request rejected", err)
	}

	if e.StateChanged() {
		fmt.Printf("%s (%s)\n", e.Action(), event)
	} else {
		fmt.Printf("No change: still %s (%s)\n", e.To, event)
	}
}

func handleEmergencyCommand(ctx context.Context, args []string, machine *lock.Machine, log *slog.Logger) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Emergency kind required, one of: "+kindList())
		os.Exit(1)
	}

	kind := emergency.Kind(args[0])
	source := strings.Join(args[1:], " ")
	if source == "" {
		source = "locksim cli"
	}

	manager, err := emergency.NewManager(machine, emergency.WithLogger(log))
	if err != nil {
		exitWithError("Error building emergency manager", err)
	}

	report, err := manager.Trigger(ctx, kind, source)
	if err != nil {
		exitWithError("Emergency not handled", err)
	}

	fmt.Printf("Emergency %s handled (priority %s)\n", report.Kind, report.Priority)
	fmt.Printf("  Response: %s (%s)\n", report.Response, report.Mode)
	fmt.Printf("  State:    %s → %s\n", report.Before, report.After)
	fmt.Printf("  Logged:   %s\n", eventlog.FormatLine(report.Event))
}

func handleStateCommand(ctx context.Context, machine *lock.Machine, store eventlog.Store) {
	res, err := store.ReadAll(ctx)
	if err != nil {
		exitWithError("Error reading event log", err)
	}

	fmt.Printf("State: %s\n", machine.Current())
	if last, ok := res.Last(); ok {
		fmt.Printf("Last change: %s (%s: %s)\n",
			last.Timestamp.Format(eventlog.TimeLayout), last.Action(), last.Reason)
	}
	fmt.Printf("Events logged: %d", len(res.Events))
	if res.ParseErrors > 0 {
		fmt.Printf(" (%d malformed lines skipped)", res.ParseErrors)
	}
	fmt.Println()
}

func handleClearCommand(ctx context.Context, store eventlog.Store, path string) {
	if err := store.Clear(ctx); err != nil {
		exitWithError("Error clearing event log", err)
	}
	fmt.Printf("Event log %s cleared\n", path)
}

func kindList() string {
	kinds := emergency.DefaultProtocols().Kinds()
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

// showUsage prints help information for the CLI
func showUsage() {
	fmt.Println("locksim - car door lock simulator")
	fmt.Println("\nUsage:")
	fmt.Println("  locksim [global-options] <command> [command-options]")
	fmt.Println("\nGlobal Options:")
	fmt.Println("  -log string   Event log path (default from LOCKKIT_LOG_PATH, then \"lock_events.log\")")
	fmt.Println("  -resume       Restore state from the event log first (default true)")
	fmt.Println("  -watch        Echo recorded events to stdout as they are appended")
	fmt.Println("\nCommands:")
	fmt.Println("  run [-file path | -demo] [-pace 500ms] [-check]")
	fmt.Println("      Replay a scenario step by step, stopping at the first failure")
	fmt.Println("  send <event> [reason...]")
	fmt.Println("      Apply a single event, e.g. lock, unlock, gear_shifted_to_drive")
	fmt.Println("  emergency <kind> [source...]")
	fmt.Println("      Trigger an emergency protocol, e.g. fire_alarm, security_breach")
	fmt.Println("  state")
	fmt.Println("      Print the current state and event log summary")
	fmt.Println("  clear")
	fmt.Println("      Truncate the event log")
	fmt.Println("  help")
	fmt.Println("      Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Replay the built-in demo with half a second between steps")
	fmt.Println("  locksim run -demo -pace 500ms")
	fmt.Println("  # Apply one manual unlock with a reason")
	fmt.Println("  locksim send unlock \"Owner approached with key fob\"")
	fmt.Println("  # Trigger the fire alarm protocol")
	fmt.Println("  locksim emergency fire_alarm \"smoke detector 2\"")
	fmt.Println("  # Watch events stream in while a scenario runs")
	fmt.Println("  locksim -watch run -file scenarios/daily.yaml")
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
