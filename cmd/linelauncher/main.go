// Package main is the entry point for the line launcher CLI.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jsee/linelauncher/internal/clock"
	"github.com/jsee/linelauncher/internal/config"
	"github.com/jsee/linelauncher/internal/launcher"
	"github.com/jsee/linelauncher/internal/line"
	"github.com/jsee/linelauncher/internal/logging"
	"github.com/jsee/linelauncher/internal/midibus"
	"github.com/jsee/linelauncher/internal/parser"
	"github.com/jsee/linelauncher/internal/scheduler"
	"github.com/jsee/linelauncher/internal/statusapi"
	"github.com/jsee/linelauncher/internal/transport"
	"github.com/jsee/linelauncher/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	logLevel   string
	logFile    string
	statusPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "linelauncher",
	Short: "A beat-locked MIDI line launcher",
	Long: `linelauncher listens to an external MIDI clock and fires melodic
lines in time, chosen against a chord progression and re-planned on the
fly for harmonic continuity.

Examples:
  linelauncher run --config launcher.yaml
  linelauncher listports
  linelauncher validate-config launcher.yaml
  linelauncher tui --config launcher.yaml`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the line launcher core against configured MIDI ports",
	RunE:  runLauncher,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the launcher with a live terminal monitor",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the launcher with the HTTP status API",
	RunE:  runServe,
}

var listPortsCmd = &cobra.Command{
	Use:   "listports",
	Short: "List available MIDI input and output ports",
	RunE:  runListPorts,
}

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config <path>",
	Short: "Load and validate a YAML config file without starting the core",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "linelauncher.log", "rotating log file path")

	serveCmd.Flags().IntVarP(&statusPort, "port", "p", 8090, "status API port")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listPortsCmd)
	rootCmd.AddCommand(validateConfigCmd)
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// launcherDeps bundles everything wiring needs to start the dispatcher and
// its two scheduler goroutines, stopping all of it when ctx is cancelled.
type launcherDeps struct {
	dispatcher   *launcher.Dispatcher
	noteOnSched  *scheduler.Scheduler
	noteOffSched *scheduler.Scheduler
	out          *transport.Out
	in           *transport.In
	cancelSlider context.CancelFunc
}

func buildLauncher(ctx context.Context, cfg config.Config, log *zap.Logger) (*launcherDeps, Inputs, error) {
	progression, err := resolveProgression(cfg)
	if err != nil {
		return nil, Inputs{}, err
	}

	src := line.NewSource(parser.ParseLine)
	lines, err := src.All()
	if err != nil {
		return nil, Inputs{}, fmt.Errorf("loading built-in line corpus: %w", err)
	}
	planner := line.NewPlanner(lines, log)

	var portName string
	if cfg.Midi.Port != nil {
		portName = *cfg.Midi.Port
	}
	out, err := transport.OpenOut(portName)
	if err != nil {
		return nil, Inputs{}, err
	}

	bus := midibus.NewBus(log)
	in, err := transport.OpenIn(portName, bus)
	if err != nil {
		out.Close()
		return nil, Inputs{}, err
	}

	tracker, beats := clock.NewTracker(16, log)
	clockReader := bus.Subscribe()
	go pumpClock(ctx, clockReader, tracker)

	sliderCtx, cancelSlider := context.WithCancel(ctx)
	durationUpdates := subscribeSlider(sliderCtx, bus, cfg.Midi.DurationRatioSlider)
	aheadOrBehind := subscribeSlider(sliderCtx, bus, cfg.Midi.AheadOrBehindSlider)
	randomizeUpdates := subscribeSlider(sliderCtx, bus, cfg.Midi.RandomizeSlider)

	sender := launcher.NewMidiMessageSender(out, log)
	noteOnSched := scheduler.New(16, log)
	noteOffSched := scheduler.New(16, log)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	dispatcher := launcher.New(planner, progression, sender, noteOnSched, noteOffSched, rng, log)

	deps := &launcherDeps{
		dispatcher:   dispatcher,
		noteOnSched:  noteOnSched,
		noteOffSched: noteOffSched,
		out:          out,
		in:           in,
		cancelSlider: cancelSlider,
	}
	inputs := Inputs{
		Beats:            beats,
		DurationUpdates:  durationUpdates,
		AheadOrBehind:    aheadOrBehind,
		RandomizeUpdates: randomizeUpdates,
		NoteOnFires:      noteOnSched.Fire(),
		NoteOffFires:     noteOffSched.Fire(),
	}
	return deps, inputs, nil
}

// Inputs is a type alias for launcher.Inputs, so this file can name it
// without the package qualifier.
type Inputs = launcher.Inputs

func resolveProgression(cfg config.Config) (*line.Progression, error) {
	if cfg.Progression == "" {
		return line.DefaultProgression(), nil
	}
	return parser.ParseProgression(cfg.Progression)
}

func subscribeSlider(ctx context.Context, bus *midibus.Bus, binding *config.SliderBinding) <-chan float64 {
	out := make(chan float64, 1)
	if binding == nil {
		return out
	}
	channel := binding.Channel - 1 // config is 1-indexed; gomidi is 0-indexed
	listener := midibus.NewSliderListener(channel, binding.ControlChange)
	go listener.Listen(ctx, bus, out)
	return out
}

// pumpClock forwards TimingClock messages from the bus into tracker.Tick.
func pumpClock(ctx context.Context, in <-chan midibus.Message, tracker *clock.Tracker) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			if msg.Kind == midibus.KindTimingClock {
				tracker.Tick()
			}
		}
	}
}

func (d *launcherDeps) close() {
	d.cancelSlider()
	if d.in != nil {
		d.in.Close()
	}
	if d.out != nil {
		d.out.Close()
	}
}

func runLauncher(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(logLevel, logFile)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, inputs, err := buildLauncher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	go deps.noteOnSched.Run(ctx)
	go deps.noteOffSched.Run(ctx)

	deps.dispatcher.Run(ctx, inputs)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(logLevel, logFile)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, inputs, err := buildLauncher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	go deps.noteOnSched.Run(ctx)
	go deps.noteOffSched.Run(ctx)
	go deps.dispatcher.Run(ctx, inputs)

	return tui.Run(deps.dispatcher.State())
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(logLevel, logFile)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, inputs, err := buildLauncher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	go deps.noteOnSched.Run(ctx)
	go deps.noteOffSched.Run(ctx)
	go deps.dispatcher.Run(ctx, inputs)

	server := statusapi.New(deps.dispatcher.State())
	return server.Run(statusPort)
}

func runListPorts(cmd *cobra.Command, args []string) error {
	fmt.Println("MIDI input ports:")
	for _, name := range transport.ListInPorts() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("MIDI output ports:")
	for _, name := range transport.ListOutPorts() {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func runValidateConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s is valid\n", path)
	fmt.Printf("  progression: %q\n", cfg.Progression)
	if cfg.Midi.Port != nil {
		fmt.Printf("  midi port: %q\n", *cfg.Midi.Port)
	}
	return nil
}
