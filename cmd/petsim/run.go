package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/app4dog/game-play/internal/bridge"
	"github.com/app4dog/game-play/internal/protocol"
	"github.com/app4dog/game-play/internal/sim"
	"github.com/app4dog/game-play/internal/storage"
)

var (
	flagRunTicks   int
	flagRunCritter string
	flagRunSave    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless scripted session",
	Long: `Run a scripted session without a terminal UI: load a critter, apply a
fixed interaction pattern, exercise the virtual device fleet, and print a
summary. Useful for smoke-testing configuration changes.

Examples:
  petsim run
  petsim run --ticks 600 --critter chirpy
  petsim run --save`,
	Run: runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagRunTicks, "ticks", 300, "How many ticks to simulate")
	runCmd.Flags().StringVar(&flagRunCritter, "critter", "chirpy", "Critter to load")
	runCmd.Flags().BoolVar(&flagRunSave, "save", false, "Save the session to the database")
}

func runHeadless(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.InfoLevel, Prefix: "petsim"})
	b := bridge.New(logger)
	engine := sim.New(logger, b, sim.Config{
		Sounds:         cfg.Sounds,
		Templates:      cfg.Critters,
		Backoff:        cfg.Backoff.Tuning(),
		CameraThrottle: cfg.Engine.CameraThrottle(),
	})

	// Bring up the virtual fleet.
	engine.Bluetooth.Handle(protocol.EnableVirtualNetwork{})
	for _, dev := range cfg.Fleet {
		engine.Bluetooth.Handle(protocol.RegisterVirtualDevice{Device: dev.Device()})
	}

	// The script plays the host: gesture first, then the critter, then a
	// steady stream of interactions and device traffic.
	b.SubmitHostEvent(protocol.UserGesture{RequestID: "script-gesture", Timestamp: 0})
	b.SubmitLoadCritter(flagRunCritter)

	now := time.Now()
	tick := time.Second / time.Duration(max(cfg.Engine.TickRate, 1))
	for i := 0; i < flagRunTicks; i++ {
		switch {
		case i == 1:
			engine.Bluetooth.Handle(protocol.StartScan{})
		case i == 3:
			for _, dev := range cfg.Fleet {
				engine.Bluetooth.Handle(protocol.Connect{DeviceID: protocol.DeviceID(dev.ID)})
			}
		case i > 4 && i%30 == 5:
			engine.Bluetooth.Handle(protocol.SendCommand{
				DeviceID: protocol.DeviceID(cfg.Fleet[0].ID), Command: "beep",
			})
		case i%3 == 0:
			b.SubmitInteraction(bridge.InteractionTap, 0.5, 0.5, 0, 0)
		case i%7 == 0:
			b.SubmitInteraction(bridge.InteractionSwipe, 0.5, 0.5, 1, 0)
		case i%11 == 0:
			b.SubmitInteraction(bridge.InteractionHold, 0.5, 0.5, 0, 0)
		}

		engine.Step(now.Add(time.Duration(i) * tick))

		// Answer any audio the engine asked for, the way a host would.
		for _, frame := range b.PollAudioRequests() {
			req, decErr := protocol.DecodeAudioRequest(frame)
			if decErr != nil {
				continue
			}
			if play, ok := req.(protocol.AudioPlay); ok {
				b.SubmitAudioResponse(protocol.AudioPlayCompleted{
					RequestID: play.RequestID, Success: true, DurationSeconds: 0.8,
				})
			}
		}
	}

	stats := engine.Stats()
	fmt.Println("Session summary")
	fmt.Println()
	fmt.Printf("  critter       %s\n", flagRunCritter)
	fmt.Printf("  ticks         %d\n", stats.Ticks)
	fmt.Printf("  score         %d\n", stats.Score)
	fmt.Printf("  level         %d\n", stats.Level)
	fmt.Printf("  interactions  %d\n", stats.Interactions)
	fmt.Printf("  sounds        %d\n", stats.SoundsPlayed)
	if c := engine.Current(); c != nil {
		fmt.Printf("  happiness     %.2f\n", c.Happiness)
		fmt.Printf("  energy        %.2f\n", c.Energy)
	}

	cmds := engine.Bluetooth.Simulator().CommandLog()
	fmt.Printf("  device cmds   %d\n", len(cmds))
	for _, e := range cmds {
		fmt.Printf("    %s  %s → %s\n", e.DeviceID, e.Command, e.Response)
	}

	if flagRunSave {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", openErr)
			os.Exit(1)
		}
		defer store.Close()
		if _, saveErr := store.SaveSession(flagRunCritter, stats); saveErr != nil {
			fmt.Fprintf(os.Stderr, "Error saving session: %v\n", saveErr)
			os.Exit(1)
		}
		if archiveErr := store.ArchiveCommands(cmds); archiveErr != nil {
			fmt.Fprintf(os.Stderr, "Error archiving commands: %v\n", archiveErr)
			os.Exit(1)
		}
		fmt.Println()
		fmt.Println("Session saved.")
	}
}
