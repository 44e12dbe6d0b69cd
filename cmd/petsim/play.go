package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/app4dog/game-play/internal/platform/tui"
	"github.com/app4dog/game-play/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [critter]",
	Short: "Play an interactive session",
	Long: `Start an interactive play session. With no critter argument, a picker
is shown first.

Controls:
  Space/G    - User gesture (unlocks audio)
  T/Enter    - Tap
  Left/Right - Swipe
  H          - Hold
  C          - Cycle critter
  N          - Scan for devices
  B          - Beep the collar
  F          - Dispense a treat
  D/Tab      - Toggle device view
  M          - Toggle music
  +/-        - SFX volume
  Q/Ctrl+C   - Quit

Examples:
  petsim play
  petsim play chirpy
  petsim play chirpy --fps 60
  petsim play --config ./my-petsim.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: play needs an interactive terminal; use 'petsim run' for headless sessions")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		// Continue without storage - the session still works
		store = nil
	}

	critterID := ""
	if len(args) == 1 {
		critterID = args[0]
		found := false
		for _, t := range cfg.Critters {
			if t.ID == critterID {
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(os.Stderr, "Error: unknown critter %q\n", critterID)
			fmt.Fprintln(os.Stderr, "Run 'petsim critters' to see available critters.")
			os.Exit(1)
		}
	} else {
		critterID, err = tui.RunPicker(cfg, store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if critterID == "" {
			return
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	runErr := tui.Run(logger, cfg, store, critterID)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
		os.Exit(1)
	}
}
