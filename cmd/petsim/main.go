// petsim is an interactive pet simulation that runs in the terminal.
//
// Usage:
//
//	petsim critters          - List available critters
//	petsim play [critter]    - Play an interactive session
//	petsim run               - Run a headless scripted session
//	petsim serve             - Start SSH server for remote play
//	petsim stats [critter]   - Show session history
//	petsim devices           - Show the virtual device fleet
//
// Global flags:
//
//	--fps <rate>      - Override tick rate
//	--config <path>   - Path to custom config YAML
//	--db <path>       - Set database path (default: ~/.petsim/sessions.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/app4dog/game-play/internal/config"
)

var (
	// Global flags
	flagFPS    int
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "petsim",
	Short: "Pet simulation - Play with virtual critters in your terminal",
	Long: `petsim is a terminal pet simulation. Load a critter, interact with it,
and drive a fleet of virtual Bluetooth pet devices.

Available commands:
  critters - Show all available critters
  play     - Play an interactive session
  run      - Run a headless scripted session
  serve    - Start SSH server for remote play
  stats    - View session history
  devices  - Show the virtual device fleet

Examples:
  petsim critters
  petsim play chirpy
  petsim run --ticks 300
  petsim serve --ssh :2222
  petsim stats chirpy`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.petsim/sessions.db", "Path to sessions database")

	// Add subcommands
	rootCmd.AddCommand(crittersCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(devicesCmd)
}

// loadConfig loads the simulation config honoring the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Engine.TickRate = flagFPS
	}
	return cfg, nil
}
