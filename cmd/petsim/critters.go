package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var crittersCmd = &cobra.Command{
	Use:   "critters",
	Short: "List all available critters",
	Long:  `Shows every critter template in the configuration with its stats.`,
	Run:   runCritters,
}

func runCritters(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if len(cfg.Critters) == 0 {
		fmt.Println("No critters configured.")
		return
	}

	fmt.Println("Available critters:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, t := range cfg.Critters {
		if len(t.ID) > maxIDLen {
			maxIDLen = len(t.ID)
		}
	}

	fmt.Printf("  %-*s  %-12s  %-8s  %-6s  %s\n", maxIDLen, "ID", "Name", "Species", "Level", "Stats")
	fmt.Printf("  %-*s  %-12s  %-8s  %-6s  %s\n", maxIDLen, "--", "----", "-------", "-----", "-----")

	for _, t := range cfg.Critters {
		stats := fmt.Sprintf("spd %.1f  play %.1f  obed %.1f  nrg %.1f",
			t.Stats.Speed, t.Stats.Playfulness, t.Stats.Obedience, t.Stats.Energy)
		fmt.Printf("  %-*s  %-12s  %-8s  %-6d  %s\n",
			maxIDLen, t.ID, t.Name, t.Species, t.UnlockLevel, stats)
	}

	fmt.Println()
	fmt.Println("Run 'petsim play <id>' to start a session.")
}
