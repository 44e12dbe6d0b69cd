package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/app4dog/game-play/internal/storage"
)

var flagDevicesLog bool

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Show the virtual device fleet",
	Long: `Shows the configured virtual devices and their command handlers.
With --log, also shows archived commands from past sessions.

Examples:
  petsim devices
  petsim devices --log`,
	Run: runDevices,
}

func init() {
	devicesCmd.Flags().BoolVar(&flagDevicesLog, "log", false, "Show archived device commands")
}

func runDevices(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if len(cfg.Fleet) == 0 {
		fmt.Println("No virtual devices configured.")
		return
	}

	fmt.Println("Virtual device fleet:")
	fmt.Println()

	for _, dev := range cfg.Fleet {
		fmt.Printf("  %s  (%s, %s, rssi %d)\n", dev.ID, dev.Name, dev.Type, dev.RSSI)
		for _, h := range dev.Handlers {
			fmt.Printf("    %-12q -> %-14q  %dms\n", h.Pattern, h.Response, h.DelayMS)
		}
		fmt.Println("    (anything else) -> \"OK\"")
		fmt.Println()
	}

	if !flagDevicesLog {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Println("Archived commands:")
	fmt.Println()
	for _, dev := range cfg.Fleet {
		entries, err := store.DeviceCommands(dev.ID, 10)
		if err != nil || len(entries) == 0 {
			continue
		}
		for _, e := range entries {
			fmt.Printf("  %s  %s → %s  (%s)\n",
				e.DeviceID, e.Command, e.Response, e.CreatedAt.Format("2006-01-02 15:04"))
		}
	}
}
