package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/app4dog/game-play/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats [critter]",
	Short: "Show session history",
	Long: `Display session statistics. With a critter argument, shows that
critter's top sessions; without one, shows aggregates for every critter.

Examples:
  petsim stats
  petsim stats chirpy`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 1 {
		showCritterStats(store, args[0])
		return
	}
	showAllStats(store)
}

func showCritterStats(store *storage.Store, critterID string) {
	sessions, err := store.TopSessions(critterID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Top sessions - %s\n", critterID)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'petsim play %s' to record the first one!\n", critterID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-13s  %s\n", "Rank", "Score", "Level", "Interactions", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-13s  %s\n", "----", "-----", "-----", "------------", "----")

	for i, entry := range sessions {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-13d  %s\n",
			i+1, entry.Score, entry.Level, entry.Interactions, dateStr)
	}

	fmt.Println()
	if high, err := store.HighScore(critterID); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
}

func showAllStats(store *storage.Store) {
	all, err := store.GetAllCritterStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Println("Critter statistics")
	fmt.Println()
	fmt.Printf("  %-12s  %-9s  %-6s  %-8s  %s\n", "Critter", "Sessions", "Best", "Avg", "Last played")
	fmt.Printf("  %-12s  %-9s  %-6s  %-8s  %s\n", "-------", "--------", "----", "---", "-----------")

	for id, s := range all {
		fmt.Printf("  %-12s  %-9d  %-6d  %-8.1f  %s\n",
			id, s.Sessions, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
