package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/storage"
)

var (
	flagAllScores   bool
	flagClearScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game|bouts]",
	Short: "Show high scores, per-game stats or the brawl bout history",
	Long: `Without arguments, summarises every game that has a stored score.

With a game id, displays its top 10 high scores (--all for every score,
--clear to wipe them). "bouts" lists the latest brawl bouts and each
fighter's record instead.

Examples:
  arcade scores
  arcade scores ocean
  arcade scores space --all
  arcade scores bouts`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "List every score instead of the top 10")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the game's scores")
}

func openStoreOrExit() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runScores(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		runSummary()
		return
	}

	gameID := args[0]
	if gameID == "bouts" {
		runBouts()
		return
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	store := openStoreOrExit()
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return
	}

	var scores []storage.ScoreEntry
	if flagAllScores {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if st, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Average: %.0f  Games: %d\n", st.HighScore, st.AvgScore, st.GamesCount)
	}
}

// runSummary prints one line per game with stored scores.
func runSummary() {
	store := openStoreOrExit()
	defer store.Close()

	stats, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-10s  %5s  %6s  %7s  %s\n", "Game", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-10s  %5s  %6s  %7s  %s\n", "----", "-----", "----", "-------", "-----------")
	for _, id := range ids {
		st := stats[id]
		fmt.Printf("  %-10s  %5d  %6d  %7.0f  %s\n",
			id, st.GamesCount, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

// runBouts prints the latest bouts and the per-fighter tally.
func runBouts() {
	store := openStoreOrExit()
	defer store.Close()

	bouts, err := store.RecentBouts(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving bouts: %v\n", err)
		return
	}
	records, err := store.FighterRecords()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving fighter records: %v\n", err)
		return
	}

	fmt.Println("Barnyard Brawl - Recent Bouts")
	fmt.Println()
	if len(bouts) == 0 {
		fmt.Println("No bouts fought yet.")
		fmt.Println()
		fmt.Println("Play 'arcade play brawl' or run 'arcade simulate --save' to fight one!")
		return
	}

	fmt.Printf("  %-16s  %-8s  %-8s  %-6s  %-6s  %s\n", "Date", "P1", "P2", "Winner", "How", "Time")
	fmt.Printf("  %-16s  %-8s  %-8s  %-6s  %-6s  %s\n", "----", "--", "--", "------", "---", "----")
	for _, b := range bouts {
		fmt.Printf("  %-16s  %-8s  %-8s  %-6s  %-6s  %.1fs\n",
			b.CreatedAt.Format("2006-01-02 15:04"), b.P1, b.P2, b.Winner, b.Reason, b.Duration.Seconds())
	}

	fmt.Println()
	fmt.Printf("  %-10s  %4s  %6s  %3s\n", "Fighter", "Wins", "Losses", "KOs")
	fmt.Printf("  %-10s  %4s  %6s  %3s\n", "-------", "----", "------", "---")
	for _, r := range records {
		fmt.Printf("  %-10s  %4d  %6d  %3d\n", r.Character, r.Wins, r.Losses, r.Knockouts)
	}
}
