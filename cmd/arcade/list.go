package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/barnyard-arcade/internal/games/brawl"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/scripting"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games and fighters",
	Long: `Shows the games registered in the arcade, the brawl roster and the
built-in Lua fighter policies usable with 'arcade simulate --script'.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	if cfg, err := brawl.LoadConfig(); err == nil {
		fmt.Println()
		fmt.Println("Brawl fighters:")
		fmt.Println()
		fmt.Printf("  %-9s  %-8s  %6s  %7s  %5s  %s\n", "ID", "Name", "Damage", "Special", "Speed", "Special move")
		for _, c := range cfg.Roster {
			fmt.Printf("  %-9s  %-8s  %6.0f  %7.0f  %5d  %s\n",
				c.ID, c.Name, c.Damage, c.SpecialDamage, c.Speed, c.Special)
		}
	}

	fmt.Println()
	fmt.Printf("Lua policies: %v\n", scripting.Builtins())
	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game, or 'arcade menu' to pick one.")
}
