// arcade is a terminal arcade of farmyard games: a two-fighter brawl, an
// ocean and a space adventure, and a sarcastic 8-ball.
//
// Usage:
//
//	arcade list                  - List available games
//	arcade play <game>           - Play a game
//	arcade menu                  - Start menu to pick games interactively
//	arcade serve                 - Start SSH server for remote play
//	arcade scores <game|bouts>   - Show high scores or brawl history
//	arcade simulate              - Run a CPU vs CPU bout headless
//	arcade cues export           - Write the sound cues as WAV files
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/barnyard-arcade/internal/games/brawl"
	_ "github.com/vovakirdan/barnyard-arcade/internal/games/eightball"
	_ "github.com/vovakirdan/barnyard-arcade/internal/games/ocean"
	_ "github.com/vovakirdan/barnyard-arcade/internal/games/space"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Barnyard Arcade - farmyard brawls and adventures in your terminal",
	Long: `Barnyard Arcade is a terminal gaming platform with a farmyard fighting
game, two dodge-and-collect adventures and a sarcastic 8-ball.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores and bout history
  simulate  - Run a headless CPU vs CPU bout
  cues      - Export the sound cues

Examples:
  arcade list
  arcade play brawl --p1 mooana --p2 porkchop
  arcade menu
  arcade serve --ssh :2222
  arcade simulate --seed 7 --watch :8080`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(cuesCmd)
}
