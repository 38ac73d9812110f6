package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/barnyard-arcade/internal/audio"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

var flagCueDir string

var cuesCmd = &cobra.Command{
	Use:   "cues",
	Short: "Inspect the sound cues",
	Long: `Lists the synthesised sound cues and which game events trigger them.

Examples:
  arcade cues
  arcade cues export --dir ./sounds`,
	Args: cobra.NoArgs,
	Run:  runCues,
}

var cuesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every sound cue as a WAV file",
	Args:  cobra.NoArgs,
	Run:   runCuesExport,
}

func init() {
	cuesExportCmd.Flags().StringVar(&flagCueDir, "dir", "cues", "Directory to write the WAV files to")
	cuesCmd.AddCommand(cuesExportCmd)
}

func runCues(_ *cobra.Command, _ []string) {
	triggers := make(map[string][]string)
	for _, k := range sim.EventKinds() {
		if c, ok := audio.For(k); ok {
			triggers[c.Name] = append(triggers[c.Name], k.String())
		}
	}

	fmt.Printf("  %-8s  %6s  %5s  %s\n", "Cue", "Length", "Notes", "Events")
	fmt.Printf("  %-8s  %6s  %5s  %s\n", "---", "------", "-----", "------")
	for _, c := range audio.Cues() {
		fmt.Printf("  %-8s  %6s  %5d  %v\n", c.Name, c.Length(), len(c.Notes), triggers[c.Name])
	}
}

func runCuesExport(_ *cobra.Command, _ []string) {
	logger := newLogger("cues")

	files, err := audio.ExportAll(flagCueDir)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	for _, f := range files {
		logger.Info("wrote cue", "file", f)
	}
}
