package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PrintToPeer/gcode/analyze"
)

func newStatsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Print job statistics for a G-code file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			d, err := analyze.NewFromFile(args[0],
				analyze.WithAcceleration(cfg.Acceleration),
				analyze.WithDefaultFeedRate(cfg.FeedRate),
			)
			if err != nil {
				return fmt.Errorf("analyze '%s': %w", args[0], err)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(d.Stats())
			}
			printStats(d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit statistics as JSON.")

	return cmd
}

func printStats(d *analyze.Document) {
	fmt.Printf("Lines:    %d commands, %d comments\n", len(d.Lines()), len(d.Comments()))
	fmt.Printf("Bounds:   X %g..%g  Y %g..%g  Z %g..%g\n",
		d.XMin(), d.XMax(), d.YMin(), d.YMax(), d.ZMin(), d.ZMax())
	fmt.Printf("Size:     %.2f x %.2f x %.2f mm\n", d.Width(), d.Depth(), d.Height())
	fmt.Printf("Travel:   X %.1f  Y %.1f  Z %.1f mm\n", d.XTravel(), d.YTravel(), d.ZTravel())
	for _, t := range d.FilamentUsed() {
		fmt.Printf("Tool %d:   %.1f mm filament\n", t.Tool, t.Length)
	}
	fmt.Printf("Layers:   %d\n", d.LayerCount())
	fmt.Printf("Duration: %s\n", analyze.FormatDuration(d.TotalDuration()))
}
