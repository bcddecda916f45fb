package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(log.Lshortfile)

	root := &cobra.Command{
		Use:          "gcode",
		Short:        "Analyze, serve and send G-code jobs",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file.")

	root.AddCommand(newStatsCommand())
	root.AddCommand(newServeCommand())
	root.AddCommand(newSendCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return LoadConfig(path)
}
