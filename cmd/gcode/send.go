package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/tarm/serial"

	"github.com/PrintToPeer/gcode/analyze"
	"github.com/PrintToPeer/gcode/sender"
)

func newSendCommand() *cobra.Command {
	var (
		port string
		baud int

		offsetX, offsetY, offsetZ       float64
		extrudeMul, speedMul, travelMul float64
	)

	cmd := &cobra.Command{
		Use:   "send <file>",
		Short: "Stream a G-code file to a printer over serial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Serial.Port = port
			}
			if cmd.Flags().Changed("baud") {
				cfg.Serial.Baud = baud
			}

			d, err := analyze.NewFromFile(args[0],
				analyze.WithAcceleration(cfg.Acceleration),
				analyze.WithDefaultFeedRate(cfg.FeedRate),
				analyze.WithFeedRateInjection(),
			)
			if err != nil {
				return fmt.Errorf("analyze '%s': %w", args[0], err)
			}

			for _, ln := range d.Lines() {
				ln.OffsetX = offsetX
				ln.OffsetY = offsetY
				ln.OffsetZ = offsetZ
				ln.ExtrusionMultiplier = extrudeMul
				ln.SpeedMultiplier = speedMul
				ln.TravelMultiplier = travelMul
			}

			p, err := serial.OpenPort(&serial.Config{Name: cfg.Serial.Port, Baud: cfg.Serial.Baud})
			if err != nil {
				return fmt.Errorf("open '%s': %w", cfg.Serial.Port, err)
			}
			defer p.Close()

			total := len(d.Lines())
			log.Printf("sending %d lines, estimated %s", total, analyze.FormatDuration(d.TotalDuration()))

			s := sender.New(p)
			s.Progress = func(sent, total int) {
				if sent%100 == 0 || sent == total {
					log.Printf("sent %d/%d lines", sent, total)
				}
			}
			return s.Send(d.Lines())
		},
	}

	cmd.Flags().StringVar(&port, "port", "/dev/ttyUSB0", "Serial port of the printer.")
	cmd.Flags().IntVar(&baud, "baud", 115200, "Serial baud rate.")
	cmd.Flags().Float64Var(&offsetX, "offset-x", 0, "Additive X offset applied to every move.")
	cmd.Flags().Float64Var(&offsetY, "offset-y", 0, "Additive Y offset applied to every move.")
	cmd.Flags().Float64Var(&offsetZ, "offset-z", 0, "Additive Z offset applied to every move.")
	cmd.Flags().Float64Var(&extrudeMul, "extrusion-multiplier", 0, "Scale extrusion amounts (0 disables).")
	cmd.Flags().Float64Var(&speedMul, "speed-multiplier", 0, "Scale feed rate on extrusion moves (0 disables).")
	cmd.Flags().Float64Var(&travelMul, "travel-multiplier", 0, "Scale feed rate on travel moves (0 disables).")

	return cmd
}
