package main

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var addr, dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("dir") {
				cfg.DataDir = dir
			}

			a := newAPI(cfg)

			log.Println("Listening on", cfg.Addr)
			return http.ListenAndServe(cfg.Addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "*")
				log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
				a.ServeHTTP(w, req)
			}))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9091", "Address to bind the server to.")
	cmd.Flags().StringVar(&dir, "dir", "./data", "Data directory for stored jobs.")

	return cmd
}
