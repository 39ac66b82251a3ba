package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/config"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/seed"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/server"
)

var (
	serveConfigPath string
	serveSeedPath   string
	serveAddr       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the coordination HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(serveConfigPath)
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		core, err := server.NewCore(cfg)
		if err != nil {
			return err
		}
		defer core.Close()

		if serveSeedPath != "" {
			ds, err := seed.LoadFile(serveSeedPath)
			if err != nil {
				return err
			}
			if err := ds.Apply(core.Graph, core.Shelters); err != nil {
				return err
			}
			slog.Info("seed dataset loaded",
				"nodes", len(ds.Nodes), "edges", len(ds.Edges), "shelters", len(ds.Shelters))
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		router := server.NewRouter(cfg, core)
		return server.Run(ctx, cfg, router)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "path to YAML config file")
	serveCmd.Flags().StringVar(&serveSeedPath, "seed", "", "YAML dataset to load at startup")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
