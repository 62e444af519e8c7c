package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/ytscribe/internal/app"
	"github.com/patrickprogramme/ytscribe/internal/jobs"
	"github.com/patrickprogramme/ytscribe/internal/server"
	"github.com/patrickprogramme/ytscribe/internal/ytdlp"
)

func newServeCommand(configFlag *string) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Démarre le daemon HTTP d'extraction à jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			if listenAddr != "" {
				cfg.Server.ListenAddr = listenAddr
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			if err := ytdlp.New(cfg.YtDlp.ResolvedPath).CheckBinary(); err != nil {
				return err
			}

			store, err := jobs.Open(cfg.Server.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(store, app.FromConfig(cfg), logger)
			return srv.ListenAndServe(ctx, cfg.Server.ListenAddr)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "adresse d'écoute (défaut : config)")

	return cmd
}
