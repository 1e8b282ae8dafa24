package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/pantry/internal/platform"
	"github.com/aretw0/pantry/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recipe manager web UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := settings.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		srv, err := web.NewServer(web.Config{
			Store:   store,
			Logger:  slog.Default(),
			Adapter: settings.Backend,
		})
		if err != nil {
			return err
		}
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", platform.DefaultAddr, "listen address (default from config)")
}
