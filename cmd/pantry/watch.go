package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	pantrylifecycle "github.com/aretw0/pantry/pkg/adapters/lifecycle"
	"github.com/aretw0/pantry/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes of the data files as they happen",
	Long: `Watch reports every change of the data files, including edits made by
other programs, until interrupted. Only the fs backend can be watched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		src := pantrylifecycle.NewSource(store)
		if err := src.Start(ctx); err != nil {
			if errors.Is(err, core.ErrNotWatchable) {
				return fmt.Errorf("the %s backend cannot be watched", settings.Backend)
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", settings.DataDir)
		for e := range src.Events() {
			fmt.Fprintf(out, "%s %s\n", renderMuted(time.Now().Format(time.TimeOnly)), e.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
