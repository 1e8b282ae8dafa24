package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/pantry"
	"github.com/aretw0/pantry/internal/platform"
	"github.com/aretw0/pantry/pkg/core"
)

var (
	cfgFile  string
	dataDir  string
	backend  string
	readOnly bool
	verbose  bool
)

// settings is the effective configuration: flag > env > pantry.yaml > default.
// It is resolved once per invocation in PersistentPreRunE.
var settings platform.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pantry",
	Short: "A recipe collection kept in plain JSON files",
	Long: `Pantry manages a personal recipe collection.
Recipes live in a single JSON file (or a SQLite database) that you can read,
edit and version like any other file.`,
	Version:       strings.TrimSpace(pantry.Version),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)

		return resolveSettings(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: pantry.yaml in the project root)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", platform.DefaultDataDir, "directory holding recipes.json and categories.json")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", platform.AdapterFS, "storage backend (fs or sqlite)")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "never write to the data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// resolveSettings merges the config file and environment with explicitly set flags.
func resolveSettings(cmd *cobra.Command) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	searchDir := wd
	if root, err := platform.FindRoot(wd); err == nil {
		searchDir = root
	}

	cfg, err := platform.LoadConfig(cfgFile, searchDir)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("backend") {
		switch backend {
		case platform.AdapterFS, platform.AdapterSQLite:
			cfg.Backend = backend
		default:
			return fmt.Errorf("unknown backend %q (want %s or %s)", backend, platform.AdapterFS, platform.AdapterSQLite)
		}
	}
	if flags.Changed("read-only") {
		cfg.ReadOnly = readOnly
	}

	settings = cfg
	slog.Debug("resolved settings", "data_dir", cfg.DataDir, "backend", cfg.Backend, "config", cfg.File)
	return nil
}

// storeOptions returns the options every command opens the store with.
func storeOptions() []pantry.Option {
	return append(settings.Options(), pantry.WithLogger(slog.Default()))
}

// openStore opens the configured data directory. Callers must defer closeStore.
func openStore() (*core.Store, error) {
	store, err := pantry.New(settings.DataDir, storeOptions()...)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", settings.DataDir, err)
	}
	return store, nil
}

func closeStore(store *core.Store) {
	if err := pantry.Close(store); err != nil {
		slog.Warn("failed to close store", "error", err)
	}
}

// reportError prints err as "Error: ..." with validation problems on their own lines.
func reportError(w io.Writer, err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(w, renderFail("Error: invalid recipe"))
		for _, p := range verr.Problems {
			fmt.Fprintf(w, "  %s %s\n", renderFail(iconFail), p)
		}
		return
	}
	fmt.Fprintln(w, renderFail("Error: "+err.Error()))
}
