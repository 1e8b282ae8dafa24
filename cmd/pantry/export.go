package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/pantry/pkg/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection as CSV, text, JSON or YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		recipes := store.Load(cmd.Context())

		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := export.Write(w, format, recipes); err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if exportOutput != "" && exportOutput != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Exported %d recipe(s) to %s\n", renderPass(iconPass), len(recipes), exportOutput)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	names := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", string(export.CSV), "output format ("+strings.Join(names, ", ")+")")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}
