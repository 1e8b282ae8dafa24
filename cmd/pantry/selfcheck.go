package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/pantry/internal/selfcheck"
)

var selfcheckJSON bool

var selfcheckCmd = &cobra.Command{
	Use:   "selfcheck",
	Short: "Run the functional checklist against a scratch store",
	Long: `Selfcheck exercises every store operation on a temporary data directory
with the configured backend and prints a scorecard. Your data is not touched.
The command fails unless every check passes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := selfcheck.RunScratch(cmd.Context(), settings.Backend, slog.Default())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if selfcheckJSON {
			if err := printJSON(out, report); err != nil {
				return err
			}
		} else {
			printReport(cmd, report)
		}

		if !report.Passed() {
			return fmt.Errorf("self-check scored %d/%d", report.Earned, report.Max)
		}
		return nil
	},
}

func printReport(cmd *cobra.Command, report selfcheck.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderHeading(fmt.Sprintf("Recipe store self-check (%s)", settings.Backend)))
	fmt.Fprintln(out)

	for _, r := range report.Results {
		icon := renderPass(iconPass)
		if !r.Passed {
			icon = renderFail(iconFail)
		}
		fmt.Fprintf(out, "%s %-28s %2d/%-2d\n", icon, r.Name, r.Points, r.Possible)
		for _, d := range r.Details {
			fmt.Fprintf(out, "   %s%s\n", treeLast, renderMuted(d))
		}
		if r.Error != "" {
			fmt.Fprintf(out, "   %s%s\n", treeLast, renderFail("Error: "+r.Error))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Score: %d/%d (%.1f%%)  Grade: %s\n", report.Earned, report.Max, report.Percentage(), report.Grade())

	for _, rec := range report.Recommendations() {
		fmt.Fprintf(out, "%s %s\n", renderWarn(iconWarn), rec)
	}
}

func init() {
	rootCmd.AddCommand(selfcheckCmd)
	selfcheckCmd.Flags().BoolVar(&selfcheckJSON, "json", false, "Output in JSON format")
}
