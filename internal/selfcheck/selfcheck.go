// Package selfcheck runs a scored functional checklist against a recipe store.
// It exercises the whole store surface (load, save, add, get, delete,
// categories) and the backing data files, then grades the outcome.
package selfcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/pantry/internal/platform"
	"github.com/aretw0/pantry/pkg/core"
)

// Result is the outcome of a single check.
type Result struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Points   int      `json:"points"`
	Possible int      `json:"possible"`
	Details  []string `json:"details,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Report aggregates every check.
type Report struct {
	Results []Result `json:"results"`
	Earned  int      `json:"earned"`
	Max     int      `json:"max"`
}

// Percentage returns the earned share of the maximum, 0..100.
func (r Report) Percentage() float64 {
	if r.Max == 0 {
		return 0
	}
	return float64(r.Earned) / float64(r.Max) * 100
}

// Grade returns the letter grade for the report.
func (r Report) Grade() string {
	switch p := r.Percentage(); {
	case p >= 90:
		return "A"
	case p >= 80:
		return "B"
	case p >= 70:
		return "C"
	case p >= 60:
		return "D"
	default:
		return "F"
	}
}

// Passed reports whether every check passed.
func (r Report) Passed() bool {
	return r.Earned == r.Max
}

// Recommendations returns improvement hints for a report that is not perfect.
func (r Report) Recommendations() []string {
	if r.Passed() {
		return nil
	}
	p := r.Percentage()
	var recs []string
	if p < 70 {
		recs = append(recs,
			"Focus on the core store operations first.",
			"Make sure every operation returns a usable value.",
			"Exercise the store manually by adding and viewing recipes.",
		)
	}
	if r.Earned < 50 {
		recs = append(recs,
			"Priority: get Load and Save working before anything else.",
			"Check that the data files are well-formed.",
			"Ensure the data directory is writable.",
		)
	}
	if p >= 70 && p < 90 {
		recs = append(recs,
			"Focus on edge cases and error handling.",
			"Make sure deleted recipes are properly removed.",
			"Verify that recipe IDs are unique and properly generated.",
		)
	}
	return recs
}

// checkFunc returns whether the check passed and human-readable details.
type checkFunc func(ctx context.Context, s *core.Store) (bool, []string)

type check struct {
	name   string
	points int
	fn     checkFunc
}

var checks = []check{
	{"Required Files Exist", 10, checkFilesExist},
	{"Operations Available", 10, checkOperations},
	{"Load Recipes", 12, checkLoad},
	{"Save Recipes", 13, checkSave},
	{"Add New Recipe", 15, checkAdd},
	{"Get Recipe By ID", 10, checkGet},
	{"Delete Recipe", 10, checkDelete},
	{"Load Categories", 8, checkCategories},
	{"Data File Integrity", 7, checkIntegrity},
	{"Form Processing Simulation", 5, checkForm},
}

// Run executes every check in order against s.
// Checks mutate the store: run it on scratch data, see RunScratch.
func Run(ctx context.Context, s *core.Store) Report {
	var report Report
	for _, c := range checks {
		res := runCheck(ctx, s, c)
		report.Results = append(report.Results, res)
		report.Earned += res.Points
		report.Max += c.points
	}
	return report
}

func runCheck(ctx context.Context, s *core.Store, c check) (res Result) {
	res = Result{Name: c.name, Possible: c.points}
	defer func() {
		if rec := recover(); rec != nil {
			res.Passed = false
			res.Points = 0
			res.Error = fmt.Sprint(rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res
	}

	passed, details := c.fn(ctx, s)
	res.Passed = passed
	res.Details = details
	if passed {
		res.Points = c.points
	}
	return res
}

// RunScratch runs the checklist against a fresh store in a temporary data
// directory with the given adapter, so real data is never touched.
func RunScratch(ctx context.Context, adapter string, logger *slog.Logger) (Report, error) {
	dir, err := os.MkdirTemp("", "pantry-selfcheck-*")
	if err != nil {
		return Report{}, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	opts := []platform.Option{platform.WithAdapter(adapter)}
	if logger != nil {
		opts = append(opts, platform.WithLogger(logger))
	}
	store, err := platform.New(dir, opts...)
	if err != nil {
		return Report{}, err
	}

	report := Run(ctx, store)
	if err := platform.Close(store); err != nil {
		return report, errors.Join(errors.New("close scratch store"), err)
	}
	return report, nil
}
