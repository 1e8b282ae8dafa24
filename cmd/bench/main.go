package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/pantry"
	"github.com/aretw0/pantry/pkg/core"
)

func main() {
	count := flag.Int("count", 1000, "Number of recipes to generate")
	adapter := flag.String("backend", pantry.AdapterFS, "storage backend (fs or sqlite)")
	keep := flag.Bool("keep", false, "Keep the benchmark data directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "pantry_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store, err := pantry.New(benchDir,
		pantry.WithLogger(logger),
		pantry.WithAdapter(*adapter),
	)
	if err != nil {
		panic(err)
	}
	defer pantry.Close(store)

	ctx := context.Background()

	// Seed with one bulk save; the per-recipe cost is measured below.
	fmt.Printf("Generating %d recipes in %s (%s)...\n", *count, benchDir, *adapter)
	startGen := time.Now()
	recipes := make([]core.Recipe, 0, *count)
	stamp := time.Now().Format(core.TimestampLayout)
	for i := 1; i <= *count; i++ {
		recipes = append(recipes, core.Recipe{
			ID:           i,
			Name:         fmt.Sprintf("Benchmark Recipe %d", i),
			Ingredients:  "flour\nsugar\neggs",
			Instructions: "mix\nbake",
			Category:     core.DefaultCategories[i%len(core.DefaultCategories)],
			CreatedAt:    stamp,
		})
	}
	if err := store.Save(ctx, recipes); err != nil {
		panic(err)
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	load := measure(func() int { return len(store.Load(ctx)) })
	search := measure(func() int { return len(store.Search(ctx, "recipe 99")) })
	add := measure(func() int {
		r, err := store.Add(ctx, core.Draft{Name: "One More", Ingredients: "x", Instructions: "y", Category: "Snack"})
		if err != nil {
			panic(err)
		}
		return r.ID
	})
	del := measure(func() int {
		if err := store.Delete(ctx, 1); err != nil {
			panic(err)
		}
		return 1
	})

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d recipes, %s):\n", *count, *adapter)
	fmt.Printf("  Load:   %v (%d items)\n", load.took, load.n)
	fmt.Printf("  Search: %v (%d matches)\n", search.took, search.n)
	fmt.Printf("  Add:    %v (id %d)\n", add.took, add.n)
	fmt.Printf("  Delete: %v\n", del.took)
	fmt.Printf("--------------------------------------------------\n")
}

type result struct {
	took time.Duration
	n    int
}

func measure(fn func() int) result {
	start := time.Now()
	n := fn()
	return result{took: time.Since(start), n: n}
}
