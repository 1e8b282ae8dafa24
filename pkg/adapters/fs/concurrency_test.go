package fs_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pantry/pkg/core"
)

// TestConcurrency_AddsWithNoisyNeighbour runs concurrent Adds on one store while
// another actor keeps writing unrelated files into the data directory.
// Every Add must succeed with a distinct id and recipes.json must stay valid.
func TestConcurrency_AddsWithNoisyNeighbour(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	ctx := context.Background()
	repo, dir := setupRepo(t)
	require.NoError(t, repo.Initialize(ctx))
	store := core.NewStore(repo)

	noiseCtx, stopNoise := context.WithCancel(ctx)
	var noise sync.WaitGroup
	noise.Add(1)
	go func() {
		defer noise.Done()
		for {
			select {
			case <-noiseCtx.Done():
				return
			default:
				name := fmt.Sprintf("noise-%d.txt", rand.Intn(10))
				_ = os.WriteFile(filepath.Join(dir, name), []byte(time.Now().String()), 0644)
				time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
			}
		}
	}()

	const workers, perWorker = 8, 10
	ids := make(chan int, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				r, err := store.Add(ctx, core.Draft{
					Name:         fmt.Sprintf("worker %d recipe %d", w, i),
					Ingredients:  "x",
					Instructions: "y",
					Category:     "Snack",
				})
				if !assert.NoError(t, err) {
					return
				}
				ids <- r.ID
			}
		}(w)
	}
	wg.Wait()
	close(ids)
	stopNoise()
	noise.Wait()

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)

	raw, err := os.ReadFile(filepath.Join(dir, "recipes.json"))
	require.NoError(t, err)
	var recipes []core.Recipe
	require.NoError(t, json.Unmarshal(raw, &recipes))
	assert.Len(t, recipes, workers*perWorker)
	assert.Equal(t, workers*perWorker, recipes[len(recipes)-1].ID)
}
