package core_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/pantry/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable.
type MockRepository struct {
	recipes    []core.Recipe
	categories []string
	loadErr    error
	saveErr    error
	saves      int
}

func NewMockRepository(recipes ...core.Recipe) *MockRepository {
	return &MockRepository{recipes: recipes}
}

func (m *MockRepository) LoadRecipes(ctx context.Context) ([]core.Recipe, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]core.Recipe(nil), m.recipes...), nil
}

func (m *MockRepository) SaveRecipes(ctx context.Context, recipes []core.Recipe) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.recipes = append([]core.Recipe(nil), recipes...)
	return nil
}

func (m *MockRepository) LoadCategories(ctx context.Context) ([]string, error) {
	if m.categories == nil {
		return nil, core.ErrNoCategoryFile
	}
	return m.categories, nil
}

func (m *MockRepository) Initialize(ctx context.Context) error { return nil }

func fixedClock() func() time.Time {
	t := time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local)
	return func() time.Time { return t }
}

func newStore(repo core.Repository) *core.Store {
	return core.NewStore(repo, core.WithClock(fixedClock()))
}

func TestStore_AddOnEmptyStore(t *testing.T) {
	repo := NewMockRepository()
	store := newStore(repo)
	ctx := context.Background()

	r, err := store.Add(ctx, core.Draft{
		Name:         "Pasta",
		Ingredients:  "noodles\nsauce",
		Instructions: "boil\nmix",
		Category:     "Main Course",
	})
	require.NoError(t, err)

	recipes := store.Load(ctx)
	require.Len(t, recipes, 1)
	assert.Equal(t, 1, recipes[0].ID)
	assert.Equal(t, r, recipes[0])
	assert.Equal(t, "Main Course", recipes[0].Category)
	assert.Equal(t, "2024-01-02 15:04:05", recipes[0].CreatedAt)
	assert.Empty(t, recipes[0].UpdatedAt)
}

func TestStore_AddAssignsMaxPlusOne(t *testing.T) {
	repo := NewMockRepository(
		core.Recipe{ID: 3, Name: "c"},
		core.Recipe{ID: 7, Name: "g"},
		core.Recipe{ID: 5, Name: "e"},
	)
	store := newStore(repo)
	ctx := context.Background()

	r, err := store.Add(ctx, core.Draft{Name: "new"})
	require.NoError(t, err)
	assert.Equal(t, 8, r.ID)

	seen := map[int]bool{}
	for _, rec := range store.Load(ctx) {
		assert.False(t, seen[rec.ID], "duplicate id %d", rec.ID)
		seen[rec.ID] = true
	}
	assert.Len(t, seen, 4)
}

func TestStore_IDsAreNotReusedAfterDelete(t *testing.T) {
	store := newStore(NewMockRepository())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Add(ctx, core.Draft{Name: fmt.Sprintf("r%d", i)})
		require.NoError(t, err)
	}
	require.NoError(t, store.Delete(ctx, 2))

	r, err := store.Add(ctx, core.Draft{Name: "after"})
	require.NoError(t, err)
	assert.Equal(t, 4, r.ID)
}

func TestStore_Get(t *testing.T) {
	store := newStore(NewMockRepository(
		core.Recipe{ID: 1, Name: "Soup"},
		core.Recipe{ID: 2, Name: "Cake"},
	))
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		r, err := store.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Cake", r.Name)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := store.Get(ctx, 99999)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestStore_Update(t *testing.T) {
	repo := NewMockRepository(core.Recipe{ID: 1, Name: "Soup", Category: "Appetizer", CreatedAt: "2023-12-31 10:00:00"})
	store := newStore(repo)
	ctx := context.Background()

	updated, err := store.Update(ctx, 1, core.Draft{
		Name:         "Tomato Soup",
		Ingredients:  "tomatoes",
		Instructions: "simmer",
		Category:     "Main Course",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02 15:04:05", updated.UpdatedAt)

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", got.Name)
	assert.Equal(t, "tomatoes", got.Ingredients)
	assert.Equal(t, "simmer", got.Instructions)
	assert.Equal(t, "Main Course", got.Category)
	assert.Equal(t, "2023-12-31 10:00:00", got.CreatedAt, "created_at must be preserved")
	assert.NotEmpty(t, got.UpdatedAt)

	_, err = store.Update(ctx, 42, core.Draft{Name: "x"})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 1, repo.saves, "a missing id must not rewrite the file")
}

func TestStore_Delete(t *testing.T) {
	repo := NewMockRepository(
		core.Recipe{ID: 1, Name: "a"},
		core.Recipe{ID: 2, Name: "b"},
		core.Recipe{ID: 3, Name: "c"},
	)
	store := newStore(repo)
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, 2))

	recipes := store.Load(ctx)
	require.Len(t, recipes, 2)
	assert.Equal(t, 1, recipes[0].ID)
	assert.Equal(t, 3, recipes[1].ID)

	_, err := store.Get(ctx, 2)
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = store.Delete(ctx, 2)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_LoadDegradesToEmpty(t *testing.T) {
	repo := NewMockRepository()
	repo.loadErr = errors.New("invalid json")
	store := newStore(repo)

	recipes := store.Load(context.Background())
	assert.NotNil(t, recipes)
	assert.Empty(t, recipes)
}

func TestStore_SaveFailureIsDistinguishable(t *testing.T) {
	repo := NewMockRepository()
	repo.saveErr = errors.New("disk full")
	store := newStore(repo)
	ctx := context.Background()

	_, err := store.Add(ctx, core.Draft{Name: "x"})
	assert.ErrorIs(t, err, core.ErrPersist)
	assert.NotErrorIs(t, err, core.ErrNotFound)

	repo.saveErr = core.ErrReadOnly
	err = store.Save(ctx, nil)
	assert.ErrorIs(t, err, core.ErrReadOnly)
	assert.NotErrorIs(t, err, core.ErrPersist)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	repo := NewMockRepository(
		core.Recipe{ID: 2, Name: "b", CreatedAt: "2024-01-01 00:00:00"},
		core.Recipe{ID: 1, Name: "a", CreatedAt: "2024-01-01 00:00:00", UpdatedAt: "2024-01-02 00:00:00"},
	)
	store := newStore(repo)
	ctx := context.Background()

	before := store.Load(ctx)
	require.NoError(t, store.Save(ctx, before))
	assert.Equal(t, before, store.Load(ctx))
}

func TestStore_Categories(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults When Missing", func(t *testing.T) {
		store := newStore(NewMockRepository())
		assert.Equal(t, core.DefaultCategories, store.Categories(ctx))
	})

	t.Run("Stored List Wins", func(t *testing.T) {
		repo := NewMockRepository()
		repo.categories = []string{"Breakfast", " Dessert ", "", "Breakfast"}
		store := newStore(repo)
		assert.Equal(t, []string{"Breakfast", "Dessert"}, store.Categories(ctx))
	})

	t.Run("Returned Slice Is A Copy", func(t *testing.T) {
		store := newStore(NewMockRepository())
		cats := store.Categories(ctx)
		cats[0] = "mutated"
		assert.Equal(t, "Appetizer", core.DefaultCategories[0])
	})
}

func TestStore_Search(t *testing.T) {
	store := newStore(NewMockRepository(
		core.Recipe{ID: 1, Name: "Chocolate Chip Cookies", Ingredients: "flour\nsugar", Category: "Dessert"},
		core.Recipe{ID: 2, Name: "Caesar Salad", Ingredients: "romaine\ncroutons", Category: "Appetizer"},
		core.Recipe{ID: 3, Name: "Lemonade", Ingredients: "lemons\nSUGAR", Category: "Beverage"},
	))
	ctx := context.Background()

	ids := func(rs []core.Recipe) []int {
		out := []int{}
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	tests := []struct {
		term string
		want []int
	}{
		{"Cookie", []int{1}},
		{"cookie", []int{1}},
		{"sugar", []int{1, 3}},
		{"appetizer", []int{2}},
		{"", []int{1, 2, 3}},
		{"   ", []int{1, 2, 3}},
		{"pizza", []int{}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("term=%q", tt.term), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(store.Search(ctx, tt.term)))
		})
	}
}

func TestStore_ByCategory(t *testing.T) {
	store := newStore(NewMockRepository(
		core.Recipe{ID: 1, Category: "Dessert"},
		core.Recipe{ID: 2, Category: "dessert"},
		core.Recipe{ID: 3, Category: "Dessert"},
	))

	got := store.ByCategory(context.Background(), "Dessert")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestStore_Stats(t *testing.T) {
	store := newStore(NewMockRepository(
		core.Recipe{ID: 1, Category: "Dessert", CreatedAt: "2024-01-01 10:00:00"},
		core.Recipe{ID: 2, Category: "Snack", CreatedAt: "2024-03-01 10:00:00"},
		core.Recipe{ID: 3, Category: "Dessert", CreatedAt: "2024-02-01 10:00:00"},
	))

	st := store.Stats(context.Background())
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Categories)
	assert.Equal(t, map[string]int{"Dessert": 2, "Snack": 1}, st.ByCategory)
	require.Len(t, st.Recent, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{st.Recent[0].ID, st.Recent[1].ID, st.Recent[2].ID})
}

func TestStore_WatchUnsupported(t *testing.T) {
	store := newStore(NewMockRepository())
	_, err := store.Watch(context.Background())
	assert.ErrorIs(t, err, core.ErrNotWatchable)
}

func TestStore_ConcurrentAddsKeepIDsUnique(t *testing.T) {
	store := newStore(NewMockRepository())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Add(ctx, core.Draft{Name: fmt.Sprintf("r%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	recipes := store.Load(ctx)
	require.Len(t, recipes, 20)
	seen := map[int]bool{}
	for _, r := range recipes {
		seen[r.ID] = true
	}
	assert.Len(t, seen, 20)
}

func TestStore_State(t *testing.T) {
	store := newStore(NewMockRepository())
	_, err := store.Add(context.Background(), core.Draft{Name: "x"})
	require.NoError(t, err)

	state, ok := store.State().(core.StoreState)
	require.True(t, ok)
	assert.Equal(t, "repository", state.RepositoryType)
	assert.False(t, state.Watchable)
	assert.Equal(t, 1, state.Writes)
	assert.NotNil(t, state.LastWrite)
	assert.Equal(t, "store", store.ComponentType())
}
