// Package pantry is the composition root of the recipe manager.
//
// It connects the recipe domain (pkg/core) with the storage adapters
// (pkg/adapters/fs and pkg/adapters/sqlite) following a hexagonal layout.
//
// The store keeps the whole collection in a single JSON file (recipes.json)
// next to a category list (categories.json). Every operation reads the full
// collection, transforms it in memory and, for mutations, rewrites it
// atomically.
//
// Usage:
//
//	store, err := pantry.New("./data", pantry.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer pantry.Close(store)
//
//	recipe, err := store.Add(ctx, pantry.Draft{
//		Name:         "Pasta",
//		Ingredients:  "noodles\nsauce",
//		Instructions: "boil\nmix",
//		Category:     "Main Course",
//	})
package pantry
