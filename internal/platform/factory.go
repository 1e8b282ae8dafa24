package platform

import (
	"github.com/aretw0/pantry/pkg/core"
)

// New opens the data directory at uri and returns a ready store.
//
//	store, err := pantry.New("./data", pantry.WithAdapter("sqlite"))
//
// The uri is adapter-specific; both built-in adapters take a directory.
func New(uri string, opts ...Option) (*core.Store, error) {
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	var storeOpts []core.StoreOption
	if o.logger != nil {
		storeOpts = append(storeOpts, core.WithLogger(o.logger))
	}
	if o.clock != nil {
		storeOpts = append(storeOpts, core.WithClock(o.clock))
	}
	return core.NewStore(repo, storeOpts...), nil
}

// Closer is implemented by repositories holding resources (e.g. a database handle).
type Closer interface {
	Close() error
}

// Close releases the resources of the store's repository, if any.
func Close(store *core.Store) error {
	if c, ok := store.Repository().(Closer); ok {
		return c.Close()
	}
	return nil
}
