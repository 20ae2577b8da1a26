package storage

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry hands out one Store per backing path. Callers that open the same
// path share a connection and see each other's writes. Create one at startup
// and pass it to whatever needs a store.
type Registry struct {
	opts Options

	mu     sync.Mutex
	stores map[string]*Store
	group  singleflight.Group
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:   opts,
		stores: make(map[string]*Store),
	}
}

// Open returns the store for path, opening it on first use. Concurrent
// callers for the same path wait on a single initialization. A failed
// initialization is not remembered, so a later call tries again.
func (r *Registry) Open(ctx context.Context, path string) (*Store, error) {
	key := registryKey(path)

	if s, ok := r.lookup(key); ok {
		return s, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		if s, ok := r.lookup(key); ok {
			return s, nil
		}
		s, err := open(ctx, path, r.opts)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.stores[key] = s
		r.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}

// CloseAll closes every store and forgets it.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	stores := r.stores
	r.stores = make(map[string]*Store)
	r.mu.Unlock()

	var errs []error
	for _, s := range stores {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) lookup(key string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[key]
	return s, ok
}

// registryKey makes "./data/x.db" and "data/x.db" share a store.
func registryKey(path string) string {
	if path == MemoryPath || path == "" {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
