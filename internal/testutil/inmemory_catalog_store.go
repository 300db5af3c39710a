package testutil

import (
	"context"
	"sync"

	"github.com/flexprice/quoter/internal/domain/catalog"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/types"
)

// InMemoryCatalogStore is a catalog.Repository serving raw catalogs from
// memory. It counts fetches and can be told to fail.
type InMemoryCatalogStore struct {
	mu       sync.Mutex
	catalogs map[types.ModuleType]*catalog.RawCatalog
	fetches  map[types.ModuleType]int
	err      error
}

func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{
		catalogs: make(map[types.ModuleType]*catalog.RawCatalog),
		fetches:  make(map[types.ModuleType]int),
	}
}

func (s *InMemoryCatalogStore) Fetch(_ context.Context, module types.ModuleType) (*catalog.RawCatalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetches[module]++
	if s.err != nil {
		return nil, s.err
	}
	raw, ok := s.catalogs[module]
	if !ok {
		return nil, ierr.NewErrorf("module %s not found", module).
			WithHintf("No price catalog for module %s", module).
			Mark(ierr.ErrNotFound)
	}
	return raw, nil
}

// Set replaces the catalog of module
func (s *InMemoryCatalogStore) Set(module types.ModuleType, raw *catalog.RawCatalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogs[module] = raw
}

// SetError makes every following Fetch fail with err, nil restores normal behavior
func (s *InMemoryCatalogStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Fetches returns how many times module was fetched
func (s *InMemoryCatalogStore) Fetches(module types.ModuleType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches[module]
}

func (s *InMemoryCatalogStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogs = make(map[types.ModuleType]*catalog.RawCatalog)
	s.fetches = make(map[types.ModuleType]int)
	s.err = nil
}
