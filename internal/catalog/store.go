// Package catalog owns the in-memory mirror of the remote product collection.
// The mirror changes only after the remote store confirms an operation; a
// failed call leaves it untouched so the user can retry the same action.
package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Jhonaiker2309/supermarket-administration/internal/metrics"
	"github.com/Jhonaiker2309/supermarket-administration/internal/remote"
	"github.com/Jhonaiker2309/supermarket-administration/pkg/model"
)

// ErrDrift reports that an update or delete succeeded remotely but no matching
// element existed locally. The mirror and the store have diverged; the caller
// decides whether to trigger a reload.
var ErrDrift = errors.New("catalog: no matching local product after remote success")

// State tracks the collection lifecycle.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
	// Failed means the initial fetch failed and the collection is empty.
	// It is not retried automatically; Load may be called again.
	Failed
)

// Remote is the subset of the store client the catalog needs.
type Remote interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, ref model.ProductRef) error
}

// Store mirrors the remote product collection. All mutation goes through its
// operations; consumers only ever see copies.
type Store struct {
	logger *zap.Logger
	remote Remote

	mu       sync.RWMutex
	products []model.Product
	state    State
}

func NewStore(logger *zap.Logger, remote Remote) *Store {
	return &Store{logger: logger, remote: remote}
}

// State returns the collection lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns a copy of the current collection.
func (s *Store) Snapshot() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Load fetches the full collection and replaces the mirror atomically. On
// failure the previous collection is left untouched.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state == Uninitialized || s.state == Failed {
		s.state = Loading
	}
	s.mu.Unlock()

	products, err := s.remote.ListProducts(ctx)
	if err != nil {
		s.mu.Lock()
		if s.state == Loading {
			s.state = Failed
		}
		s.mu.Unlock()
		metrics.IncReconcileFailure("product", "load")
		s.logger.Warn("catalog.load_failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.products = products
	s.state = Ready
	s.mu.Unlock()
	s.logger.Info("catalog.loaded", zap.Int("count", len(products)))
	return nil
}

// Create sends the product to the remote store and, on success, appends the
// store's canonical representation to the mirror.
func (s *Store) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	created, err := s.remote.CreateProduct(ctx, p)
	if err != nil {
		metrics.IncReconcileFailure("product", "create")
		s.logger.Warn("catalog.create_failed",
			zap.String("key", p.Ref().String()),
			zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.products = append(s.products, *created)
	s.mu.Unlock()
	s.logger.Info("catalog.created", zap.String("key", created.Ref().String()))
	return created, nil
}

// Update replaces the product addressed by its ref. On success the matching
// local element is replaced wholesale, never mutated in place. If no local
// element matches after the remote call succeeded, the mirror is unchanged and
// ErrDrift is returned.
func (s *Store) Update(ctx context.Context, p model.Product) (*model.Product, error) {
	updated, err := s.remote.UpdateProduct(ctx, p)
	if err != nil {
		metrics.IncReconcileFailure("product", "update")
		s.logger.Warn("catalog.update_failed",
			zap.String("key", p.Ref().String()),
			zap.Error(err))
		return nil, err
	}

	ref := p.Ref()
	s.mu.Lock()
	replaced := false
	for i := range s.products {
		if ref.Matches(s.products[i]) {
			s.products[i] = *updated
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if !replaced {
		metrics.IncDrift("product", "update")
		s.logger.Warn("catalog.update_drift", zap.String("key", ref.String()))
		return updated, ErrDrift
	}
	s.logger.Info("catalog.updated", zap.String("key", ref.String()))
	return updated, nil
}

// Delete removes the product addressed by ref after remote confirmation. A
// remote 404 is the "already gone" case (e.g. a concurrent delete landed
// first): the local element, if any, is still removed and no error is
// returned. Deleting a ref with no local match leaves the mirror unchanged.
func (s *Store) Delete(ctx context.Context, ref model.ProductRef) error {
	if err := s.remote.DeleteProduct(ctx, ref); err != nil {
		if !remote.IsNotFound(err) {
			metrics.IncReconcileFailure("product", "delete")
			s.logger.Warn("catalog.delete_failed",
				zap.String("key", ref.String()),
				zap.Error(err))
			return err
		}
		s.logger.Debug("catalog.delete_already_gone", zap.String("key", ref.String()))
	}

	s.mu.Lock()
	removed := false
	for i := range s.products {
		if ref.Matches(s.products[i]) {
			s.products = append(s.products[:i], s.products[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if !removed {
		metrics.IncDrift("product", "delete")
		s.logger.Debug("catalog.delete_no_local_match", zap.String("key", ref.String()))
		return nil
	}
	s.logger.Info("catalog.deleted", zap.String("key", ref.String()))
	return nil
}
