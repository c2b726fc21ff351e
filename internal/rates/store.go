// Package rates owns the in-memory mirror of the remote exchange-rate
// collection, the current-rate resolver, and the locally persisted fallback
// rate. Mirror discipline matches the product catalog: remote confirmation
// first, local mutation second.
package rates

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
// element existed locally.
var ErrDrift = errors.New("rates: no matching local rate after remote success")

// State tracks the collection lifecycle.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
	Failed
)

// Remote is the subset of the store client the rates mirror needs.
type Remote interface {
	ListRates(ctx context.Context) ([]model.ExchangeRate, error)
	CreateRate(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error)
	UpdateRate(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error)
	DeleteRate(ctx context.Context, id model.ID) error
}

// Store mirrors the remote exchange-rate collection.
type Store struct {
	logger *zap.Logger
	remote Remote

	mu    sync.RWMutex
	rates []model.ExchangeRate
	state State
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
func (s *Store) Snapshot() []model.ExchangeRate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ExchangeRate, len(s.rates))
	copy(out, s.rates)
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

	rs, err := s.remote.ListRates(ctx)
	if err != nil {
		s.mu.Lock()
		if s.state == Loading {
			s.state = Failed
		}
		s.mu.Unlock()
		metrics.IncReconcileFailure("dolar", "load")
		s.logger.Warn("rates.load_failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.rates = rs
	s.state = Ready
	s.mu.Unlock()
	s.logger.Info("rates.loaded", zap.Int("count", len(rs)))
	return nil
}

// Seed replaces the collection with a single locally persisted rate. Used
// when the initial remote load fails but a fallback record exists; the
// collection is the degenerate one-element case of the rate history.
func (s *Store) Seed(r model.ExchangeRate) {
	s.mu.Lock()
	s.rates = []model.ExchangeRate{r}
	s.state = Ready
	s.mu.Unlock()
	s.logger.Info("rates.fallback_seeded",
		zap.Float64("value", r.Value),
		zap.Time("date", r.Date))
}

// Create sends the rate to the remote store; the store assigns its id. On
// success the canonical representation is appended to the mirror.
func (s *Store) Create(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error) {
	created, err := s.remote.CreateRate(ctx, r)
	if err != nil {
		metrics.IncReconcileFailure("dolar", "create")
		s.logger.Warn("rates.create_failed", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.rates = append(s.rates, *created)
	s.mu.Unlock()
	s.logger.Info("rates.created", zap.String("id", created.ID.String()))
	return created, nil
}

// Update replaces the rate matched by id, identity preserved. A remote
// success with no local match leaves the mirror unchanged and returns
// ErrDrift.
func (s *Store) Update(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error) {
	updated, err := s.remote.UpdateRate(ctx, r)
	if err != nil {
		metrics.IncReconcileFailure("dolar", "update")
		s.logger.Warn("rates.update_failed",
			zap.String("id", r.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	replaced := false
	for i := range s.rates {
		if s.rates[i].ID == updated.ID {
			s.rates[i] = *updated
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if !replaced {
		metrics.IncDrift("dolar", "update")
		s.logger.Warn("rates.update_drift", zap.String("id", updated.ID.String()))
		return updated, ErrDrift
	}
	s.logger.Info("rates.updated", zap.String("id", updated.ID.String()))
	return updated, nil
}

// Delete removes the rate matched by id after remote confirmation. Remote 404
// is the "already gone" case and is not fatal.
func (s *Store) Delete(ctx context.Context, id model.ID) error {
	if err := s.remote.DeleteRate(ctx, id); err != nil {
		if !remote.IsNotFound(err) {
			metrics.IncReconcileFailure("dolar", "delete")
			s.logger.Warn("rates.delete_failed",
				zap.String("id", id.String()),
				zap.Error(err))
			return err
		}
		s.logger.Debug("rates.delete_already_gone", zap.String("id", id.String()))
	}

	s.mu.Lock()
	removed := false
	for i := range s.rates {
		if s.rates[i].ID == id {
			s.rates = append(s.rates[:i], s.rates[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if !removed {
		metrics.IncDrift("dolar", "delete")
		s.logger.Debug("rates.delete_no_local_match", zap.String("id", id.String()))
		return nil
	}
	s.logger.Info("rates.deleted", zap.String("id", id.String()))
	return nil
}
