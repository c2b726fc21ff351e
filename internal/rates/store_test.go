package rates

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jhonaiker2309/supermarket-administration/internal/remote"
	"github.com/Jhonaiker2309/supermarket-administration/pkg/model"
)

type mockRemote struct {
	listFn   func(ctx context.Context) ([]model.ExchangeRate, error)
	createFn func(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error)
	updateFn func(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error)
	deleteFn func(ctx context.Context, id model.ID) error
}

func (m *mockRemote) ListRates(ctx context.Context) ([]model.ExchangeRate, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockRemote) CreateRate(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error) {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockRemote) UpdateRate(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, r)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockRemote) DeleteRate(ctx context.Context, id model.ID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return fmt.Errorf("not implemented")
}

func sampleRate(id string, value float64) model.ExchangeRate {
	return model.ExchangeRate{
		ID:    model.ID(id),
		Value: value,
		Date:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func readyStore(t *testing.T, rs []model.ExchangeRate, m *mockRemote) *Store {
	t.Helper()
	m.listFn = func(context.Context) ([]model.ExchangeRate, error) { return rs, nil }
	s := NewStore(zap.NewNop(), m)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestLoad_FailureRetainsLastKnown(t *testing.T) {
	m := &mockRemote{}
	s := readyStore(t, []model.ExchangeRate{sampleRate("1", 36.5)}, m)

	m.listFn = func(context.Context) ([]model.ExchangeRate, error) {
		return nil, &remote.NetworkError{Err: fmt.Errorf("refused")}
	}
	require.Error(t, s.Load(context.Background()))
	assert.Equal(t, Ready, s.State())
	assert.Len(t, s.Snapshot(), 1)
}

func TestSeed_OneElementCollection(t *testing.T) {
	s := NewStore(zap.NewNop(), &mockRemote{})
	s.Seed(sampleRate("", 40.0))

	assert.Equal(t, Ready, s.State())
	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 40.0, snap[0].Value)
}

func TestCreate_AppendsServerAssignedID(t *testing.T) {
	m := &mockRemote{
		createFn: func(_ context.Context, r model.ExchangeRate) (*model.ExchangeRate, error) {
			r.ID = "7"
			return &r, nil
		},
	}
	s := readyStore(t, nil, m)

	created, err := s.Create(context.Background(), model.ExchangeRate{Value: 38.2, Date: time.Now().UTC()})
	require.NoError(t, err)
	assert.Equal(t, model.ID("7"), created.ID)
	assert.Len(t, s.Snapshot(), 1)
}

func TestUpdate_IdentityPreserved(t *testing.T) {
	m := &mockRemote{
		updateFn: func(_ context.Context, r model.ExchangeRate) (*model.ExchangeRate, error) {
			return &r, nil
		},
	}
	s := readyStore(t, []model.ExchangeRate{sampleRate("1", 36.5), sampleRate("2", 37.1)}, m)

	_, err := s.Update(context.Background(), sampleRate("1", 39.9))
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, 39.9, snap[0].Value)
	assert.Equal(t, 37.1, snap[1].Value)
}

func TestUpdate_DriftWhenNoLocalMatch(t *testing.T) {
	m := &mockRemote{
		updateFn: func(_ context.Context, r model.ExchangeRate) (*model.ExchangeRate, error) {
			return &r, nil
		},
	}
	s := readyStore(t, []model.ExchangeRate{sampleRate("1", 36.5)}, m)

	_, err := s.Update(context.Background(), sampleRate("99", 50))
	assert.ErrorIs(t, err, ErrDrift)
	assert.Len(t, s.Snapshot(), 1)
}

func TestDelete_RemovesByID(t *testing.T) {
	m := &mockRemote{
		deleteFn: func(context.Context, model.ID) error { return nil },
	}
	s := readyStore(t, []model.ExchangeRate{sampleRate("1", 36.5), sampleRate("2", 37.1)}, m)

	require.NoError(t, s.Delete(context.Background(), "1"))
	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, model.ID("2"), snap[0].ID)
}

func TestDelete_AlreadyGone(t *testing.T) {
	m := &mockRemote{
		deleteFn: func(context.Context, model.ID) error {
			return &remote.RejectionError{Status: 404}
		},
	}
	s := readyStore(t, []model.ExchangeRate{sampleRate("1", 36.5)}, m)

	// Second delete of the same id: remote 404, local removal still applies.
	require.NoError(t, s.Delete(context.Background(), "1"))
	assert.Empty(t, s.Snapshot())

	require.NoError(t, s.Delete(context.Background(), "1"))
	assert.Empty(t, s.Snapshot())
}

func TestDelete_RejectionKeepsCollection(t *testing.T) {
	m := &mockRemote{
		deleteFn: func(context.Context, model.ID) error {
			return &remote.RejectionError{Status: 500}
		},
	}
	s := readyStore(t, []model.ExchangeRate{sampleRate("1", 36.5)}, m)

	require.Error(t, s.Delete(context.Background(), "1"))
	assert.Len(t, s.Snapshot(), 1)
}
