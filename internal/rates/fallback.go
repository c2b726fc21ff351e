package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Jhonaiker2309/supermarket-administration/pkg/model"
)

const fallbackKey = "supermarket:dolar:last"

// Fallback persists the most recent exchange rate in client-local key/value
// storage. It is read once at startup and written on every successful rate
// save, so a dead remote store still yields a usable (if stale) conversion
// rate. This is the one-element legacy variant of the rate history.
type Fallback struct {
	redis  *redis.Client
	logger *zap.Logger
}

func NewFallback(rdb *redis.Client, logger *zap.Logger) *Fallback {
	return &Fallback{redis: rdb, logger: logger}
}

// Save overwrites the persisted rate. Kept forever; staleness is visible
// through the record's date.
func (f *Fallback) Save(ctx context.Context, r model.ExchangeRate) error {
	if f.redis == nil {
		return nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal fallback rate: %w", err)
	}
	if err := f.redis.Set(ctx, fallbackKey, data, 0).Err(); err != nil {
		f.logger.Warn("rates.fallback_save_failed", zap.Error(err))
		return err
	}
	return nil
}

// Load returns the persisted rate, or nil when none has been saved.
func (f *Fallback) Load(ctx context.Context) (*model.ExchangeRate, error) {
	if f.redis == nil {
		return nil, nil
	}
	data, err := f.redis.Get(ctx, fallbackKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		f.logger.Warn("rates.fallback_load_failed", zap.Error(err))
		return nil, err
	}
	var r model.ExchangeRate
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal fallback rate: %w", err)
	}
	return &r, nil
}
