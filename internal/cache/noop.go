package cache

import (
	"time"

	"UptrendScanner/internal/model"
)

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Load(_, _ string, _ time.Duration) ([]model.OHLCV, bool, error) {
	return nil, false, nil
}
func (n *NoopStore) Save(_, _ string, _ []model.OHLCV) error { return nil }
func (n *NoopStore) Close() error                           { return nil }
