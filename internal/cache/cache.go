package cache

import (
	"time"

	"UptrendScanner/internal/model"
)

// Store keeps recently fetched daily bars keyed by symbol and period so
// repeated scans within the freshness window skip the network.
type Store interface {
	// Load returns the bars saved for symbol/period if they are younger than
	// maxAge. ok is false on a miss or when the entry is stale.
	Load(symbol, period string, maxAge time.Duration) (bars []model.OHLCV, ok bool, err error)
	Save(symbol, period string, bars []model.OHLCV) error
	Close() error
}
