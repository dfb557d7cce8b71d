package cache

import (
	"time"

	"github.com/quotly/quotly/pkg/domain"
)

// Entry is a cached rate together with its lifecycle timestamps.
type Entry struct {
	Rate      float64
	Quote     domain.RateQuote
	CreatedAt time.Time
	ExpiresAt time.Time
}

// RateCache caches resolved rates per ordered currency pair. (A,B) and (B,A)
// are distinct slots; Put must keep them reciprocal by writing both in one
// operation.
type RateCache interface {
	// Get returns the entry for (source, target) or nil if never written.
	// An entry past its TTL is treated as absent unless allowExpired is set.
	Get(source, target string, allowExpired bool) *Entry

	// Put stores (source, target) with the configured TTL and, atomically,
	// (target, source) with the reciprocal rate. A zero rate is rejected.
	Put(source, target string, rate float64, quote domain.RateQuote) error
}
