package journal

import "time"

const (
	// DefaultMaxRecords bounds the in-memory turn log per instance.
	DefaultMaxRecords = 512
	// DefaultMaxAge evicts records older than this relative to the
	// newest append, measured on the wall clock.
	DefaultMaxAge = 15 * time.Minute
)

// Retention bounds the in-memory turn log. Both limits are always in
// force; non-positive values fall back to the defaults.
type Retention struct {
	MaxRecords int           `json:"maxRecords"`
	MaxAge     time.Duration `json:"maxAge"`
}

// DefaultRetention returns the standard per-instance limits.
func DefaultRetention() Retention {
	return Retention{MaxRecords: DefaultMaxRecords, MaxAge: DefaultMaxAge}
}

func (r Retention) normalized() Retention {
	if r.MaxRecords <= 0 {
		r.MaxRecords = DefaultMaxRecords
	}
	if r.MaxAge <= 0 {
		r.MaxAge = DefaultMaxAge
	}
	return r
}
