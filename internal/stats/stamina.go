// Package stats tracks the bounded actor resources of the hunt. Today that
// is a single stamina pool; the accounting keeps every mutation inside
// [0, max] so callers never see an out-of-range value.
package stats

// Pool is a bounded resource meter.
type Pool struct {
	Current float64 `json:"current"`
	Max     float64 `json:"max"`
}

func NewPool(max float64) Pool {
	if max <= 0 {
		max = 1
	}
	return Pool{Current: max, Max: max}
}

func (p Pool) Empty() bool {
	return p.Current <= 0
}

// Fraction reports the fill level in [0, 1].
func (p Pool) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return p.clamp(p.Current) / p.Max
}

// Drain removes amount-per-step for the given steps and clamps at zero.
func (p Pool) Drain(steps int, perStep float64) Pool {
	next := p
	next.Current = p.clamp(p.Current - float64(steps)*perStep)
	return next
}

// Recover adds amount-per-step for the given steps and clamps at max.
func (p Pool) Recover(steps int, perStep float64) Pool {
	next := p
	next.Current = p.clamp(p.Current + float64(steps)*perStep)
	return next
}

func (p Pool) clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > p.Max {
		return p.Max
	}
	return v
}
