// Package random provides the deterministic number stream used by dungeon
// generation.
package random

import "errors"

// ErrEmptyRange is the panic value raised when a draw is requested from an
// empty range. Callers validate their bounds up front, so seeing it means a
// broken precondition rather than bad input.
var ErrEmptyRange = errors.New("random: range with zero width")

// Xorshift is a 64-bit xorshift stream. The same seed always produces the same
// sequence. It is not safe for concurrent use.
type Xorshift struct {
	state uint64
}

// New creates a stream from seed. A zero seed yields a stream stuck at zero.
func New(seed uint64) *Xorshift {
	return &Xorshift{state: seed}
}

// Next advances the state and returns it.
func (x *Xorshift) Next() uint64 {
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

// Range returns a value in [0, max). The modulo reduction is biased for
// non-power-of-two max; generation only needs reproducibility.
func (x *Xorshift) Range(max uint64) uint64 {
	if max == 0 {
		panic(ErrEmptyRange)
	}
	return x.Next() % max
}

// RangeWithMin returns a value in [min, max). When min >= max it falls back to
// Range(max).
func (x *Xorshift) RangeWithMin(min, max uint64) uint64 {
	if min < max {
		return min + x.Range(max-min)
	}
	return x.Range(max)
}
