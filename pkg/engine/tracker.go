package engine

import "sync/atomic"

// Tracker sequences overlapping engine requests so that only the most
// recently issued one is applied. It is safe for concurrent use.
type Tracker struct {
	latest atomic.Uint64
}

// Begin issues a new sequence number, superseding every earlier one.
func (t *Tracker) Begin() uint64 {
	return t.latest.Add(1)
}

// Accept reports whether seq is still the most recent request.
func (t *Tracker) Accept(seq uint64) bool {
	return seq != 0 && t.latest.Load() == seq
}

// Latest returns the most recently issued sequence number, or 0.
func (t *Tracker) Latest() uint64 {
	return t.latest.Load()
}
