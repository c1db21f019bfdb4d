package profile

import (
	"errors"
	"fmt"

	"github.com/Bluebull7/pulsevector-sim/internal/archetype"
)

// DefaultPool is the allocation points a fresh build starts with.
const DefaultPool = 3

// StatCeiling is the highest value any stat can reach.
const StatCeiling = 7

// Allocation failures callers branch on for their own messaging.
var (
	ErrPoolExhausted = errors.New("no allocation points remaining")
	ErrStatMaxed     = errors.New("stat already at ceiling")
)

// Builder layers point allocations on top of an archetype's base stats.
// Both wizard surfaces build their stat maps through it so the pool and
// ceiling rules hold everywhere.
type Builder struct {
	arch      archetype.Archetype
	stats     map[string]int
	remaining int
}

// NewBuilder starts a build from an archetype's base stats with the
// default point pool.
func NewBuilder(a archetype.Archetype) *Builder {
	stats := make(map[string]int, len(a.BaseStats))
	for k, v := range a.BaseStats {
		stats[k] = v
	}
	return &Builder{arch: a, stats: stats, remaining: DefaultPool}
}

// Allocate spends one point raising stat by 1. The pool never goes
// negative and no stat passes the ceiling.
func (b *Builder) Allocate(stat string) error {
	v, ok := b.stats[stat]
	if !ok {
		return fmt.Errorf("unknown stat: %s", stat)
	}
	if b.remaining <= 0 {
		return ErrPoolExhausted
	}
	if v >= StatCeiling {
		return ErrStatMaxed
	}
	b.stats[stat] = v + 1
	b.remaining--
	return nil
}

// Remaining returns the unspent allocation points.
func (b *Builder) Remaining() int { return b.remaining }

// Stat returns the current value of one stat.
func (b *Builder) Stat(stat string) int { return b.stats[stat] }

// Stats returns a copy of the current stat values.
func (b *Builder) Stats() map[string]int {
	out := make(map[string]int, len(b.stats))
	for k, v := range b.stats {
		out[k] = v
	}
	return out
}

// Archetype returns the archetype the build started from.
func (b *Builder) Archetype() archetype.Archetype { return b.arch }
