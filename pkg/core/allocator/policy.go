package allocator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// DefaultTargetSize is the number of nurses per shift when the policy does not set one
const DefaultTargetSize = 2

// TieBreak selects how equally-eligible nurses are ordered for a shift
type TieBreak string

const (
	// TieBreakRosterOrder keeps nurses in the order they appear in the roster
	TieBreakRosterOrder TieBreak = "rosterOrder"

	// TieBreakLeastLoaded orders nurses by ascending shifts assigned so far, ties by roster order
	TieBreakLeastLoaded TieBreak = "leastLoaded"

	// TieBreakRandom shuffles nurses using the policy's random source
	TieBreakRandom TieBreak = "random"
)

// TieBreaks returns every supported tie-break policy
func TieBreaks() []TieBreak {
	return []TieBreak{TieBreakRosterOrder, TieBreakLeastLoaded, TieBreakRandom}
}

// ParseTieBreak converts a policy name (case-insensitive) to a TieBreak
func ParseTieBreak(name string) (TieBreak, error) {
	for _, tb := range TieBreaks() {
		if strings.EqualFold(strings.TrimSpace(name), string(tb)) {
			return tb, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tie-break %q", ErrInvalidPolicy, name)
}

// AllocationPolicy controls how the allocator chooses between eligible nurses
type AllocationPolicy struct {
	// TieBreak orders candidates within the preferred and non-preferred pools.
	// Empty means TieBreakRosterOrder.
	TieBreak TieBreak

	// TargetSize is the number of nurses each shift should receive (DefaultTargetSize when <= 0)
	TargetSize int

	// Backfill enables a second pass that tops up under-staffed shifts
	// from the day's available nurses, ignoring preferences
	Backfill bool

	// MaxShiftsPerDay caps how many shifts a nurse can take on one day during the
	// primary pass. 0 means unlimited. The backfill pass ignores the cap.
	MaxShiftsPerDay int

	// Rand is the random source for TieBreakRandom. Must not be shared across goroutines.
	// When nil, a source is created from Seed.
	Rand *rand.Rand

	// Seed for the random source when Rand is nil. 0 means seed from the clock,
	// and the normalised policy carries the clock seed actually used.
	// Ignored and reported unchanged when Rand is set.
	Seed int64
}

// DefaultPolicy returns the deterministic roster-order policy with the default target size
func DefaultPolicy() AllocationPolicy {
	return AllocationPolicy{
		TieBreak:   TieBreakRosterOrder,
		TargetSize: DefaultTargetSize,
	}
}

// normalize fills in defaults and validates the policy
func (p AllocationPolicy) normalize() (AllocationPolicy, error) {
	if p.TieBreak == "" {
		p.TieBreak = TieBreakRosterOrder
	}
	tieBreak, err := ParseTieBreak(string(p.TieBreak))
	if err != nil {
		return p, err
	}
	p.TieBreak = tieBreak

	if p.TargetSize <= 0 {
		p.TargetSize = DefaultTargetSize
	}
	if p.MaxShiftsPerDay < 0 {
		return p, fmt.Errorf("%w: maxShiftsPerDay must be >= 0, got %d", ErrInvalidPolicy, p.MaxShiftsPerDay)
	}

	if p.Rand == nil {
		if p.Seed == 0 {
			p.Seed = time.Now().UnixNano()
		}
		p.Rand = rand.New(rand.NewSource(p.Seed))
	}

	return p, nil
}
