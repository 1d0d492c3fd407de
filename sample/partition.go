package sample

import "math/rand"

// TwoPartition fills two disjoint reservoirs (sized kFirst and kSecond) from
// a single pass over a stream, as required for the two-set staging strategy
// (spec §4.2): each incoming element is assigned to exactly one of the two
// reservoirs by a deterministic coin flip, then offered to that reservoir's
// own Algorithm L sampler. Because every element goes to exactly one side,
// the two reservoirs can never share a retained element.
type TwoPartition[T any] struct {
	first  *Reservoir[T]
	second *Reservoir[T]
	rng    *rand.Rand
	seen   int
}

// NewTwoPartition creates a TwoPartition. If rng is nil, a source seeded
// from the runtime's default entropy is used; pass a seeded *rand.Rand for
// reproducible staging across runs.
func NewTwoPartition[T any](kFirst, kSecond int, rng *rand.Rand) *TwoPartition[T] {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &TwoPartition[T]{
		first:  NewReservoir[T](kFirst, rng),
		second: NewReservoir[T](kSecond, rng),
		rng:    rng,
	}
}

// Offer presents the next stream element, assigning it to one of the two
// reservoirs by a coin flip drawn from the shared rng.
func (p *TwoPartition[T]) Offer(value T) {
	if p.rng.Float64() < 0.5 {
		p.first.Offer(value)
	} else {
		p.second.Offer(value)
	}
	p.seen++
}

// First returns the retained values for the first reservoir.
func (p *TwoPartition[T]) First() []T { return p.first.Values() }

// Second returns the retained values for the second reservoir.
func (p *TwoPartition[T]) Second() []T { return p.second.Values() }

// Seen reports the total number of elements offered.
func (p *TwoPartition[T]) Seen() int { return p.seen }
