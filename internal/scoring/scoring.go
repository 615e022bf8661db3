// Package scoring supplies the numbers that stand in for model outputs.
// Every synthetic confidence in the service is drawn through a Scorer so
// tests can swap the random source for a deterministic one.
package scoring

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Range is a closed interval [Min, Max]
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies in the range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Mid returns the midpoint of the range
func (r Range) Mid() float64 {
	return r.Min + (r.Max-r.Min)/2
}

// Common ranges
var (
	Unit    = Range{Min: 0, Max: 1}
	Percent = Range{Min: 0, Max: 100}
)

// Scorer produces a value inside r
type Scorer interface {
	Score(r Range) float64
}

// Chance reports whether a draw on s lands below p, for p in [0,1]
func Chance(s Scorer, p float64) bool {
	return s.Score(Unit) < p
}

// Random draws uniformly from the range. Safe for concurrent use.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a random scorer. A zero seed seeds from the clock.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Score returns a uniform value in [r.Min, r.Max]
func (s *Random) Score(r Range) float64 {
	s.mu.Lock()
	f := s.rng.Float64()
	s.mu.Unlock()
	return Clamp(r.Min+f*(r.Max-r.Min), r.Min, r.Max)
}

// Fixed always returns Value, clamped into the requested range
type Fixed struct {
	Value float64
}

// Score returns the fixed value clamped to r
func (f Fixed) Score(r Range) float64 {
	return Clamp(f.Value, r.Min, r.Max)
}

// Midpoint returns the centre of every range
type Midpoint struct{}

// Score returns r.Mid()
func (Midpoint) Score(r Range) float64 {
	return r.Mid()
}

// Sequence replays values in order, clamped into each requested range, then repeats the last one.
// Handy for driving branch-by-branch tests.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequence creates a Sequence scorer
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Score returns the next value clamped to r
func (s *Sequence) Score(r Range) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 {
		return r.Min
	}
	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return Clamp(v, r.Min, r.Max)
}

// Clamp bounds v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampPercent bounds v to [0, 100]
func ClampPercent(v float64) float64 {
	return Clamp(v, 0, 100)
}

// Round1 rounds to one decimal place
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Int returns a whole number drawn from r
func Int(s Scorer, r Range) int {
	return int(math.Floor(s.Score(r)))
}
