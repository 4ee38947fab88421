package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
}

func NewRandomizer() Randomizer {
	return NewSeededRandomizer(time.Now().Unix())
}

func NewSeededRandomizer(seed int64) Randomizer {
	random := rand.New(rand.NewSource(seed)) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
	}
}

// Seeded is a reproducible uniform source satisfying the pipeline's Rand
// interfaces.
type Seeded struct {
	random *rand.Rand
}

func NewSeeded(seed int64) *Seeded {
	return &Seeded{random: rand.New(rand.NewSource(seed))} //nolint:gosec // for tests
}

func (s *Seeded) Float64() float64 {
	return s.random.Float64()
}

// Scripted replays a fixed sequence of draws and cycles when exhausted, so a
// scenario test can force exact roll outcomes.
type Scripted struct {
	draws []float64
	next  int
}

func NewScripted(draws ...float64) *Scripted {
	if len(draws) == 0 {
		draws = []float64{0.5}
	}

	return &Scripted{draws: draws}
}

func (s *Scripted) Float64() float64 {
	draw := s.draws[s.next%len(s.draws)]
	s.next++

	return draw
}

// Drawn reports how many draws have been consumed.
func (s *Scripted) Drawn() int {
	return s.next
}
