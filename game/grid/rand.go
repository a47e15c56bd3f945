package grid

import "math/rand"

// countingSource wraps a rand.Source64 and counts every value pulled from
// it. The count, not the number of high-level calls, is what gets replayed:
// different high-level methods consume different numbers of source values,
// so tracking at the source level keeps replay exact.
type countingSource struct {
	src   rand.Source64
	draws uint64
}

func (c *countingSource) Int63() int64 {
	c.draws++
	return c.src.Int63()
}

func (c *countingSource) Uint64() uint64 {
	c.draws++
	return c.src.Uint64()
}

func (c *countingSource) Seed(seed int64) {
	c.src.Seed(seed)
}

// ObstacleRand is the explicit, owned random generator behind all dynamic
// obstacle mutation. It carries (seed, draw count) so a forecaster can
// reconstruct the exact generator state at any point in the past and then
// simulate forward from it.
type ObstacleRand struct {
	seed    int64
	counter *countingSource
	rng     *rand.Rand
}

// NewObstacleRand creates a generator seeded at zero draws.
func NewObstacleRand(seed int64) *ObstacleRand {
	counter := &countingSource{src: rand.NewSource(seed).(rand.Source64)}
	return &ObstacleRand{
		seed:    seed,
		counter: counter,
		rng:     rand.New(counter),
	}
}

// ReplayObstacleRand creates a generator seeded identically to a live one
// and fast-forwards it past the given number of draws. The returned
// generator continues the sequence exactly where the live generator is.
func ReplayObstacleRand(seed int64, draws uint64) *ObstacleRand {
	r := NewObstacleRand(seed)
	for r.counter.draws < draws {
		r.counter.Int63()
	}
	return r
}

// Seed returns the seed the generator was created with.
func (r *ObstacleRand) Seed() int64 {
	return r.seed
}

// Draws returns the number of values consumed from the underlying source
// so far. This is the counter a forecaster replays.
func (r *ObstacleRand) Draws() uint64 {
	return r.counter.draws
}

// Float64 returns a uniform value in [0, 1).
func (r *ObstacleRand) Float64() float64 {
	return r.rng.Float64()
}

// Intn returns a uniform value in [0, n).
func (r *ObstacleRand) Intn(n int) int {
	return r.rng.Intn(n)
}

// Shuffle randomizes the order of n elements via the swap function.
func (r *ObstacleRand) Shuffle(n int, swap func(i, j int)) {
	r.rng.Shuffle(n, swap)
}
