package sim

// Rand is the source of randomness for spawn placement, target choice and
// speed jitter. Tests may inject a scripted implementation.
type Rand interface {
	Float64() float64 // Uniform in [0, 1)
	Intn(n int) int   // Uniform in [0, n)
}

// RNG is a deterministic xorshift64 generator whose state fits in a snapshot.
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 88172645463325252 // Default seed
	}
	return &RNG{state: s}
}

// Next returns the next random uint64.
func (r *RNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// State returns the internal state for snapshots.
func (r *RNG) State() uint64 {
	return r.state
}

// SetState restores a state captured by State.
func (r *RNG) SetState(s uint64) {
	if s == 0 {
		s = 88172645463325252
	}
	r.state = s
}
