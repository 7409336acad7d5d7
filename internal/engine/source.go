package engine

import (
	"encoding/binary"
	"sync"

	"lukechampine.com/frand"
)

// Source is the randomness every non-deterministic strategy draws from.
type Source interface {
	// Intn returns a uniform integer in [0, n). It panics if n <= 0.
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// lockedSource serializes access to an RNG that is not safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	rng *frand.RNG
}

func (that *lockedSource) Intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rng.Intn(n)
}

func (that *lockedSource) Float64() float64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rng.Float64()
}

// NewRandomSource returns a source seeded from system entropy.
func NewRandomSource() Source {
	return &lockedSource{rng: frand.New()}
}

// NewSource returns a deterministic source: equal seeds yield equal sequences.
func NewSource(seed uint64) Source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)

	return &lockedSource{rng: frand.NewCustom(key[:], 1024, 12)}
}

// pick - returns a uniformly chosen element of cells, which must not be empty.
func pick(source Source, cells []int) int {
	return cells[source.Intn(len(cells))]
}
