// Package rng provides the uniform sampler used to pick draw winners.
package rng

import (
	"math/rand"
	"sync"
	"time"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
)

// Source yields uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Draw picks k distinct elements of pool with a partial Fisher–Yates shuffle.
// Each pick is uniform over the candidates still in the working set, so the
// result is a uniform k-combination emitted in uniformly random order.
// k <= 0 yields an empty slice and k > len(pool) is clamped. pool is not modified.
func Draw[T any](src Source, k int, pool []T) []T {
	if k <= 0 || len(pool) == 0 {
		return []T{}
	}
	if k > len(pool) {
		k = len(pool)
	}

	work := make([]T, len(pool))
	copy(work, pool)

	picked := make([]T, 0, k)
	n := len(work)
	for i := 0; i < k; i++ {
		idx := src.Intn(n)
		picked = append(picked, work[idx])
		// swap-with-last removal
		n--
		work[idx] = work[n]
	}
	return picked
}

// Sampler draws participants from a seeded math/rand source.
// Not suitable where unpredictability matters.
type Sampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSampler creates a Sampler. A zero seed seeds from the clock.
func NewSampler(seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{rnd: rand.New(rand.NewSource(seed))}
}

// Intn implements Source
func (s *Sampler) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// Sample returns k distinct participants from pool in draw order
func (s *Sampler) Sample(k int, pool []models.Participant) []models.Participant {
	return Draw[models.Participant](s, k, pool)
}
