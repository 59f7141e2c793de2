package assembly

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync"

	"github.com/alexiusacademia/gostiff/internal/model"
)

// Cache memoizes element matrices by member id and a hash of everything
// the matrices depend on. Editing a member changes the hash, so stale
// entries are never returned. A nil *Cache disables memoization.
type Cache struct {
	mu      sync.Mutex
	entries map[int]cacheEntry
	hits    int
}

type cacheEntry struct {
	hash     uint64
	mass     bool
	matrices ElementMatrices
}

// NewCache returns an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[int]cacheEntry)}
}

// Hits returns how many lookups were served from the cache
func (c *Cache) Hits() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// Len returns the number of cached elements
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) matrices(el model.Element, withMass bool) ElementMatrices {
	if c == nil {
		return Matrices(el, withMass)
	}
	h := fingerprint(el)

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[el.ID]; ok && e.hash == h && (e.mass || !withMass) {
		c.hits++
		return e.matrices
	}
	em := Matrices(el, withMass)
	c.entries[el.ID] = cacheEntry{hash: h, mass: withMass, matrices: em}
	return em
}

func fingerprint(el model.Element) uint64 {
	h := fnv.New64a()
	h.Write([]byte(el.Kind()))
	p := el.Properties()
	var buf [8]byte
	for _, v := range []float64{p.E, p.A, p.I, p.Density, el.Length, el.Beta} {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return h.Sum64()
}
