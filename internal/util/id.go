// Package util provides utility functions for the patty planner.
package util

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator issues calculation identifiers. It is safe for concurrent use.
type IDGenerator struct {
	mu   sync.Mutex
	next func() (uuid.UUID, error)
}

// NewIDGenerator creates a generator of time-ordered UUIDv7 identifiers.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{next: uuid.NewV7}
}

// NewSequentialIDGenerator creates a generator of predictable identifiers,
// starting at seed. Intended for tests.
func NewSequentialIDGenerator(seed int64) *IDGenerator {
	n := seed
	return &IDGenerator{next: func() (uuid.UUID, error) {
		id := DeterministicID(n)
		n++
		return uuid.Parse(id)
	}}
}

// NewID returns the next identifier. If the time-ordered source fails, a
// random UUIDv4 is returned instead.
func (g *IDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := g.next()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// ShortID returns the first block of an identifier for compact display.
func ShortID(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}

// DeterministicID generates a deterministic UUIDv4-shaped ID for testing.
func DeterministicID(seed int64) string {
	var id [16]byte

	binary.BigEndian.PutUint64(id[0:8], uint64(seed))
	binary.BigEndian.PutUint64(id[8:16], uint64(seed*31))

	id[6] = (id[6] & 0x0F) | 0x40
	id[8] = (id[8] & 0x3F) | 0x80

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(id[0:4]),
		binary.BigEndian.Uint16(id[4:6]),
		binary.BigEndian.Uint16(id[6:8]),
		binary.BigEndian.Uint16(id[8:10]),
		id[10:16],
	)
}
