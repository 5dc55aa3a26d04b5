// Package ident generates note ids.
package ident

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a new unique id on every call.
type Generator interface {
	NewID() string
}

// UUIDv7 issues time-ordered UUIDs, so ids still sort by creation time
// while two notes created in the same millisecond never collide.
type UUIDv7 struct{}

// NewID returns a version 7 UUID, falling back to a random one.
func (UUIDv7) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Sequence issues "1", "2", ... and is meant for tests.
type Sequence struct {
	n atomic.Int64
}

// NewID returns the next number in the sequence.
func (s *Sequence) NewID() string {
	return strconv.FormatInt(s.n.Add(1), 10)
}
