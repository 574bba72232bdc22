package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Entity kinds passed to an IDSource.
const (
	KindBoard  = "board"
	KindColumn = "col"
	KindTask   = "task"
)

// IDSource mints entity ids. It is swappable so ids can come from the
// persistence backend instead of the engine.
type IDSource interface {
	NewID(kind string) string
}

// IDSourceFunc adapts a plain function to IDSource.
type IDSourceFunc func(kind string) string

func (f IDSourceFunc) NewID(kind string) string { return f(kind) }

// UUIDSource mints UUID v7 ids, which sort by creation time.
type UUIDSource struct{}

func (UUIDSource) NewID(string) string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.NewString()
	}
	return id.String()
}

// SequentialSource mints "<kind>-<n>" ids. Deterministic, for tests and
// sample data.
type SequentialSource struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewSequentialSource() *SequentialSource {
	return &SequentialSource{counters: make(map[string]int)}
}

func (s *SequentialSource) NewID(kind string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[kind]++
	return fmt.Sprintf("%s-%d", kind, s.counters[kind])
}
