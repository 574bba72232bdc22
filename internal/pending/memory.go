package pending

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryLedger keeps entries in process memory. It is used when no Redis
// URL is configured.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]Entry)}
}

func (l *MemoryLedger) Begin(_ context.Context, e Entry) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.entries[e.ID]; exists {
		return Entry{}, ErrDuplicateEntry
	}
	e = newEntry(e)
	l.entries[e.ID] = e
	return e, nil
}

func (l *MemoryLedger) Confirm(_ context.Context, id string) error {
	return l.resolve(id, StatusConfirmed, "")
}

func (l *MemoryLedger) Reject(_ context.Context, id, reason string) error {
	return l.resolve(id, StatusRejected, reason)
}

func (l *MemoryLedger) resolve(id string, status Status, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[id]
	if !ok {
		return ErrEntryNotFound
	}
	e, err := resolve(e, status, reason)
	if err != nil {
		return err
	}
	l.entries[id] = e
	return nil
}

func (l *MemoryLedger) Get(_ context.Context, id string) (Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[id]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	return e, nil
}

func (l *MemoryLedger) Pending(_ context.Context) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, 0)
	for _, e := range l.entries {
		if e.Status == StatusPending {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out, nil
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
