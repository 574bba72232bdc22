// Package pending records optimistic mutations that were applied to the
// in-memory board state before the backend confirmed them.
package pending

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEntryNotFound   = errors.New("pending entry not found")
	ErrDuplicateEntry  = errors.New("pending entry already exists")
	ErrAlreadyResolved = errors.New("pending entry already resolved")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// Entry is one optimistic mutation awaiting the backend.
type Entry struct {
	ID         string     `json:"id"`
	Op         string     `json:"op"`
	EntityID   string     `json:"entityId"`
	Status     Status     `json:"status"`
	Reason     string     `json:"reason,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

// Ledger tracks entries from Begin until Confirm or Reject. Resolved
// entries stay readable through Get but are no longer listed by Pending.
type Ledger interface {
	Begin(ctx context.Context, e Entry) (Entry, error)
	Confirm(ctx context.Context, id string) error
	Reject(ctx context.Context, id, reason string) error
	Get(ctx context.Context, id string) (Entry, error)
	Pending(ctx context.Context) ([]Entry, error)
}

func newEntry(e Entry) Entry {
	e.Status = StatusPending
	e.Reason = ""
	e.ResolvedAt = nil
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return e
}

func resolve(e Entry, status Status, reason string) (Entry, error) {
	if e.Status != StatusPending {
		return e, ErrAlreadyResolved
	}
	now := time.Now().UTC()
	e.Status = status
	e.Reason = reason
	e.ResolvedAt = &now
	return e, nil
}
