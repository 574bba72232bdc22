package engine

import (
	"fmt"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

func (s *Snapshot) hasID(kind, id string) bool {
	switch kind {
	case KindBoard:
		_, ok := s.boards[id]
		return ok
	case KindColumn:
		_, ok := s.columns[id]
		return ok
	case KindTask:
		_, ok := s.tasks[id]
		return ok
	}
	return false
}

// checkInvariants verifies every cross-reference of the snapshot.
func (s *Snapshot) checkInvariants() error {
	if len(s.boardOrder) != len(s.boards) || len(s.taskOrder) != len(s.tasks) {
		return violation("ordering index out of sync with entities")
	}

	for id, b := range s.boards {
		if b.ID != id {
			return violation("board stored under %s has id %s", id, b.ID)
		}
		for _, c := range b.Columns {
			stored, ok := s.columns[c.ID]
			if !ok || stored != c {
				return violation("board %s lists column %s that is not stored", id, c.ID)
			}
			if c.BoardID != id {
				return violation("column %s of board %s points at board %s", c.ID, id, c.BoardID)
			}
		}
	}

	titles := make(map[[2]string]string, len(s.columns))
	for id, c := range s.columns {
		if _, ok := s.boards[c.BoardID]; !ok {
			return violation("column %s references missing board %s", id, c.BoardID)
		}
		key := [2]string{c.BoardID, NormalizeTitle(c.Title)}
		if other, dup := titles[key]; dup {
			return violation("columns %s and %s of board %s share title %q", other, id, c.BoardID, c.Title)
		}
		titles[key] = id
	}

	for id, t := range s.tasks {
		c, ok := s.columns[t.Status]
		if !ok {
			return violation("task %s is filed under missing column %s", id, t.Status)
		}
		if c.BoardID != t.BoardID {
			return violation("task %s belongs to board %s but column %s belongs to board %s", id, t.BoardID, c.ID, c.BoardID)
		}
	}
	return nil
}

func violation(format string, args ...any) error {
	return &domain.InvariantError{Detail: fmt.Sprintf(format, args...)}
}
