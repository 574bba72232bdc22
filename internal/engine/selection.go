package engine

import (
	"sync"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

// Selection tracks the board currently shown to the user. It keeps a copy
// of the board so the active view can be served without a lookup.
type Selection struct {
	mu     sync.Mutex
	active *domain.Board
}

func NewSelection() *Selection {
	return &Selection{}
}

// Active returns the selected board, if any.
func (s *Selection) Active() (domain.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.Board{}, false
	}
	return s.active.Clone(), true
}

// ActiveID returns the selected board id, or "" when nothing is selected.
func (s *Selection) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ""
	}
	return s.active.ID
}

// OnLoad selects the first board after a load when nothing is selected.
// A selection whose board no longer exists is replaced the same way.
func (s *Selection) OnLoad(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		if b, ok := snap.Board(s.active.ID); ok {
			s.active = &b
			return
		}
	}
	s.active = firstBoard(snap, "")
}

// OnCreate selects a newly created board.
func (s *Selection) OnCreate(board domain.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := board.Clone()
	s.active = &b
}

// OnUpdate refreshes the selected board's data. The selected id never
// changes here.
func (s *Selection) OnUpdate(board domain.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.ID != board.ID {
		return
	}
	b := board.Clone()
	s.active = &b
}

// OnDelete moves the selection off a deleted board to the first board
// that remains in snap, or clears it.
func (s *Selection) OnDelete(boardID string, snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.ID != boardID {
		return
	}
	s.active = firstBoard(snap, boardID)
}

// Select makes an existing board the active one.
func (s *Selection) Select(boardID string, snap *Snapshot) (domain.Board, error) {
	b, ok := snap.Board(boardID)
	if !ok {
		return domain.Board{}, &domain.NotFoundError{Entity: "board", ID: boardID}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = &b
	return b.Clone(), nil
}

func firstBoard(snap *Snapshot, skip string) *domain.Board {
	for _, b := range snap.Boards() {
		if b.ID != skip {
			return &b
		}
	}
	return nil
}
