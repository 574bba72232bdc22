package engine

import (
	"cmp"
	"slices"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

// Snapshot is one immutable state of the entity store. The engine never
// modifies a snapshot after publishing it; every mutation works on a clone.
// All accessors return copies.
type Snapshot struct {
	boards     map[string]domain.Board
	boardOrder []string
	// columns holds every column, attached to its board's Columns or
	// detached (dropped from the board but still referenced by tasks).
	columns   map[string]domain.Column
	tasks     map[string]domain.Task
	taskOrder []string
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		boards:  make(map[string]domain.Board),
		columns: make(map[string]domain.Column),
		tasks:   make(map[string]domain.Task),
	}
}

func (s *Snapshot) clone() *Snapshot {
	next := &Snapshot{
		boards:     make(map[string]domain.Board, len(s.boards)),
		boardOrder: slices.Clone(s.boardOrder),
		columns:    make(map[string]domain.Column, len(s.columns)),
		tasks:      make(map[string]domain.Task, len(s.tasks)),
		taskOrder:  slices.Clone(s.taskOrder),
	}
	for id, b := range s.boards {
		next.boards[id] = b.Clone()
	}
	for id, c := range s.columns {
		next.columns[id] = c
	}
	for id, t := range s.tasks {
		next.tasks[id] = t
	}
	return next
}

// Board returns the board with the given id.
func (s *Snapshot) Board(id string) (domain.Board, bool) {
	b, ok := s.boards[id]
	if !ok {
		return domain.Board{}, false
	}
	return b.Clone(), true
}

// Boards returns every board in list order.
func (s *Snapshot) Boards() []domain.Board {
	out := make([]domain.Board, 0, len(s.boardOrder))
	for _, id := range s.boardOrder {
		out = append(out, s.boards[id].Clone())
	}
	return out
}

// Column returns the column with the given id, attached or detached.
func (s *Snapshot) Column(id string) (domain.Column, bool) {
	c, ok := s.columns[id]
	return c, ok
}

// ColumnsForBoard returns every column whose BoardID is boardID: the
// board's columns in order followed by its detached columns.
func (s *Snapshot) ColumnsForBoard(boardID string) []domain.Column {
	out := []domain.Column{}
	if b, ok := s.boards[boardID]; ok {
		out = append(out, b.Columns...)
	}
	return append(out, s.DetachedColumns(boardID)...)
}

// DetachedColumns returns the columns that were dropped from the board in
// an edit but are still referenced by tasks, ordered by id.
func (s *Snapshot) DetachedColumns(boardID string) []domain.Column {
	b := s.boards[boardID]
	out := []domain.Column{}
	for _, c := range s.columns {
		if c.BoardID == boardID && !b.HasColumn(c.ID) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b domain.Column) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Task returns the task with the given id.
func (s *Snapshot) Task(id string) (domain.Task, bool) {
	t, ok := s.tasks[id]
	return t, ok
}

// Tasks returns every task in insertion order.
func (s *Snapshot) Tasks() []domain.Task {
	return s.filterTasks(func(domain.Task) bool { return true })
}

// TasksForBoard returns the tasks of one board in insertion order.
func (s *Snapshot) TasksForBoard(boardID string) []domain.Task {
	return s.filterTasks(func(t domain.Task) bool { return t.BoardID == boardID })
}

// TasksForColumn returns the tasks filed under one column. The slice
// order is the display order of the column.
func (s *Snapshot) TasksForColumn(columnID string) []domain.Task {
	return s.filterTasks(func(t domain.Task) bool { return t.Status == columnID })
}

// OrphanedTasks returns the tasks of a board whose column was removed
// from the board in an edit.
func (s *Snapshot) OrphanedTasks(boardID string) []domain.Task {
	b := s.boards[boardID]
	return s.filterTasks(func(t domain.Task) bool {
		return t.BoardID == boardID && !b.HasColumn(t.Status)
	})
}

// Counts returns the number of boards, columns and tasks.
func (s *Snapshot) Counts() (boards, columns, tasks int) {
	return len(s.boards), len(s.columns), len(s.tasks)
}

func (s *Snapshot) filterTasks(keep func(domain.Task) bool) []domain.Task {
	out := []domain.Task{}
	for _, id := range s.taskOrder {
		if t := s.tasks[id]; keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// columnIndex returns the display index of a task within its column, or
// -1 if the task does not exist.
func (s *Snapshot) columnIndex(taskID string) int {
	t, ok := s.tasks[taskID]
	if !ok {
		return -1
	}
	for i, other := range s.TasksForColumn(t.Status) {
		if other.ID == taskID {
			return i
		}
	}
	return -1
}

func (s *Snapshot) isAttached(columnID string) bool {
	c, ok := s.columns[columnID]
	if !ok {
		return false
	}
	return s.boards[c.BoardID].HasColumn(columnID)
}

func (s *Snapshot) hasTasks(columnID string) bool {
	for _, t := range s.tasks {
		if t.Status == columnID {
			return true
		}
	}
	return false
}

// The mutators below are only called on an unpublished clone.

// putBoard stores b and its columns. A new board is placed at index, or
// appended when index is out of range; an existing board keeps its place.
func (s *Snapshot) putBoard(b domain.Board, index int) int {
	b = b.Clone()
	for _, c := range b.Columns {
		s.columns[c.ID] = c
	}
	if _, exists := s.boards[b.ID]; exists {
		s.boards[b.ID] = b
		return slices.Index(s.boardOrder, b.ID)
	}
	s.boards[b.ID] = b
	if index < 0 || index > len(s.boardOrder) {
		index = len(s.boardOrder)
	}
	s.boardOrder = slices.Insert(s.boardOrder, index, b.ID)
	return index
}

// removeBoard deletes the board record only; cascades are the caller's job.
func (s *Snapshot) removeBoard(id string) int {
	idx := slices.Index(s.boardOrder, id)
	if idx >= 0 {
		s.boardOrder = slices.Delete(s.boardOrder, idx, idx+1)
	}
	delete(s.boards, id)
	return idx
}

func (s *Snapshot) putTask(t domain.Task, index int) int {
	if _, exists := s.tasks[t.ID]; exists {
		s.tasks[t.ID] = t
		return slices.Index(s.taskOrder, t.ID)
	}
	s.tasks[t.ID] = t
	if index < 0 || index > len(s.taskOrder) {
		index = len(s.taskOrder)
	}
	s.taskOrder = slices.Insert(s.taskOrder, index, t.ID)
	return index
}

func (s *Snapshot) removeTask(id string) int {
	idx := slices.Index(s.taskOrder, id)
	if idx >= 0 {
		s.taskOrder = slices.Delete(s.taskOrder, idx, idx+1)
	}
	delete(s.tasks, id)
	return idx
}

// pruneDetached drops columnID if it is detached and no task is filed
// under it any more. It returns the dropped column.
func (s *Snapshot) pruneDetached(columnID string) []domain.Column {
	c, ok := s.columns[columnID]
	if !ok || s.isAttached(columnID) || s.hasTasks(columnID) {
		return nil
	}
	delete(s.columns, columnID)
	return []domain.Column{c}
}
