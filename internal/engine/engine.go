package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

// Op names the mutation recorded in a Change.
type Op string

const (
	OpCreateBoard Op = "create_board"
	OpUpdateBoard Op = "update_board"
	OpDeleteBoard Op = "delete_board"
	OpCreateTask  Op = "create_task"
	OpUpdateTask  Op = "update_task"
	OpDeleteTask  Op = "delete_task"
)

const maxMintAttempts = 8

// IndexedTask is a removed task with its former position in the task list.
type IndexedTask struct {
	Task  domain.Task
	Index int
}

// Change describes one applied mutation: the new value, the previous
// value and the side effects. Revert applies its inverse.
type Change struct {
	Op Op

	Board      *domain.Board
	PrevBoard  *domain.Board
	BoardIndex int

	Task      *domain.Task
	PrevTask  *domain.Task
	TaskIndex int

	// RemovedTasks are cascaded task deletions in ascending Index order.
	RemovedTasks []IndexedTask
	// RemovedColumns are columns dropped from the store that PrevBoard
	// does not list (detached columns that were purged or cascaded).
	RemovedColumns []domain.Column
	// AddedColumns are columns minted by a board edit.
	AddedColumns []domain.Column
	// DetachedColumns are columns a board edit dropped while tasks still
	// reference them.
	DetachedColumns []domain.Column
	// ReattachedColumns are detached columns a board edit put back, as
	// they were before the edit.
	ReattachedColumns []domain.Column
}

// EntityID returns the id of the board or task the change is about.
func (c Change) EntityID() string {
	switch {
	case c.Board != nil:
		return c.Board.ID
	case c.PrevBoard != nil:
		return c.PrevBoard.ID
	case c.Task != nil:
		return c.Task.ID
	case c.PrevTask != nil:
		return c.PrevTask.ID
	}
	return ""
}

// Engine is the single writer of the board state. Each operation runs
// under one lock against a clone of the current snapshot and publishes
// the clone only when the operation and the invariant check succeed.
type Engine struct {
	mu   sync.Mutex
	snap *Snapshot
	ids  IDSource
	log  logrus.FieldLogger
}

type Option func(*Engine)

// WithIDSource replaces the default UUID v7 id source.
func WithIDSource(src IDSource) Option {
	return func(e *Engine) { e.ids = src }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		snap: newSnapshot(),
		ids:  UUIDSource{},
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns the current state. The returned value never changes.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap
}

// Load replaces the whole state with persisted entities.
func (e *Engine) Load(boards []domain.Board, detached []domain.Column, tasks []domain.Task) error {
	next := newSnapshot()
	for _, b := range boards {
		if _, dup := next.boards[b.ID]; dup {
			return e.invariant("duplicate board id %s", b.ID)
		}
		for _, c := range b.Columns {
			if _, dup := next.columns[c.ID]; dup {
				return e.invariant("duplicate column id %s", c.ID)
			}
		}
		next.putBoard(b, -1)
	}
	for _, c := range detached {
		if _, dup := next.columns[c.ID]; dup {
			return e.invariant("duplicate column id %s", c.ID)
		}
		next.columns[c.ID] = c
	}
	for _, t := range tasks {
		if _, dup := next.tasks[t.ID]; dup {
			return e.invariant("duplicate task id %s", t.ID)
		}
		next.putTask(t, -1)
	}
	if err := next.checkInvariants(); err != nil {
		e.log.WithError(err).Error("Refusing to load inconsistent board state")
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.snap = next
	return nil
}

// CreateBoard creates a board with one column per title, in input order.
func (e *Engine) CreateBoard(in domain.CreateBoardInput) (Change, error) {
	title := strings.TrimSpace(in.Title)
	titles := trimAll(in.Titles())
	if errs := ValidateBoardInput(title, titles); len(errs) > 0 {
		return Change{}, errs
	}

	return e.apply(func(next *Snapshot) (Change, error) {
		boardID, err := e.mint(next, KindBoard)
		if err != nil {
			return Change{}, err
		}
		board := domain.Board{ID: boardID, Title: title, Columns: make([]domain.Column, 0, len(titles))}
		for _, t := range titles {
			colID, err := e.mint(next, KindColumn)
			if err != nil {
				return Change{}, err
			}
			col := domain.Column{ID: colID, Title: t, BoardID: boardID}
			next.columns[colID] = col
			board.Columns = append(board.Columns, col)
		}
		idx := next.putBoard(board, -1)
		return Change{Op: OpCreateBoard, Board: &board, BoardIndex: idx}, nil
	})
}

// UpdateBoard replaces a board's title and column list. Columns that carry
// an id keep it. A column without an id whose title matches a column of
// the board the input does not name keeps that column, re-attaching it if
// it was detached. Dropped columns without tasks are purged; dropped
// columns with tasks are detached and their tasks become orphans.
func (e *Engine) UpdateBoard(boardID string, in domain.UpdateBoardInput) (Change, error) {
	title := strings.TrimSpace(in.Title)
	titles := trimAll(in.Titles())
	if errs := ValidateBoardInput(title, titles); len(errs) > 0 {
		return Change{}, errs
	}

	return e.apply(func(next *Snapshot) (Change, error) {
		prev, ok := next.Board(boardID)
		if !ok {
			return Change{}, &domain.NotFoundError{Entity: "board", ID: boardID}
		}

		carried := make(map[string]bool, len(in.Columns))
		for _, ci := range in.Columns {
			if ci.ID != "" {
				carried[ci.ID] = true
			}
		}
		// Columns of the board the input does not name by id, by title.
		others := make(map[string]domain.Column)
		for _, c := range next.ColumnsForBoard(boardID) {
			if !carried[c.ID] {
				others[NormalizeTitle(c.Title)] = c
			}
		}

		ch := Change{Op: OpUpdateBoard, PrevBoard: &prev}
		board := domain.Board{ID: boardID, Title: title, Columns: make([]domain.Column, 0, len(titles))}
		kept := make(map[string]bool, len(titles))
		var errs domain.ValidationErrors

		for i, ci := range in.Columns {
			t := titles[i]
			var col domain.Column
			if ci.ID != "" {
				existing, ok := next.columns[ci.ID]
				if !ok || existing.BoardID != boardID {
					return Change{}, &domain.NotFoundError{Entity: "column", ID: ci.ID}
				}
				if o, clash := others[NormalizeTitle(t)]; clash && next.hasTasks(o.ID) {
					errs = append(errs, duplicateColumn(i))
					continue
				}
				col = existing
				if !prev.HasColumn(existing.ID) {
					ch.ReattachedColumns = append(ch.ReattachedColumns, existing)
				}
			} else if o, ok := others[NormalizeTitle(t)]; ok && !kept[o.ID] {
				col = o
				if !prev.HasColumn(o.ID) {
					ch.ReattachedColumns = append(ch.ReattachedColumns, o)
				}
			} else {
				id, err := e.mint(next, KindColumn)
				if err != nil {
					return Change{}, err
				}
				col = domain.Column{ID: id, BoardID: boardID}
				ch.AddedColumns = append(ch.AddedColumns, domain.Column{ID: id, Title: t, BoardID: boardID})
			}
			if kept[col.ID] {
				errs = append(errs, duplicateColumn(i))
				continue
			}
			col.Title = t
			kept[col.ID] = true
			next.columns[col.ID] = col
			board.Columns = append(board.Columns, col)
		}
		if len(errs) > 0 {
			return Change{}, errs
		}

		for _, c := range next.ColumnsForBoard(boardID) {
			if kept[c.ID] {
				continue
			}
			if next.hasTasks(c.ID) {
				if prev.HasColumn(c.ID) {
					ch.DetachedColumns = append(ch.DetachedColumns, c)
				}
				continue
			}
			delete(next.columns, c.ID)
			if !prev.HasColumn(c.ID) {
				ch.RemovedColumns = append(ch.RemovedColumns, c)
			}
		}

		ch.BoardIndex = next.putBoard(board, -1)
		ch.Board = &board
		return ch, nil
	})
}

// DeleteBoard removes a board, all of its columns and all of its tasks.
func (e *Engine) DeleteBoard(boardID string) (Change, error) {
	return e.apply(func(next *Snapshot) (Change, error) {
		return deleteBoardIn(next, boardID)
	})
}

// CreateTask files a new task under the column named by Status. The task's
// board is the column's board; a BoardID hint naming another board is
// rejected as a missing status.
func (e *Engine) CreateTask(in domain.CreateTaskInput) (Change, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	return e.apply(func(next *Snapshot) (Change, error) {
		boardID := in.BoardID
		col, known := next.columns[in.Status]
		if boardID == "" && known {
			boardID = col.BoardID
		}
		if errs := ValidateTaskInput(title, in.Status, next.boards[boardID].Columns); len(errs) > 0 {
			return Change{}, errs
		}

		id, err := e.mint(next, KindTask)
		if err != nil {
			return Change{}, err
		}
		task := domain.Task{
			ID:          id,
			Title:       title,
			Description: description,
			Status:      in.Status,
			BoardID:     col.BoardID,
		}
		idx := next.putTask(task, -1)
		return Change{Op: OpCreateTask, Task: &task, TaskIndex: idx}, nil
	})
}

// UpdateTask replaces the fields set in the input. A new status must be a
// column of the task's board. BoardID is always re-derived from the status.
func (e *Engine) UpdateTask(taskID string, in domain.UpdateTaskInput) (Change, error) {
	return e.apply(func(next *Snapshot) (Change, error) {
		return updateTaskIn(next, taskID, in)
	})
}

// DeleteTask removes one task.
func (e *Engine) DeleteTask(taskID string) (Change, error) {
	return e.apply(func(next *Snapshot) (Change, error) {
		prev, ok := next.tasks[taskID]
		if !ok {
			return Change{}, &domain.NotFoundError{Entity: "task", ID: taskID}
		}
		idx := next.removeTask(taskID)
		return Change{
			Op:             OpDeleteTask,
			PrevTask:       &prev,
			TaskIndex:      idx,
			RemovedColumns: next.pruneDetached(prev.Status),
		}, nil
	})
}

// Revert applies the inverse of a change returned by this engine. It is
// used to roll back an optimistic mutation the backend rejected.
func (e *Engine) Revert(ch Change) error {
	_, err := e.apply(func(next *Snapshot) (Change, error) {
		if err := revertIn(next, ch); err != nil {
			return Change{}, err
		}
		return ch, nil
	})
	return err
}

// apply runs fn on a clone of the current snapshot. A change with an
// empty Op is a no-op and leaves the published snapshot in place.
func (e *Engine) apply(fn func(next *Snapshot) (Change, error)) (Change, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.snap.clone()
	ch, err := fn(next)
	if err == nil && ch.Op != "" {
		err = next.checkInvariants()
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvariantViolation) {
			e.log.WithError(err).WithField("op", ch.Op).Error("Rejected mutation that breaks board state")
		}
		return Change{}, err
	}
	if ch.Op != "" {
		e.snap = next
	}
	return ch, nil
}

func (e *Engine) mint(next *Snapshot, kind string) (string, error) {
	for range maxMintAttempts {
		id := e.ids.NewID(kind)
		if id != "" && !next.hasID(kind, id) {
			return id, nil
		}
	}
	return "", &domain.InvariantError{Detail: fmt.Sprintf("id source produced no unused %s id", kind)}
}

func (e *Engine) invariant(format string, args ...any) error {
	err := &domain.InvariantError{Detail: fmt.Sprintf(format, args...)}
	e.log.WithError(err).Error("Refusing to load inconsistent board state")
	return err
}

func deleteBoardIn(next *Snapshot, boardID string) (Change, error) {
	prev, ok := next.Board(boardID)
	if !ok {
		return Change{}, &domain.NotFoundError{Entity: "board", ID: boardID}
	}
	ch := Change{Op: OpDeleteBoard, PrevBoard: &prev}
	for i, id := range next.taskOrder {
		if t := next.tasks[id]; t.BoardID == boardID {
			ch.RemovedTasks = append(ch.RemovedTasks, IndexedTask{Task: t, Index: i})
		}
	}
	for _, it := range ch.RemovedTasks {
		next.removeTask(it.Task.ID)
	}
	ch.RemovedColumns = next.DetachedColumns(boardID)
	for _, c := range next.ColumnsForBoard(boardID) {
		delete(next.columns, c.ID)
	}
	ch.BoardIndex = next.removeBoard(boardID)
	return ch, nil
}

func updateTaskIn(next *Snapshot, taskID string, in domain.UpdateTaskInput) (Change, error) {
	prev, ok := next.tasks[taskID]
	if !ok {
		return Change{}, &domain.NotFoundError{Entity: "task", ID: taskID}
	}

	updated := prev
	var errs domain.ValidationErrors
	if in.Title != nil {
		if fe, ok := checkTaskTitle(*in.Title); !ok {
			errs = append(errs, fe)
		}
		updated.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		updated.Description = strings.TrimSpace(*in.Description)
	}
	// An unchanged status is not re-checked: orphans keep their detached column.
	if in.Status != nil && *in.Status != prev.Status {
		if fe, ok := checkTaskStatus(*in.Status, next.boards[prev.BoardID].Columns); !ok {
			errs = append(errs, fe)
		}
		updated.Status = *in.Status
	}
	if len(errs) > 0 {
		return Change{}, errs
	}

	col, ok := next.columns[updated.Status]
	if !ok {
		return Change{}, &domain.InvariantError{Detail: fmt.Sprintf("task %s is filed under missing column %s", taskID, updated.Status)}
	}
	updated.BoardID = col.BoardID

	ch := Change{Op: OpUpdateTask, Task: &updated, PrevTask: &prev}
	ch.TaskIndex = next.putTask(updated, -1)
	if updated.Status != prev.Status {
		ch.RemovedColumns = next.pruneDetached(prev.Status)
	}
	return ch, nil
}

func revertIn(next *Snapshot, ch Change) error {
	switch ch.Op {
	case OpCreateBoard:
		_, err := deleteBoardIn(next, ch.Board.ID)
		return err

	case OpUpdateBoard:
		if _, ok := next.boards[ch.PrevBoard.ID]; !ok {
			return &domain.NotFoundError{Entity: "board", ID: ch.PrevBoard.ID}
		}
		next.putBoard(*ch.PrevBoard, -1)
		for _, c := range ch.RemovedColumns {
			next.columns[c.ID] = c
		}
		for _, c := range ch.ReattachedColumns {
			next.columns[c.ID] = c
		}
		for _, c := range ch.AddedColumns {
			next.pruneDetached(c.ID)
		}
		return nil

	case OpDeleteBoard:
		if _, exists := next.boards[ch.PrevBoard.ID]; exists {
			return &domain.InvariantError{Detail: fmt.Sprintf("board %s already exists", ch.PrevBoard.ID)}
		}
		next.putBoard(*ch.PrevBoard, ch.BoardIndex)
		for _, c := range ch.RemovedColumns {
			next.columns[c.ID] = c
		}
		for _, it := range ch.RemovedTasks {
			next.putTask(it.Task, it.Index)
		}
		return nil

	case OpCreateTask:
		if _, ok := next.tasks[ch.Task.ID]; !ok {
			return &domain.NotFoundError{Entity: "task", ID: ch.Task.ID}
		}
		next.removeTask(ch.Task.ID)
		return nil

	case OpUpdateTask:
		cur, ok := next.tasks[ch.PrevTask.ID]
		if !ok {
			return &domain.NotFoundError{Entity: "task", ID: ch.PrevTask.ID}
		}
		for _, c := range ch.RemovedColumns {
			next.columns[c.ID] = c
		}
		next.putTask(*ch.PrevTask, -1)
		if cur.Status != ch.PrevTask.Status {
			next.pruneDetached(cur.Status)
		}
		return nil

	case OpDeleteTask:
		if _, exists := next.tasks[ch.PrevTask.ID]; exists {
			return &domain.InvariantError{Detail: fmt.Sprintf("task %s already exists", ch.PrevTask.ID)}
		}
		for _, c := range ch.RemovedColumns {
			next.columns[c.ID] = c
		}
		next.putTask(*ch.PrevTask, ch.TaskIndex)
		return nil
	}
	return fmt.Errorf("revert: unknown operation %q", ch.Op)
}

func duplicateColumn(i int) domain.FieldError {
	return domain.FieldError{Field: columnField(i), Kind: domain.KindDuplicateColumnTitle, Message: msgDuplicateColumn}
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
