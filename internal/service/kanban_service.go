package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
	"github.com/Tomlord1122/kanban-backend/internal/engine"
	"github.com/Tomlord1122/kanban-backend/internal/pending"
	"github.com/Tomlord1122/kanban-backend/internal/repository"
)

// ErrPersistence marks a mutation the backend rejected. The local state
// has been rolled back when it is returned.
var ErrPersistence = errors.New("backend rejected the change")

// PersistError wraps the repository error of a rolled back mutation.
type PersistError struct {
	Op  engine.Op
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

func (e *PersistError) Is(target error) bool { return target == ErrPersistence }

// MoveResult is the outcome of a drag-and-drop.
type MoveResult struct {
	Moved    bool         `json:"moved"`
	Task     *domain.Task `json:"task,omitempty"`
	Previous *domain.Task `json:"previous,omitempty"`
}

// SelectionView is the board currently shown to the user.
type SelectionView struct {
	BoardID string        `json:"boardId"`
	Board   *domain.Board `json:"board"`
}

// MutationRecorder observes the outcome of every mutation.
type MutationRecorder interface {
	ObserveMutation(op, outcome string)
}

const (
	OutcomeConfirmed = "confirmed"
	OutcomeRejected  = "rejected"
	OutcomeInvalid   = "invalid"
)

type noopRecorder struct{}

func (noopRecorder) ObserveMutation(string, string) {}

// KanbanService is the board and task API used by the HTTP layer.
type KanbanService interface {
	// Load replaces the in-memory state with the persisted one.
	Load(ctx context.Context) error
	// Seed stores sample boards when none exist. It reports whether it did.
	Seed(ctx context.Context) (bool, error)

	ListBoards(ctx context.Context) []domain.Board
	GetBoard(ctx context.Context, id string) (domain.Board, error)
	CreateBoard(ctx context.Context, in domain.CreateBoardInput) (domain.Board, error)
	UpdateBoard(ctx context.Context, id string, in domain.UpdateBoardInput) (domain.Board, error)
	DeleteBoard(ctx context.Context, id string) error
	OrphanedTasks(ctx context.Context, boardID string) ([]domain.Task, error)

	// ListTasks returns the tasks of one board, or all tasks when boardID
	// is empty.
	ListTasks(ctx context.Context, boardID string) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	CreateTask(ctx context.Context, in domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, in domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	MoveTask(ctx context.Context, drag domain.DragResult) (MoveResult, error)

	ActiveBoard(ctx context.Context) SelectionView
	SelectBoard(ctx context.Context, id string) (SelectionView, error)

	PendingMutations(ctx context.Context) ([]pending.Entry, error)
	Counts() (boards, tasks int)
}

type kanbanService struct {
	// writeMu serializes apply, persist and rollback so a revert never
	// interleaves with another mutation.
	writeMu   sync.Mutex
	engine    *engine.Engine
	selection *engine.Selection
	store     repository.Store
	ledger    pending.Ledger
	metrics   MutationRecorder
	log       logrus.FieldLogger
}

type Option func(*kanbanService)

func WithLedger(l pending.Ledger) Option {
	return func(s *kanbanService) { s.ledger = l }
}

func WithMutationRecorder(r MutationRecorder) Option {
	return func(s *kanbanService) { s.metrics = r }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *kanbanService) { s.log = l }
}

// NewKanbanService builds the service around an engine and a store. The
// ledger defaults to an in-memory one.
func NewKanbanService(eng *engine.Engine, store repository.Store, opts ...Option) KanbanService {
	s := &kanbanService{
		engine:    eng,
		selection: engine.NewSelection(),
		store:     store,
		ledger:    pending.NewMemoryLedger(),
		metrics:   noopRecorder{},
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *kanbanService) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.reload(ctx)
}

// reload replaces the engine state with the stored one. Callers hold writeMu.
func (s *kanbanService) reload(ctx context.Context) error {
	boards, detached, err := s.store.Boards().List(ctx)
	if err != nil {
		return err
	}
	tasks, err := s.store.Tasks().List(ctx)
	if err != nil {
		return err
	}
	if err := s.engine.Load(boards, detached, tasks); err != nil {
		return err
	}
	s.selection.OnLoad(s.engine.Snapshot())
	s.log.WithFields(logrus.Fields{
		"boards":       len(boards),
		"tasks":        len(tasks),
		"active_board": s.selection.ActiveID(),
	}).Info("Loaded board state")
	return nil
}

func (s *kanbanService) ListBoards(_ context.Context) []domain.Board {
	return s.engine.Snapshot().Boards()
}

func (s *kanbanService) GetBoard(_ context.Context, id string) (domain.Board, error) {
	b, ok := s.engine.Snapshot().Board(id)
	if !ok {
		return domain.Board{}, &domain.NotFoundError{Entity: "board", ID: id}
	}
	return b, nil
}

func (s *kanbanService) CreateBoard(ctx context.Context, in domain.CreateBoardInput) (domain.Board, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ch, err := s.engine.CreateBoard(in)
	if err := s.commit(ctx, ch, err, engine.OpCreateBoard); err != nil {
		return domain.Board{}, err
	}
	s.selection.OnCreate(*ch.Board)
	return *ch.Board, nil
}

func (s *kanbanService) UpdateBoard(ctx context.Context, id string, in domain.UpdateBoardInput) (domain.Board, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ch, err := s.engine.UpdateBoard(id, in)
	if err := s.commit(ctx, ch, err, engine.OpUpdateBoard); err != nil {
		return domain.Board{}, err
	}
	s.selection.OnUpdate(*ch.Board)
	return *ch.Board, nil
}

func (s *kanbanService) DeleteBoard(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ch, err := s.engine.DeleteBoard(id)
	if err := s.commit(ctx, ch, err, engine.OpDeleteBoard); err != nil {
		return err
	}
	s.selection.OnDelete(id, s.engine.Snapshot())
	return nil
}

func (s *kanbanService) OrphanedTasks(_ context.Context, boardID string) ([]domain.Task, error) {
	snap := s.engine.Snapshot()
	if _, ok := snap.Board(boardID); !ok {
		return nil, &domain.NotFoundError{Entity: "board", ID: boardID}
	}
	return snap.OrphanedTasks(boardID), nil
}

func (s *kanbanService) ListTasks(_ context.Context, boardID string) ([]domain.Task, error) {
	snap := s.engine.Snapshot()
	if boardID == "" {
		return snap.Tasks(), nil
	}
	if _, ok := snap.Board(boardID); !ok {
		return nil, &domain.NotFoundError{Entity: "board", ID: boardID}
	}
	return snap.TasksForBoard(boardID), nil
}

func (s *kanbanService) GetTask(_ context.Context, id string) (domain.Task, error) {
	t, ok := s.engine.Snapshot().Task(id)
	if !ok {
		return domain.Task{}, &domain.NotFoundError{Entity: "task", ID: id}
	}
	return t, nil
}

func (s *kanbanService) CreateTask(ctx context.Context, in domain.CreateTaskInput) (domain.Task, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ch, err := s.engine.CreateTask(in)
	if err := s.commit(ctx, ch, err, engine.OpCreateTask); err != nil {
		return domain.Task{}, err
	}
	return *ch.Task, nil
}

func (s *kanbanService) UpdateTask(ctx context.Context, id string, in domain.UpdateTaskInput) (domain.Task, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ch, err := s.engine.UpdateTask(id, in)
	if err := s.commit(ctx, ch, err, engine.OpUpdateTask); err != nil {
		return domain.Task{}, err
	}
	return *ch.Task, nil
}

func (s *kanbanService) DeleteTask(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ch, err := s.engine.DeleteTask(id)
	return s.commit(ctx, ch, err, engine.OpDeleteTask)
}

// MoveTask applies a drop. The response carries the task as it was before
// the drop so a client can restore it if it fails to deliver the move.
func (s *kanbanService) MoveTask(ctx context.Context, drag domain.DragResult) (MoveResult, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tr, err := s.engine.Move(drag)
	if err != nil {
		s.metrics.ObserveMutation(string(engine.OpUpdateTask), OutcomeInvalid)
		return MoveResult{}, err
	}
	if !tr.Applied {
		if tr.Task.ID == "" {
			return MoveResult{}, nil
		}
		return MoveResult{Task: &tr.Task, Previous: &tr.Previous}, nil
	}
	if err := s.commit(ctx, tr.Change, nil, engine.OpUpdateTask); err != nil {
		return MoveResult{}, err
	}
	return MoveResult{Moved: tr.Moved(), Task: &tr.Task, Previous: &tr.Previous}, nil
}

func (s *kanbanService) ActiveBoard(_ context.Context) SelectionView {
	b, ok := s.selection.Active()
	if !ok {
		return SelectionView{}
	}
	return SelectionView{BoardID: b.ID, Board: &b}
}

func (s *kanbanService) SelectBoard(_ context.Context, id string) (SelectionView, error) {
	b, err := s.selection.Select(id, s.engine.Snapshot())
	if err != nil {
		return SelectionView{}, err
	}
	return SelectionView{BoardID: b.ID, Board: &b}, nil
}

func (s *kanbanService) PendingMutations(ctx context.Context) ([]pending.Entry, error) {
	return s.ledger.Pending(ctx)
}

func (s *kanbanService) Counts() (boards, tasks int) {
	boards, _, tasks = s.engine.Snapshot().Counts()
	return boards, tasks
}

// commit persists a change the engine already applied. applyErr is the
// engine's error for the same call; it is recorded and returned as is.
func (s *kanbanService) commit(ctx context.Context, ch engine.Change, applyErr error, op engine.Op) error {
	if applyErr != nil {
		s.metrics.ObserveMutation(string(op), OutcomeInvalid)
		return applyErr
	}

	entry, err := s.ledger.Begin(ctx, pending.Entry{
		ID:       uuid.NewString(),
		Op:       string(ch.Op),
		EntityID: ch.EntityID(),
	})
	if err != nil {
		return s.rollback(ctx, ch, "", fmt.Errorf("record pending mutation: %w", err))
	}

	if err := s.persist(ctx, ch); err != nil {
		return s.rollback(ctx, ch, entry.ID, err)
	}

	if err := s.ledger.Confirm(ctx, entry.ID); err != nil {
		s.log.WithError(err).WithField("mutation_id", entry.ID).Warn("Failed to confirm pending mutation")
	}
	s.metrics.ObserveMutation(string(ch.Op), OutcomeConfirmed)
	return nil
}

func (s *kanbanService) rollback(ctx context.Context, ch engine.Change, entryID string, cause error) error {
	fields := logrus.Fields{"op": ch.Op, "entity_id": ch.EntityID()}
	if err := s.engine.Revert(ch); err != nil {
		s.log.WithError(err).WithFields(fields).Error("Failed to roll back rejected mutation, reloading from store")
		if err := s.reload(ctx); err != nil {
			s.log.WithError(err).WithFields(fields).Error("Failed to reload board state")
		}
	}
	if entryID != "" {
		if err := s.ledger.Reject(ctx, entryID, cause.Error()); err != nil {
			s.log.WithError(err).WithField("mutation_id", entryID).Warn("Failed to reject pending mutation")
		}
	}
	s.metrics.ObserveMutation(string(ch.Op), OutcomeRejected)
	s.log.WithError(cause).WithFields(fields).Warn("Backend rejected mutation, rolled back")
	return &PersistError{Op: ch.Op, Err: cause}
}

func (s *kanbanService) persist(ctx context.Context, ch engine.Change) error {
	snap := s.engine.Snapshot()
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		switch ch.Op {
		case engine.OpCreateBoard:
			return tx.Boards().Create(ctx, *ch.Board)
		case engine.OpUpdateBoard:
			return tx.Boards().Save(ctx, *ch.Board, snap.DetachedColumns(ch.Board.ID))
		case engine.OpDeleteBoard:
			return tx.Boards().Delete(ctx, ch.PrevBoard.ID)
		case engine.OpCreateTask:
			return tx.Tasks().Create(ctx, *ch.Task)
		case engine.OpUpdateTask:
			if err := tx.Tasks().Update(ctx, *ch.Task); err != nil {
				return err
			}
			return tx.Boards().DeleteColumns(ctx, columnIDs(ch.RemovedColumns))
		case engine.OpDeleteTask:
			if err := tx.Tasks().Delete(ctx, ch.PrevTask.ID); err != nil {
				return err
			}
			return tx.Boards().DeleteColumns(ctx, columnIDs(ch.RemovedColumns))
		}
		return fmt.Errorf("unknown operation %q", ch.Op)
	})
}

func columnIDs(cols []domain.Column) []string {
	ids := make([]string, 0, len(cols))
	for _, c := range cols {
		ids = append(ids, c.ID)
	}
	return ids
}
