package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
	"github.com/Tomlord1122/kanban-backend/internal/repository"
)

var errBackendDown = errors.New("backend down")

// fakeStore is an in-memory repository.Store. Setting failWith makes
// every write fail without touching the data.
type fakeStore struct {
	mu       sync.Mutex
	boards   []domain.Board
	detached []domain.Column
	tasks    []domain.Task
	failWith error
	writes   []string
}

func (f *fakeStore) Boards() repository.BoardRepository { return fakeBoards{f} }

func (f *fakeStore) Tasks() repository.TaskRepository { return fakeTasks{f} }

func (f *fakeStore) Transaction(_ context.Context, fn func(repository.Store) error) error {
	return fn(f)
}

func (f *fakeStore) write(name string) error {
	f.writes = append(f.writes, name)
	return f.failWith
}

type fakeBoards struct{ f *fakeStore }

func (r fakeBoards) List(context.Context) ([]domain.Board, []domain.Column, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return slices.Clone(r.f.boards), slices.Clone(r.f.detached), nil
}

func (r fakeBoards) Create(_ context.Context, b domain.Board) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if err := r.f.write("boards.create"); err != nil {
		return err
	}
	r.f.boards = append(r.f.boards, b.Clone())
	return nil
}

func (r fakeBoards) Save(_ context.Context, b domain.Board, detached []domain.Column) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if err := r.f.write("boards.save"); err != nil {
		return err
	}
	i := slices.IndexFunc(r.f.boards, func(x domain.Board) bool { return x.ID == b.ID })
	if i < 0 {
		return &domain.NotFoundError{Entity: "board", ID: b.ID}
	}
	r.f.boards[i] = b.Clone()
	r.f.detached = slices.DeleteFunc(r.f.detached, func(c domain.Column) bool { return c.BoardID == b.ID })
	r.f.detached = append(r.f.detached, detached...)
	return nil
}

func (r fakeBoards) Delete(_ context.Context, id string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if err := r.f.write("boards.delete"); err != nil {
		return err
	}
	r.f.boards = slices.DeleteFunc(r.f.boards, func(b domain.Board) bool { return b.ID == id })
	r.f.detached = slices.DeleteFunc(r.f.detached, func(c domain.Column) bool { return c.BoardID == id })
	r.f.tasks = slices.DeleteFunc(r.f.tasks, func(t domain.Task) bool { return t.BoardID == id })
	return nil
}

func (r fakeBoards) DeleteColumns(_ context.Context, ids []string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if len(ids) == 0 {
		return nil
	}
	if err := r.f.write("boards.delete_columns"); err != nil {
		return err
	}
	r.f.detached = slices.DeleteFunc(r.f.detached, func(c domain.Column) bool { return slices.Contains(ids, c.ID) })
	return nil
}

type fakeTasks struct{ f *fakeStore }

func (r fakeTasks) List(context.Context) ([]domain.Task, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return slices.Clone(r.f.tasks), nil
}

func (r fakeTasks) Create(_ context.Context, t domain.Task) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if err := r.f.write("tasks.create"); err != nil {
		return err
	}
	r.f.tasks = append(r.f.tasks, t)
	return nil
}

func (r fakeTasks) Update(_ context.Context, t domain.Task) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if err := r.f.write("tasks.update"); err != nil {
		return err
	}
	i := slices.IndexFunc(r.f.tasks, func(x domain.Task) bool { return x.ID == t.ID })
	if i < 0 {
		return &domain.NotFoundError{Entity: "task", ID: t.ID}
	}
	r.f.tasks[i] = t
	return nil
}

func (r fakeTasks) Delete(_ context.Context, id string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if err := r.f.write("tasks.delete"); err != nil {
		return err
	}
	r.f.tasks = slices.DeleteFunc(r.f.tasks, func(t domain.Task) bool { return t.ID == id })
	return nil
}
