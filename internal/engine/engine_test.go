package engine

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

func TestCreateBoard(t *testing.T) {
	e := newTestEngine(t)

	ch, err := e.CreateBoard(domain.CreateBoardInput{
		Title:   "  Eng ",
		Columns: columnInputs("To Do", " In Progress", "Done"),
	})
	require.NoError(t, err)

	assert.Equal(t, OpCreateBoard, ch.Op)
	assert.Equal(t, 0, ch.BoardIndex)
	board := *ch.Board
	assert.Equal(t, "board-1", board.ID)
	assert.Equal(t, "Eng", board.Title)
	require.Len(t, board.Columns, 3)
	for i, want := range []string{"To Do", "In Progress", "Done"} {
		assert.Equal(t, want, board.Columns[i].Title)
		assert.Equal(t, board.ID, board.Columns[i].BoardID)
	}

	stored, ok := e.Snapshot().Board(board.ID)
	require.True(t, ok)
	assert.Equal(t, board, stored)
}

func TestCreateBoardRejected(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		columns []string
		kinds   []domain.ErrorKind
	}{
		{name: "duplicate column titles", title: "Eng", columns: []string{"To Do", "to do"}, kinds: []domain.ErrorKind{domain.KindDuplicateColumnTitle}},
		{name: "no columns", title: "Eng", columns: []string{}, kinds: []domain.ErrorKind{domain.KindNoColumns}},
		{name: "empty title", title: "", columns: []string{"To Do"}, kinds: []domain.ErrorKind{domain.KindEmptyTitle}},
		{name: "empty column title", title: "Eng", columns: []string{"To Do", "  "}, kinds: []domain.ErrorKind{domain.KindEmptyColumnTitle}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			before := e.Snapshot()

			_, err := e.CreateBoard(domain.CreateBoardInput{Title: tt.title, Columns: columnInputs(tt.columns...)})
			requireValidationKinds(t, err, tt.kinds...)
			assert.Same(t, before, e.Snapshot())
		})
	}
}

func TestCreateTaskDerivesBoard(t *testing.T) {
	e := newTestEngine(t)
	eng := mustCreateBoard(t, e, "Eng", "To Do", "Done")
	mustCreateBoard(t, e, "Ops", "Backlog")

	ch, err := e.CreateTask(domain.CreateTaskInput{
		Title:       " Ship v1 ",
		Description: " cut the release ",
		Status:      eng.Columns[0].ID,
	})
	require.NoError(t, err)

	task := *ch.Task
	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "Ship v1", task.Title)
	assert.Equal(t, "cut the release", task.Description)
	assert.Equal(t, eng.ID, task.BoardID)

	col, ok := e.Snapshot().Column(task.Status)
	require.True(t, ok)
	assert.Equal(t, task.BoardID, col.BoardID)
}

func TestCreateTaskRejected(t *testing.T) {
	e := newTestEngine(t)
	eng := mustCreateBoard(t, e, "Eng", "To Do")
	ops := mustCreateBoard(t, e, "Ops", "Backlog")

	tests := []struct {
		name  string
		in    domain.CreateTaskInput
		kinds []domain.ErrorKind
	}{
		{
			name:  "missing status",
			in:    domain.CreateTaskInput{Title: "Ship v1"},
			kinds: []domain.ErrorKind{domain.KindMissingStatus},
		},
		{
			name:  "unknown column",
			in:    domain.CreateTaskInput{Title: "Ship v1", Status: "col-404"},
			kinds: []domain.ErrorKind{domain.KindMissingStatus},
		},
		{
			name:  "board hint disagrees with column",
			in:    domain.CreateTaskInput{Title: "Ship v1", Status: eng.Columns[0].ID, BoardID: ops.ID},
			kinds: []domain.ErrorKind{domain.KindMissingStatus},
		},
		{
			name:  "blank title and missing status together",
			in:    domain.CreateTaskInput{Title: " "},
			kinds: []domain.ErrorKind{domain.KindEmptyTitle, domain.KindMissingStatus},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := e.Snapshot()
			_, err := e.CreateTask(tt.in)
			verrs := requireValidationKinds(t, err, tt.kinds...)
			assert.Len(t, verrs, len(tt.kinds))
			assert.Same(t, before, e.Snapshot())
		})
	}
}

func TestUpdateTask(t *testing.T) {
	e := newTestEngine(t)
	eng := mustCreateBoard(t, e, "Eng", "To Do", "Done")
	ops := mustCreateBoard(t, e, "Ops", "Backlog")
	task := mustCreateTask(t, e, "Ship v1", eng.Columns[0].ID)

	t.Run("description only keeps status and board", func(t *testing.T) {
		ch, err := e.UpdateTask(task.ID, domain.UpdateTaskInput{Description: domain.StringPtr("notes")})
		require.NoError(t, err)
		assert.Equal(t, "notes", ch.Task.Description)
		assert.Equal(t, task.Status, ch.Task.Status)
		assert.Equal(t, task.BoardID, ch.Task.BoardID)
		assert.Equal(t, task, *ch.PrevTask)
	})

	t.Run("status change re-derives board", func(t *testing.T) {
		ch, err := e.UpdateTask(task.ID, domain.UpdateTaskInput{Status: domain.StringPtr(eng.Columns[1].ID), BoardID: ops.ID})
		require.NoError(t, err)
		assert.Equal(t, eng.Columns[1].ID, ch.Task.Status)
		assert.Equal(t, eng.ID, ch.Task.BoardID)
	})

	t.Run("column of another board is rejected", func(t *testing.T) {
		before := e.Snapshot()
		_, err := e.UpdateTask(task.ID, domain.UpdateTaskInput{Status: domain.StringPtr(ops.Columns[0].ID)})
		requireValidationKinds(t, err, domain.KindMissingStatus)
		assert.Same(t, before, e.Snapshot())
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		_, err := e.UpdateTask(task.ID, domain.UpdateTaskInput{Title: domain.StringPtr("  ")})
		requireValidationKinds(t, err, domain.KindEmptyTitle)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := e.UpdateTask("task-404", domain.UpdateTaskInput{Title: domain.StringPtr("x")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteBoardCascades(t *testing.T) {
	e := newTestEngine(t)
	eng := mustCreateBoard(t, e, "Eng", "To Do", "Done")
	ops := mustCreateBoard(t, e, "Ops", "Backlog")
	mustCreateTask(t, e, "Ship v1", eng.Columns[0].ID)
	mustCreateTask(t, e, "Page on-call", ops.Columns[0].ID)
	mustCreateTask(t, e, "Write docs", eng.Columns[1].ID)

	ch, err := e.DeleteBoard(eng.ID)
	require.NoError(t, err)
	assert.Len(t, ch.RemovedTasks, 2)
	assert.Equal(t, 0, ch.RemovedTasks[0].Index)
	assert.Equal(t, 2, ch.RemovedTasks[1].Index)

	snap := e.Snapshot()
	assert.Empty(t, snap.TasksForBoard(eng.ID))
	assert.Empty(t, snap.ColumnsForBoard(eng.ID))
	for _, c := range eng.Columns {
		assert.Empty(t, snap.TasksForColumn(c.ID))
	}
	assert.Len(t, snap.TasksForBoard(ops.ID), 1)

	_, err = e.DeleteBoard(eng.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestDeleteTask(t *testing.T) {
	e := newTestEngine(t)
	eng := mustCreateBoard(t, e, "Eng", "To Do")
	task := mustCreateTask(t, e, "Ship v1", eng.Columns[0].ID)

	ch, err := e.DeleteTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, *ch.PrevTask)
	assert.Empty(t, e.Snapshot().Tasks())

	_, err = e.DeleteTask(task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateBoardColumns(t *testing.T) {
	e := newTestEngine(t)
	board := mustCreateBoard(t, e, "Eng", "To Do", "Review", "Done")
	todo, review, done := board.Columns[0], board.Columns[1], board.Columns[2]
	task := mustCreateTask(t, e, "Ship v1", done.ID)

	// Rename To Do, drop Review (no tasks) and Done (one task), add QA.
	ch, err := e.UpdateBoard(board.ID, domain.UpdateBoardInput{
		Title: "Engineering",
		Columns: []domain.ColumnInput{
			{ID: todo.ID, Title: "Backlog", BoardID: board.ID},
			{Title: "QA"},
		},
	})
	require.NoError(t, err)

	updated := *ch.Board
	assert.Equal(t, "Engineering", updated.Title)
	require.Len(t, updated.Columns, 2)
	assert.Equal(t, todo.ID, updated.Columns[0].ID)
	assert.Equal(t, "Backlog", updated.Columns[0].Title)
	assert.NotEqual(t, review.ID, updated.Columns[1].ID)
	assert.Equal(t, board.ID, updated.Columns[1].BoardID)
	assert.Equal(t, []domain.Column{updated.Columns[1]}, ch.AddedColumns)
	assert.Equal(t, []domain.Column{done}, ch.DetachedColumns)

	snap := e.Snapshot()
	_, ok := snap.Column(review.ID)
	assert.False(t, ok, "empty dropped column is purged")
	assert.Equal(t, []domain.Column{done}, snap.DetachedColumns(board.ID))
	assert.Equal(t, []domain.Task{task}, snap.OrphanedTasks(board.ID))
	got, ok := snap.Task(task.ID)
	require.True(t, ok)
	assert.Equal(t, task, got, "tasks of a dropped column are kept")

	t.Run("re-adding the title re-attaches the column", func(t *testing.T) {
		ch, err := e.UpdateBoard(board.ID, domain.UpdateBoardInput{
			Title:   "Engineering",
			Columns: append(idInputs(updated.Columns), domain.ColumnInput{Title: "done"}),
		})
		require.NoError(t, err)
		require.Len(t, ch.Board.Columns, 3)
		assert.Equal(t, done.ID, ch.Board.Columns[2].ID)
		assert.Equal(t, "done", ch.Board.Columns[2].Title)
		assert.Empty(t, ch.AddedColumns)
		assert.Equal(t, []domain.Column{done}, ch.ReattachedColumns)
		assert.Empty(t, e.Snapshot().OrphanedTasks(board.ID))
		assert.Equal(t, []domain.Task{task}, e.Snapshot().TasksForColumn(done.ID))

		require.NoError(t, e.Revert(ch))
		assert.Equal(t, []domain.Column{done}, e.Snapshot().DetachedColumns(board.ID))
		assert.Equal(t, []domain.Task{task}, e.Snapshot().OrphanedTasks(board.ID))

		_, err = e.UpdateBoard(board.ID, domain.UpdateBoardInput{
			Title:   "Engineering",
			Columns: append(idInputs(updated.Columns), domain.ColumnInput{Title: "done"}),
		})
		require.NoError(t, err)
	})

	t.Run("renaming onto a detached title is a duplicate", func(t *testing.T) {
		_, err := e.UpdateBoard(board.ID, domain.UpdateBoardInput{Title: "Engineering", Columns: idInputs(updated.Columns)})
		require.NoError(t, err)

		renamed := idInputs(updated.Columns)
		renamed[1].Title = "DONE"
		_, err = e.UpdateBoard(board.ID, domain.UpdateBoardInput{Title: "Engineering", Columns: renamed})
		verrs := requireValidationKinds(t, err, domain.KindDuplicateColumnTitle)
		assert.Len(t, verrs.Field("columns[1].title"), 1)
	})

	t.Run("column of another board", func(t *testing.T) {
		other := mustCreateBoard(t, e, "Ops", "Backlog")
		_, err := e.UpdateBoard(board.ID, domain.UpdateBoardInput{
			Title:   "Engineering",
			Columns: []domain.ColumnInput{{ID: other.Columns[0].ID, Title: "Backlog"}},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown board", func(t *testing.T) {
		_, err := e.UpdateBoard("board-404", domain.UpdateBoardInput{Title: "x", Columns: columnInputs("a")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("validation runs before lookup", func(t *testing.T) {
		_, err := e.UpdateBoard("board-404", domain.UpdateBoardInput{Title: "x"})
		requireValidationKinds(t, err, domain.KindNoColumns)
	})
}

func TestUpdateBoardMatchesDroppedColumnsByTitle(t *testing.T) {
	e := newTestEngine(t)
	board := mustCreateBoard(t, e, "Eng", "To Do", "Done")
	todo, done := board.Columns[0], board.Columns[1]
	mustCreateTask(t, e, "Ship v1", done.ID)

	t.Run("an id-less column keeps the same-titled column", func(t *testing.T) {
		ch, err := e.UpdateBoard(board.ID, domain.UpdateBoardInput{
			Title:   "Eng",
			Columns: []domain.ColumnInput{{ID: todo.ID, Title: "To Do"}, {Title: "DONE"}},
		})
		require.NoError(t, err)
		assert.Equal(t, done.ID, ch.Board.Columns[1].ID)
		assert.Equal(t, "DONE", ch.Board.Columns[1].Title)
		assert.Empty(t, ch.AddedColumns)
		assert.Empty(t, ch.DetachedColumns)
		assert.Empty(t, ch.ReattachedColumns)
	})

	t.Run("renaming onto a dropped column that keeps tasks", func(t *testing.T) {
		before := e.Snapshot()
		_, err := e.UpdateBoard(board.ID, domain.UpdateBoardInput{
			Title:   "Eng",
			Columns: []domain.ColumnInput{{ID: todo.ID, Title: "Done"}},
		})
		verrs := requireValidationKinds(t, err, domain.KindDuplicateColumnTitle)
		assert.Len(t, verrs.Field("columns[0].title"), 1)
		assert.Same(t, before, e.Snapshot())
	})

	t.Run("renaming onto a dropped empty column", func(t *testing.T) {
		_, err := e.UpdateBoard(board.ID, domain.UpdateBoardInput{
			Title:   "Eng",
			Columns: []domain.ColumnInput{{ID: done.ID, Title: "To Do"}},
		})
		require.NoError(t, err)
		_, ok := e.Snapshot().Column(todo.ID)
		assert.False(t, ok)
	})
}

func TestDetachedColumnPrunedWhenLastTaskLeaves(t *testing.T) {
	e := newTestEngine(t)
	board := mustCreateBoard(t, e, "Eng", "To Do", "Done")
	todo, done := board.Columns[0], board.Columns[1]
	first := mustCreateTask(t, e, "first", done.ID)
	second := mustCreateTask(t, e, "second", done.ID)

	_, err := e.UpdateBoard(board.ID, domain.UpdateBoardInput{Title: "Eng", Columns: idInputs([]domain.Column{todo})})
	require.NoError(t, err)
	require.Len(t, e.Snapshot().OrphanedTasks(board.ID), 2)

	ch, err := e.UpdateTask(first.ID, domain.UpdateTaskInput{Status: domain.StringPtr(todo.ID)})
	require.NoError(t, err)
	assert.Empty(t, ch.RemovedColumns)

	ch, err = e.DeleteTask(second.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Column{done}, ch.RemovedColumns)
	_, ok := e.Snapshot().Column(done.ID)
	assert.False(t, ok)
}

func TestRevertRestoresPreviousState(t *testing.T) {
	seed := func(t *testing.T) (*Engine, domain.Board, domain.Task) {
		e := newTestEngine(t)
		board := mustCreateBoard(t, e, "Eng", "To Do", "Done")
		mustCreateBoard(t, e, "Ops", "Backlog")
		task := mustCreateTask(t, e, "Ship v1", board.Columns[0].ID)
		mustCreateTask(t, e, "Write docs", board.Columns[1].ID)
		return e, board, task
	}

	tests := []struct {
		name    string
		prepare func(t *testing.T, e *Engine, board domain.Board)
		mutate  func(t *testing.T, e *Engine, board domain.Board, task domain.Task) (Change, error)
	}{
		{
			name: "create board",
			mutate: func(t *testing.T, e *Engine, _ domain.Board, _ domain.Task) (Change, error) {
				return e.CreateBoard(domain.CreateBoardInput{Title: "New", Columns: columnInputs("A")})
			},
		},
		{
			name: "update board dropping a used column",
			mutate: func(t *testing.T, e *Engine, board domain.Board, _ domain.Task) (Change, error) {
				return e.UpdateBoard(board.ID, domain.UpdateBoardInput{
					Title:   "Renamed",
					Columns: []domain.ColumnInput{{ID: board.Columns[1].ID, Title: "Shipped"}, {Title: "QA"}},
				})
			},
		},
		{
			name: "update board re-attaching a detached column by id",
			prepare: func(t *testing.T, e *Engine, board domain.Board) {
				_, err := e.UpdateBoard(board.ID, domain.UpdateBoardInput{Title: "Eng", Columns: idInputs(board.Columns[:1])})
				require.NoError(t, err)
			},
			mutate: func(t *testing.T, e *Engine, board domain.Board, _ domain.Task) (Change, error) {
				ch, err := e.UpdateBoard(board.ID, domain.UpdateBoardInput{
					Title: "Eng",
					Columns: []domain.ColumnInput{
						{ID: board.Columns[0].ID, Title: "Backlog"},
						{ID: board.Columns[1].ID, Title: "To Do"},
					},
				})
				assert.Equal(t, []domain.Column{board.Columns[1]}, ch.ReattachedColumns)
				return ch, err
			},
		},
		{
			name: "delete board",
			mutate: func(t *testing.T, e *Engine, board domain.Board, _ domain.Task) (Change, error) {
				return e.DeleteBoard(board.ID)
			},
		},
		{
			name: "create task",
			mutate: func(t *testing.T, e *Engine, board domain.Board, _ domain.Task) (Change, error) {
				return e.CreateTask(domain.CreateTaskInput{Title: "Extra", Status: board.Columns[1].ID})
			},
		},
		{
			name: "update task",
			mutate: func(t *testing.T, e *Engine, board domain.Board, task domain.Task) (Change, error) {
				return e.UpdateTask(task.ID, domain.UpdateTaskInput{Title: domain.StringPtr("Ship v2"), Status: domain.StringPtr(board.Columns[1].ID)})
			},
		},
		{
			name: "delete task",
			mutate: func(t *testing.T, e *Engine, _ domain.Board, task domain.Task) (Change, error) {
				return e.DeleteTask(task.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, board, task := seed(t)
			if tt.prepare != nil {
				tt.prepare(t, e, board)
			}
			before := captureState(e.Snapshot())

			ch, err := tt.mutate(t, e, board, task)
			require.NoError(t, err)
			require.NotEqual(t, before, captureState(e.Snapshot()))

			require.NoError(t, e.Revert(ch))
			assert.Equal(t, before, captureState(e.Snapshot()))
		})
	}
}

func TestUpdateOrphanedTaskResubmittingItsStatus(t *testing.T) {
	e := newTestEngine(t)
	board := mustCreateBoard(t, e, "Eng", "To Do", "Done")
	task := mustCreateTask(t, e, "Ship v1", board.Columns[1].ID)
	_, err := e.UpdateBoard(board.ID, domain.UpdateBoardInput{Title: "Eng", Columns: idInputs(board.Columns[:1])})
	require.NoError(t, err)

	ch, err := e.UpdateTask(task.ID, domain.UpdateTaskInput{
		ID:          task.ID,
		Title:       domain.StringPtr(task.Title),
		Description: domain.StringPtr("  after the freeze "),
		Status:      domain.StringPtr(task.Status),
		BoardID:     task.BoardID,
	})
	require.NoError(t, err)
	assert.Equal(t, "after the freeze", ch.Task.Description)
	assert.Equal(t, board.Columns[1].ID, ch.Task.Status)
	assert.Empty(t, ch.RemovedColumns)
	assert.Equal(t, []domain.Task{*ch.Task}, e.Snapshot().OrphanedTasks(board.ID))

	// Moving to a column the board no longer shows is still rejected.
	other := mustCreateTask(t, e, "Plan", board.Columns[0].ID)
	_, err = e.UpdateTask(other.ID, domain.UpdateTaskInput{Status: domain.StringPtr(board.Columns[1].ID)})
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has(domain.KindMissingStatus))
}

func TestRevertAfterOrphanPurge(t *testing.T) {
	e := newTestEngine(t)
	board := mustCreateBoard(t, e, "Eng", "To Do", "Done")
	task := mustCreateTask(t, e, "Ship v1", board.Columns[1].ID)
	_, err := e.UpdateBoard(board.ID, domain.UpdateBoardInput{Title: "Eng", Columns: idInputs(board.Columns[:1])})
	require.NoError(t, err)
	before := captureState(e.Snapshot())

	ch, err := e.DeleteTask(task.ID)
	require.NoError(t, err)
	require.Len(t, ch.RemovedColumns, 1)

	require.NoError(t, e.Revert(ch))
	assert.Equal(t, before, captureState(e.Snapshot()))
	assert.Equal(t, []domain.Task{task}, e.Snapshot().OrphanedTasks(board.ID))
}

func TestRevertUnknownChange(t *testing.T) {
	e := newTestEngine(t)
	assert.Error(t, e.Revert(Change{}))
}

func TestLoad(t *testing.T) {
	boards := []domain.Board{{
		ID:    "board-1",
		Title: "Project Phoenix",
		Columns: []domain.Column{
			{ID: "col-1-1", Title: "To Do", BoardID: "board-1"},
			{ID: "col-1-2", Title: "Done", BoardID: "board-1"},
		},
	}}
	tasks := []domain.Task{{ID: "task-1", Title: "Setup", Status: "col-1-1", BoardID: "board-1"}}

	t.Run("consistent state is published", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.Load(boards, nil, tasks))
		assert.Equal(t, boards, e.Snapshot().Boards())
		assert.Equal(t, tasks, e.Snapshot().TasksForColumn("col-1-1"))

		// Sequential ids skip the ones already in use.
		created := mustCreateBoard(t, e, "Next", "A")
		assert.Equal(t, "board-2", created.ID)
	})

	t.Run("task on another board's column is rejected", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		e := New(WithIDSource(NewSequentialSource()), WithLogger(logger))
		broken := []domain.Task{{ID: "task-1", Title: "Setup", Status: "col-1-1", BoardID: "board-9"}}

		err := e.Load(boards, nil, broken)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
		assert.Equal(t, domain.KindInvariantViolation, domain.KindOf(err))
		assert.Empty(t, e.Snapshot().Boards())
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	})

	t.Run("duplicate column id is rejected", func(t *testing.T) {
		e := newTestEngine(t)
		dup := []domain.Column{{ID: "col-1-1", Title: "Other", BoardID: "board-1"}}
		assert.ErrorIs(t, e.Load(boards, dup, nil), domain.ErrInvariantViolation)
	})
}

func TestExhaustedIDSourceIsAnInvariantViolation(t *testing.T) {
	logger, hook := test.NewNullLogger()
	e := New(WithIDSource(IDSourceFunc(func(string) string { return "fixed" })), WithLogger(logger))

	_, err := e.CreateBoard(domain.CreateBoardInput{Title: "Eng", Columns: columnInputs("To Do", "Done")})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.Empty(t, e.Snapshot().Boards())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestUUIDSource(t *testing.T) {
	src := UUIDSource{}
	a, b := src.NewID(KindTask), src.NewID(KindTask)
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func idInputs(cols []domain.Column) []domain.ColumnInput {
	out := make([]domain.ColumnInput, 0, len(cols))
	for _, c := range cols {
		out = append(out, domain.ColumnInput{ID: c.ID, Title: c.Title, BoardID: c.BoardID})
	}
	return out
}
