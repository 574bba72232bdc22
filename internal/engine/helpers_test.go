package engine

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return New(WithIDSource(NewSequentialSource()), WithLogger(logger))
}

func columnInputs(titles ...string) []domain.ColumnInput {
	out := make([]domain.ColumnInput, 0, len(titles))
	for _, t := range titles {
		out = append(out, domain.ColumnInput{Title: t})
	}
	return out
}

func mustCreateBoard(t *testing.T, e *Engine, title string, columns ...string) domain.Board {
	t.Helper()
	ch, err := e.CreateBoard(domain.CreateBoardInput{Title: title, Columns: columnInputs(columns...)})
	require.NoError(t, err)
	require.NotNil(t, ch.Board)
	return *ch.Board
}

func mustCreateTask(t *testing.T, e *Engine, title, status string) domain.Task {
	t.Helper()
	ch, err := e.CreateTask(domain.CreateTaskInput{Title: title, Status: status})
	require.NoError(t, err)
	require.NotNil(t, ch.Task)
	return *ch.Task
}

// state captures the observable content of a snapshot for equality checks.
type state struct {
	Boards  []domain.Board
	Tasks   []domain.Task
	Columns map[string][]domain.Column
}

func captureState(snap *Snapshot) state {
	st := state{Boards: snap.Boards(), Tasks: snap.Tasks(), Columns: map[string][]domain.Column{}}
	for _, b := range st.Boards {
		st.Columns[b.ID] = snap.ColumnsForBoard(b.ID)
	}
	return st
}

func requireValidationKinds(t *testing.T, err error, kinds ...domain.ErrorKind) domain.ValidationErrors {
	t.Helper()
	require.ErrorIs(t, err, domain.ErrValidation)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	for _, k := range kinds {
		require.True(t, verrs.Has(k), "expected %s in %v", k, verrs)
	}
	return verrs
}
