package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

// Transition is the outcome of a drop. Previous is the task before the
// drop and is what a caller restores if the backend rejects the move.
type Transition struct {
	Applied  bool
	Task     domain.Task
	Previous domain.Task
	Change   Change
}

// Moved reports whether the task changed column.
func (t Transition) Moved() bool {
	return t.Applied && t.Task.Status != t.Previous.Status
}

// Move files the dragged task under the destination column. Dropping
// outside any column, or back onto the task's own slot, changes nothing.
// Only column membership is stored; the position inside the destination
// column is left to the display order.
func (e *Engine) Move(drag domain.DragResult) (Transition, error) {
	if drag.DestinationColumnID == nil {
		return Transition{}, nil
	}
	dest := *drag.DestinationColumnID

	var tr Transition
	ch, err := e.apply(func(next *Snapshot) (Change, error) {
		task, ok := next.tasks[drag.TaskID]
		if !ok {
			return Change{}, &domain.NotFoundError{Entity: "task", ID: drag.TaskID}
		}
		tr.Task, tr.Previous = task, task

		if drag.SourceColumnID != "" && drag.SourceColumnID != task.Status {
			e.log.WithFields(logrus.Fields{
				"task_id": task.ID,
				"source":  drag.SourceColumnID,
				"status":  task.Status,
			}).Warn("Drag source column does not match stored task status")
		}
		if dest == task.Status && drag.DestinationIndex == next.columnIndex(task.ID) {
			return Change{}, nil
		}
		return updateTaskIn(next, task.ID, domain.UpdateTaskInput{Status: &dest})
	})
	if err != nil {
		return Transition{}, err
	}
	if ch.Op == "" {
		return tr, nil
	}
	return Transition{Applied: true, Task: *ch.Task, Previous: *ch.PrevTask, Change: ch}, nil
}
