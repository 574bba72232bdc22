package service

import (
	"context"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

type seedTask struct {
	title, description string
	column             int
}

type seedBoard struct {
	title   string
	columns []string
	tasks   []seedTask
}

var sampleBoards = []seedBoard{
	{
		title:   "Project Phoenix",
		columns: domain.DefaultColumnTitles,
		tasks: []seedTask{
			{"Setup project structure", "Initialize repo, install dependencies", 0},
			{"Design UI mockups", "Create Figma designs", 0},
			{"Develop API endpoints", "Implement CRUD for boards and tasks", 1},
			{"Write unit tests", "Cover critical API functions", 2},
		},
	},
	{
		title:   "Marketing Campaign",
		columns: []string{"Ideas", "Planning", "Execution", "Review"},
		tasks: []seedTask{
			{"Brainstorm campaign slogans", "", 0},
			{"Create content calendar", "Plan posts for next month", 1},
		},
	},
}

func (s *kanbanService) Seed(ctx context.Context) (bool, error) {
	if boards, _ := s.Counts(); boards > 0 {
		return false, nil
	}

	var first string
	for _, sb := range sampleBoards {
		in := domain.CreateBoardInput{Title: sb.title}
		for _, c := range sb.columns {
			in.Columns = append(in.Columns, domain.ColumnInput{Title: c})
		}
		board, err := s.CreateBoard(ctx, in)
		if err != nil {
			return false, err
		}
		if first == "" {
			first = board.ID
		}
		for _, st := range sb.tasks {
			_, err := s.CreateTask(ctx, domain.CreateTaskInput{
				Title:       st.title,
				Description: st.description,
				Status:      board.Columns[st.column].ID,
				BoardID:     board.ID,
			})
			if err != nil {
				return false, err
			}
		}
	}
	if _, err := s.selection.Select(first, s.engine.Snapshot()); err != nil {
		return true, err
	}
	s.log.WithField("boards", len(sampleBoards)).Info("Seeded sample boards")
	return true, nil
}
