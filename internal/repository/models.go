package repository

import (
	"gorm.io/gorm"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

// boardModel is the boards table. Boards are listed in creation order.
type boardModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	Title     string `gorm:"not null"`
	CreatedAt int64  `gorm:"autoCreateTime:nano;index"`
}

func (boardModel) TableName() string { return "boards" }

// columnModel is the columns table. Detached columns were dropped from
// their board while tasks still referenced them.
type columnModel struct {
	ID       string `gorm:"primaryKey;size:64"`
	BoardID  string `gorm:"size:64;not null;index"`
	Title    string `gorm:"not null"`
	Position int    `gorm:"not null;default:0"`
	Detached bool   `gorm:"not null;default:false"`
}

func (columnModel) TableName() string { return "board_columns" }

type taskModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"size:64;not null;index"`
	BoardID     string `gorm:"size:64;not null;index"`
	CreatedAt   int64  `gorm:"autoCreateTime:nano;index"`
}

func (taskModel) TableName() string { return "tasks" }

// AutoMigrate creates or updates the tables used by the repositories.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&boardModel{}, &columnModel{}, &taskModel{})
}

func toColumnModels(boardID string, attached, detached []domain.Column) []columnModel {
	out := make([]columnModel, 0, len(attached)+len(detached))
	for i, c := range attached {
		out = append(out, columnModel{ID: c.ID, BoardID: boardID, Title: c.Title, Position: i})
	}
	for _, c := range detached {
		out = append(out, columnModel{ID: c.ID, BoardID: boardID, Title: c.Title, Position: -1, Detached: true})
	}
	return out
}

func (m columnModel) toDomain() domain.Column {
	return domain.Column{ID: m.ID, Title: m.Title, BoardID: m.BoardID}
}

func toTaskModel(t domain.Task) taskModel {
	return taskModel{ID: t.ID, Title: t.Title, Description: t.Description, Status: t.Status, BoardID: t.BoardID}
}

func (m taskModel) toDomain() domain.Task {
	return domain.Task{ID: m.ID, Title: m.Title, Description: m.Description, Status: m.Status, BoardID: m.BoardID}
}

// assembleBoards attaches columns to their boards in position order and
// returns the detached columns separately. Columns must be sorted by
// position.
func assembleBoards(boards []boardModel, columns []columnModel) ([]domain.Board, []domain.Column) {
	byID := make(map[string]int, len(boards))
	out := make([]domain.Board, len(boards))
	for i, b := range boards {
		byID[b.ID] = i
		out[i] = domain.Board{ID: b.ID, Title: b.Title, Columns: []domain.Column{}}
	}
	detached := make([]domain.Column, 0)
	for _, c := range columns {
		i, ok := byID[c.BoardID]
		if !ok {
			continue
		}
		if c.Detached {
			detached = append(detached, c.toDomain())
			continue
		}
		out[i].Columns = append(out[i].Columns, c.toDomain())
	}
	return out, detached
}
