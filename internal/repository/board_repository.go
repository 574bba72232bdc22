package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

// BoardRepository defines board and column persistence.
type BoardRepository interface {
	// List returns boards with their attached columns, plus every
	// detached column.
	List(ctx context.Context) ([]domain.Board, []domain.Column, error)
	Create(ctx context.Context, board domain.Board) error
	// Save writes the board title and its full column set. Columns of
	// the board that are in neither list are deleted.
	Save(ctx context.Context, board domain.Board, detached []domain.Column) error
	// Delete removes the board, its columns and its tasks.
	Delete(ctx context.Context, boardID string) error
	DeleteColumns(ctx context.Context, ids []string) error
}

type gormBoardRepository struct {
	db *gorm.DB
}

func NewGormBoardRepository(db *gorm.DB) BoardRepository {
	return &gormBoardRepository{db: db}
}

func (r *gormBoardRepository) List(ctx context.Context) ([]domain.Board, []domain.Column, error) {
	var boards []boardModel
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&boards).Error; err != nil {
		return nil, nil, fmt.Errorf("list boards: %w", err)
	}
	var columns []columnModel
	if err := r.db.WithContext(ctx).Order("board_id, position, id").Find(&columns).Error; err != nil {
		return nil, nil, fmt.Errorf("list columns: %w", err)
	}
	out, detached := assembleBoards(boards, columns)
	return out, detached, nil
}

func (r *gormBoardRepository) Create(ctx context.Context, board domain.Board) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&boardModel{ID: board.ID, Title: board.Title}).Error; err != nil {
			return fmt.Errorf("create board %s: %w", board.ID, err)
		}
		columns := toColumnModels(board.ID, board.Columns, nil)
		if len(columns) == 0 {
			return nil
		}
		if err := tx.Create(&columns).Error; err != nil {
			return fmt.Errorf("create columns of board %s: %w", board.ID, err)
		}
		return nil
	})
}

func (r *gormBoardRepository) Save(ctx context.Context, board domain.Board, detached []domain.Column) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&boardModel{ID: board.ID}).Update("title", board.Title)
		if res.Error != nil {
			return fmt.Errorf("update board %s: %w", board.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return &domain.NotFoundError{Entity: "board", ID: board.ID}
		}

		columns := toColumnModels(board.ID, board.Columns, detached)
		keep := make([]string, 0, len(columns))
		for _, c := range columns {
			keep = append(keep, c.ID)
		}
		del := tx.Where("board_id = ?", board.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&columnModel{}).Error; err != nil {
			return fmt.Errorf("delete dropped columns of board %s: %w", board.ID, err)
		}
		if len(columns) == 0 {
			return nil
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "position", "detached"}),
		}).Create(&columns).Error
		if err != nil {
			return fmt.Errorf("save columns of board %s: %w", board.ID, err)
		}
		return nil
	})
}

func (r *gormBoardRepository) Delete(ctx context.Context, boardID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Delete(&taskModel{}).Error; err != nil {
			return fmt.Errorf("delete tasks of board %s: %w", boardID, err)
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&columnModel{}).Error; err != nil {
			return fmt.Errorf("delete columns of board %s: %w", boardID, err)
		}
		res := tx.Delete(&boardModel{}, "id = ?", boardID)
		if res.Error != nil {
			return fmt.Errorf("delete board %s: %w", boardID, res.Error)
		}
		if res.RowsAffected == 0 {
			return &domain.NotFoundError{Entity: "board", ID: boardID}
		}
		return nil
	})
}

func (r *gormBoardRepository) DeleteColumns(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&columnModel{}).Error; err != nil {
		return fmt.Errorf("delete columns: %w", err)
	}
	return nil
}
