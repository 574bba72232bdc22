package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

// TaskRepository defines task persistence.
type TaskRepository interface {
	// List returns all tasks in creation order.
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, task domain.Task) error
	Update(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, id string) error
}

type gormTaskRepository struct {
	db *gorm.DB
}

func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	var rows []taskModel
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	out := make([]domain.Task, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *gormTaskRepository) Create(ctx context.Context, task domain.Task) error {
	m := toTaskModel(task)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create task %s: %w", task.ID, err)
	}
	return nil
}

func (r *gormTaskRepository) Update(ctx context.Context, task domain.Task) error {
	m := toTaskModel(task)
	res := r.db.WithContext(ctx).
		Model(&taskModel{ID: task.ID}).
		Select("title", "description", "status", "board_id").
		Updates(&m)
	if res.Error != nil {
		return fmt.Errorf("update task %s: %w", task.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return &domain.NotFoundError{Entity: "task", ID: task.ID}
	}
	return nil
}

func (r *gormTaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&taskModel{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete task %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return &domain.NotFoundError{Entity: "task", ID: id}
	}
	return nil
}
