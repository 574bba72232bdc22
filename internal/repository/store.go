package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle.
type Store interface {
	Boards() BoardRepository
	Tasks() TaskRepository
	// Transaction runs fn against repositories bound to one transaction.
	Transaction(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Boards() BoardRepository { return NewGormBoardRepository(s.db) }

func (s *gormStore) Tasks() TaskRepository { return NewGormTaskRepository(s.db) }

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
