package service

import (
	"context"
	"fmt"

	"repuestos/internal/model"
	"repuestos/internal/repository"
)

// BaseService carries the business rules every soft-deletable entity
// shares: not-found propagation and the delete/restore state machine.
// Entity-specific rules (such as name uniqueness) live in the concrete
// services composed around it.
type BaseService[T any, PT model.EntityPtr[T]] struct {
	repo repository.CrudRepository[T]
}

func NewBaseService[T any, PT model.EntityPtr[T]](repo repository.CrudRepository[T]) *BaseService[T, PT] {
	return &BaseService[T, PT]{repo: repo}
}

func (s *BaseService[T, PT]) GetAll(ctx context.Context) ([]T, error) {
	return s.repo.GetAll(ctx)
}

func (s *BaseService[T, PT]) GetPage(ctx context.Context, page, limit int) ([]T, int64, error) {
	return s.repo.GetPage(ctx, page, limit)
}

func (s *BaseService[T, PT]) GetByID(ctx context.Context, id uint) (*T, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return entity, nil
}

// Delete soft-deletes an active entity. The repository only finds active
// rows, so an already-deleted id surfaces as not found.
func (s *BaseService[T, PT]) Delete(ctx context.Context, id uint) error {
	ok, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return nil
}

// Restore flips an inactive entity back to active. Restoring an entity
// that is already active is an error, not a no-op.
func (s *BaseService[T, PT]) Restore(ctx context.Context, id uint) (*T, error) {
	entity, err := s.repo.FindAnyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	if PT(entity).Base().IsActive {
		return nil, fmt.Errorf("id %d: %w", id, ErrAlreadyActive)
	}
	return s.repo.Restore(ctx, id)
}
