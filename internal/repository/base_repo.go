package repository

import (
	"context"
	"errors"
	"time"

	"repuestos/internal/model"

	"gorm.io/gorm"
)

// CrudRepository is the generic data-access contract shared by all
// soft-deletable entities. Every read applies the active-only predicate
// except Restore and FindAnyByID, which deliberately bypass it.
//
// Not-found is signalled with nil/false, never with an error: business
// rules (and the errors they raise) belong to the service layer.
type CrudRepository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetPage(ctx context.Context, page, limit int) ([]T, int64, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	SoftDelete(ctx context.Context, id uint) (bool, error)
	Restore(ctx context.Context, id uint) (*T, error)
	FindAnyByID(ctx context.Context, id uint) (*T, error)
	Exists(ctx context.Context, query string, args ...any) (bool, error)
}

// BaseRepository implements CrudRepository over GORM. PT is the pointer
// form of T and carries the BaseModel accessor.
type BaseRepository[T any, PT model.EntityPtr[T]] struct {
	db *gorm.DB
}

func NewBaseRepository[T any, PT model.EntityPtr[T]](db *gorm.DB) *BaseRepository[T, PT] {
	return &BaseRepository[T, PT]{db: db}
}

func (r *BaseRepository[T, PT]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := GetDB(ctx, r.db).Where("is_active = ?", true).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *BaseRepository[T, PT]) GetPage(ctx context.Context, page, limit int) ([]T, int64, error) {
	var entities []T
	var total int64

	db := GetDB(ctx, r.db)
	var zero T
	if err := db.Model(&zero).Where("is_active = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Where("is_active = ?", true).Order("id").Offset(offset).Limit(limit).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

func (r *BaseRepository[T, PT]) GetByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := GetDB(ctx, r.db).First(&entity, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T, PT]) Create(ctx context.Context, entity *T) error {
	base := PT(entity).Base()
	base.IsActive = true
	base.CreatedAt = time.Now().UTC()
	base.UpdatedAt = nil
	base.DeletedAt = nil
	return GetDB(ctx, r.db).Create(entity).Error
}

func (r *BaseRepository[T, PT]) Update(ctx context.Context, entity *T) error {
	now := time.Now().UTC()
	PT(entity).Base().UpdatedAt = &now
	return GetDB(ctx, r.db).Save(entity).Error
}

// SoftDelete marks an active row inactive. An already-deleted row is not
// found again, so deleting twice reports false the second time.
func (r *BaseRepository[T, PT]) SoftDelete(ctx context.Context, id uint) (bool, error) {
	entity, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if entity == nil {
		return false, nil
	}

	base := PT(entity).Base()
	now := time.Now().UTC()
	base.IsActive = false
	base.DeletedAt = &now
	base.UpdatedAt = &now

	if err := GetDB(ctx, r.db).Save(entity).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Restore is the only write that searches ignoring the active filter.
func (r *BaseRepository[T, PT]) Restore(ctx context.Context, id uint) (*T, error) {
	entity, err := r.FindAnyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, nil
	}

	base := PT(entity).Base()
	now := time.Now().UTC()
	base.IsActive = true
	base.DeletedAt = nil
	base.UpdatedAt = &now

	if err := GetDB(ctx, r.db).Save(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// FindAnyByID looks a row up regardless of its active flag.
func (r *BaseRepository[T, PT]) FindAnyByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := GetDB(ctx, r.db).First(&entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// Exists reports whether any active row matches the given condition.
func (r *BaseRepository[T, PT]) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	var zero T
	err := GetDB(ctx, r.db).Model(&zero).Where("is_active = ?", true).Where(query, args...).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
