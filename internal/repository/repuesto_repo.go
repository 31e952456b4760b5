package repository

import (
	"context"

	"repuestos/internal/model"

	"gorm.io/gorm"
)

// RepuestoRepository adds the name-uniqueness probe on top of the generic
// CRUD operations.
type RepuestoRepository interface {
	CrudRepository[model.Repuesto]
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
}

type repuestoRepository struct {
	*BaseRepository[model.Repuesto, *model.Repuesto]
}

func NewRepuestoRepository(db *gorm.DB) RepuestoRepository {
	return &repuestoRepository{
		BaseRepository: NewBaseRepository[model.Repuesto, *model.Repuesto](db),
	}
}

// ExistsByName reports whether an active repuesto other than excludeID
// already holds the name. Pass excludeID 0 when creating.
func (r *repuestoRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	if excludeID == 0 {
		return r.Exists(ctx, "name = ?", name)
	}
	return r.Exists(ctx, "name = ? AND id <> ?", name, excludeID)
}
