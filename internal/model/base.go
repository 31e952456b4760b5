package model

import "time"

// BaseModel holds the common columns for soft-deletable domain entities.
// Soft deletion is tracked with an explicit IsActive flag plus DeletedAt
// timestamp instead of gorm.DeletedAt, so that read queries can opt in or
// out of the active filter explicitly (restore needs to see inactive rows).
type BaseModel struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	IsActive  bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// Base exposes the embedded BaseModel so generic repositories and services
// can reach the soft-delete flags through any concrete entity type.
func (b *BaseModel) Base() *BaseModel { return b }

// Entity is satisfied by a pointer to any struct embedding BaseModel.
type Entity interface {
	Base() *BaseModel
}

// EntityPtr constrains a pointer type PT to *T while requiring the
// BaseModel accessor, which is what the generic repository needs to
// allocate values and flip soft-delete state.
type EntityPtr[T any] interface {
	*T
	Entity
}
