package repository

import (
	"context"
	"errors"
	"time"

	"repuestos/internal/model"

	"gorm.io/gorm"
)

// RefreshTokenRepository persists refresh tokens. Rows are looked up by
// their opaque token value; the only in-place mutations are the JwtID
// rewrite on refresh and the revocation flag.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	Update(ctx context.Context, token *model.RefreshToken) error
	Revoke(ctx context.Context, token string) (bool, error)
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	token.CreatedAt = time.Now().UTC()
	return GetDB(ctx, r.db).Create(token).Error
}

func (r *refreshTokenRepository) GetByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	var rt model.RefreshToken
	if err := GetDB(ctx, r.db).First(&rt, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

func (r *refreshTokenRepository) Update(ctx context.Context, token *model.RefreshToken) error {
	return GetDB(ctx, r.db).Save(token).Error
}

// Revoke marks a token row revoked; returns false when no such token exists.
func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.RefreshToken{}).
		Where("token = ? AND is_revoked = ?", token, false).
		Update("is_revoked", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
