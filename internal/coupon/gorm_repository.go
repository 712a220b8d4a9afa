package coupon

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arifmahmud/coursebay/internal/models"
)

// GormRepository is the database-backed Repository used by the handlers.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindByNormalizedCode(ctx context.Context, code string) (*models.Coupon, error) {
	var found models.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", models.NormalizeCouponCode(code)).First(&found).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *GormRepository) IncrementUsedCount(ctx context.Context, couponID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Coupon{}).
		Where("id = ?", couponID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}
