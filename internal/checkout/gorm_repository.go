package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arifmahmud/coursebay/internal/models"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) CreatePurchaseWithItems(ctx context.Context, purchase *models.Purchase, items []models.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].PurchaseID = purchase.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepository) EnsureEnrollment(ctx context.Context, userID, courseID uuid.UUID, at time.Time) error {
	enrollment := models.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: at,
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		FirstOrCreate(&enrollment).Error
}
