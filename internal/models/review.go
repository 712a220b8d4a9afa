package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Rating    int            `gorm:"not null" json:"rating"`
	Comment   string         `json:"comment"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_course" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"-"`
	CourseID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_course" json:"course_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (review *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	return
}
