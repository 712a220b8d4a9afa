package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Enrollment struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_course" json:"user_id"`
	CourseID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_course" json:"course_id"`
	Course     *Course        `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	EnrolledAt time.Time      `gorm:"not null" json:"enrolled_at"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (enrollment *Enrollment) BeforeCreate(tx *gorm.DB) (err error) {
	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	return
}
