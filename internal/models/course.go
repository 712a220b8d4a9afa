package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Image       string          `json:"image"`
	Duration    string          `json:"duration"`
	IsPaid      bool            `gorm:"not null;default:true" json:"is_paid"`
	CouponCode  *string         `json:"coupon_code,omitempty"`
	UserID      uuid.UUID       `json:"user_id"`
	User        User            `json:"-"`
	Modules     []CourseModule  `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (course *Course) BeforeCreate(tx *gorm.DB) (err error) {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	return
}

type CourseModule struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title    string    `gorm:"not null" json:"title"`
	Position int       `gorm:"not null;default:0" json:"position"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Lessons  []Lesson  `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (module *CourseModule) BeforeCreate(tx *gorm.DB) (err error) {
	if module.ID == uuid.Nil {
		module.ID = uuid.New()
	}
	return
}

type Lesson struct {
	gorm.Model
	ID        uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Title     string       `gorm:"not null" json:"title"`
	VideoURL  string       `json:"video_url"`
	Duration  string       `json:"duration"`
	Position  int          `gorm:"not null;default:0" json:"position"`
	IsPreview bool         `gorm:"not null;default:false" json:"is_preview"`
	ModuleID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"module_id"`
	Module    CourseModule `json:"-"`
}

func (lesson *Lesson) BeforeCreate(tx *gorm.DB) (err error) {
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	return
}
