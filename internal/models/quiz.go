package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quiz struct {
	gorm.Model
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	PassPercent int            `gorm:"not null;default:60" json:"pass_percent"`
	CourseID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Questions   []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (quiz *Quiz) BeforeCreate(tx *gorm.DB) (err error) {
	if quiz.ID == uuid.Nil {
		quiz.ID = uuid.New()
	}
	return
}

type OptionList []string

func (options OptionList) Value() (driver.Value, error) {
	return json.Marshal(options)
}

func (options *OptionList) Scan(value interface{}) error {
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, options)
	case string:
		return json.Unmarshal([]byte(data), options)
	default:
		return fmt.Errorf("unsupported option list type %T", value)
	}
}

type QuizQuestion struct {
	gorm.Model
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Prompt       string     `gorm:"not null" json:"prompt"`
	Options      OptionList `gorm:"type:jsonb;not null" json:"options"`
	CorrectIndex int        `gorm:"not null" json:"correct_index"`
	Position     int        `gorm:"not null;default:0" json:"position"`
	QuizID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"quiz_id"`
}

func (question *QuizQuestion) BeforeCreate(tx *gorm.DB) (err error) {
	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}
	return
}
