package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	COURSE_LEVEL_BEGINNER     = "beginner"
	COURSE_LEVEL_INTERMEDIATE = "intermediate"
	COURSE_LEVEL_ADVANCED     = "advanced"
	COURSE_LEVEL_ALL          = "all-levels"
)

// Course is a pottery course listed by a potter. Courses are browsed and
// filtered in the public catalog but are not sold through checkout.
type Course struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	PotterID     uint           `gorm:"index" json:"potter_id"`
	Title        string         `gorm:"type:varchar(200)" json:"title" validate:"required,min=2,max=200"`
	Slug         string         `gorm:"type:varchar(200);uniqueIndex" json:"slug" validate:"required"`
	Description  string         `gorm:"type:text" json:"description" validate:"max=5000"`
	Location     string         `gorm:"type:varchar(150);index" json:"location" validate:"max=150"`
	Level        string         `gorm:"type:varchar(50);index" json:"level" validate:"oneof=beginner intermediate advanced all-levels"`
	StartDate    *time.Time     `gorm:"type:date" json:"start_date"`
	DurationDays int            `gorm:"default:1" json:"duration_days" validate:"gte=1"`
	Price        float64        `gorm:"type:decimal(10,2)" json:"price" validate:"gte=0"`
	ImagePath    string         `gorm:"type:varchar(255)" json:"image_path" validate:"max=255"`
	Active       bool           `gorm:"default:true;index" json:"active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Potter *Potter `gorm:"foreignKey:PotterID" json:"-"`
}

func (c *Course) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
