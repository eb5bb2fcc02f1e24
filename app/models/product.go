package models

import (
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultCurrency = "gbp"

// Product is a single catalog item belonging to a potter. The settlement
// flow only reads it to derive the checkout price and description.
type Product struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UUID     string `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	PotterID uint   `gorm:"index:idx_potter_slug,unique" json:"potter_id"`
	Name     string `gorm:"type:varchar(200)" json:"name" validate:"required,min=2,max=200"`
	// Slug is unique per potter, not globally.
	Slug        string `gorm:"type:varchar(200);index:idx_potter_slug,unique" json:"slug" validate:"required"`
	Description string `gorm:"type:text" json:"description" validate:"max=5000"`
	// Price is the display price in major currency units (e.g. 24.50 GBP).
	Price     float64        `gorm:"type:decimal(10,2)" json:"price" validate:"gte=0"`
	Currency  string         `gorm:"type:varchar(3);default:'gbp'" json:"currency" validate:"len=3"`
	ImagePath string         `gorm:"type:varchar(255)" json:"image_path" validate:"max=255"`
	Active    bool           `gorm:"default:true;index" json:"active"`
	Featured  bool           `gorm:"default:false" json:"featured"`
	Sold      bool           `gorm:"default:false" json:"sold"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Potter *Potter `gorm:"foreignKey:PotterID" json:"-"`
}

func (p *Product) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	return nil
}

// PriceMinorUnits converts the display price to minor currency units
// (pence). Stripe charges are denominated in minor units.
func (p *Product) PriceMinorUnits() int64 {
	return int64(math.Round(p.Price * 100))
}
