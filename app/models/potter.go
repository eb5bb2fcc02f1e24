package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Potter is a marketplace seller: a ceramicist with a public page, a product
// catalog and (once onboarded) a Stripe connected account for payouts.
type Potter struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UUID   string `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	UserID uint   `gorm:"index" json:"user_id"`
	Slug   string `gorm:"type:varchar(150);uniqueIndex" json:"slug" validate:"required,min=2,max=150"`
	Name   string `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Bio    string `gorm:"type:text" json:"bio" validate:"max=2000"`
	// Location is free text shown on the potter page ("Stoke-on-Trent, UK").
	Location string `gorm:"type:varchar(150)" json:"location" validate:"max=150"`
	ImageURL string `gorm:"type:varchar(255)" json:"image_url" validate:"max=255"`
	// StripeAccountID is the opaque payout account reference issued by
	// Stripe during Connect onboarding. Set once, never cleared by the
	// settlement flow.
	StripeAccountID *string `gorm:"type:varchar(100);index" json:"-"`
	// CommissionOverridePercent, when set, takes precedence over the
	// platform default commission for this potter's sales.
	CommissionOverridePercent *float64       `gorm:"type:decimal(5,2)" json:"commission_override_percent" validate:"omitempty,gte=0,lte=100"`
	Active                    bool           `gorm:"default:true;index" json:"active"`
	Featured                  bool           `gorm:"default:false" json:"featured"`
	CreatedAt                 time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                 time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt                 gorm.DeletedAt `gorm:"index" json:"-"`

	User     *User     `gorm:"foreignKey:UserID" json:"-"`
	Products []Product `gorm:"foreignKey:PotterID" json:"-"`
}

func (p *Potter) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

func (p *Potter) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}

// IsPaymentReady reports whether the potter has a linked payout account and
// can therefore receive transfers.
func (p *Potter) IsPaymentReady() bool {
	return p.StripeAccountID != nil && *p.StripeAccountID != ""
}

// OverridePercent returns the commission override for display, 0 when none
// is set. Value receiver so templates can call it on ranged rows.
func (p Potter) OverridePercent() float64 {
	if p.CommissionOverridePercent == nil {
		return 0
	}
	return *p.CommissionOverridePercent
}
