package models

import (
	"time"

	"gorm.io/gorm"
)

// ProviderGoogle is the only social login the gallery offers. The provider
// column stays generic so the unique index carries over unchanged if a
// second provider is ever registered.
const ProviderGoogle = "google"

// ProviderAccount links a Google sign-in identity to a gallery user.
// Tokens are stored from the login handshake only; nothing calls the
// provider's APIs afterwards.
type ProviderAccount struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"index" json:"user_id"`
	Provider       string     `gorm:"index:provider_uid,unique;type:varchar(50)" json:"provider"`
	ProviderUserID string     `gorm:"index:provider_uid,unique;type:varchar(191)" json:"provider_user_id"`
	AccessToken    string     `gorm:"type:text" json:"-"`
	RefreshToken   string     `gorm:"type:text" json:"-"`
	ExpiresAt      *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// ByProviderIdentity scopes a query to a single external identity.
func ByProviderIdentity(provider, providerUserID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("provider = ? AND provider_user_id = ?", provider, providerUserID)
	}
}
