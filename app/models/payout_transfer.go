package models

import "time"

// PayoutTransfer is the audit record written after a successful transfer of
// settled funds to a potter's connected account. It mirrors the figures
// tagged onto the Stripe transfer for reconciliation.
type PayoutTransfer struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	PotterID          uint      `gorm:"index" json:"potter_id"`
	CheckoutSessionID string    `gorm:"type:varchar(191);index" json:"checkout_session_id"`
	TransferID        string    `gorm:"type:varchar(191);uniqueIndex" json:"transfer_id"`
	Currency          string    `gorm:"type:varchar(3)" json:"currency"`
	AmountSubtotal    int64     `json:"amount_subtotal"`
	CommissionPercent float64   `gorm:"type:decimal(5,2)" json:"commission_percent"`
	CommissionAmount  int64     `json:"commission_amount"`
	TransferAmount    int64     `json:"transfer_amount"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
