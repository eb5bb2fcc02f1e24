package repository

import (
	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"gorm.io/gorm"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) ListTransfers(offset, limit int) ([]models.PayoutTransfer, error) {
	var transfers []models.PayoutTransfer
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&transfers).Error
	return transfers, err
}

func (r *paymentRepository) ListTransfersByPotter(potterID uint, offset, limit int) ([]models.PayoutTransfer, error) {
	var transfers []models.PayoutTransfer
	err := r.db.Where("potter_id = ?", potterID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&transfers).Error
	return transfers, err
}

func (r *paymentRepository) CountTransfers() (int64, error) {
	var count int64
	err := r.db.Model(&models.PayoutTransfer{}).Count(&count).Error
	return count, err
}

// TotalCommission sums the platform's cut across all recorded transfers,
// in minor units.
func (r *paymentRepository) TotalCommission() (int64, error) {
	var total int64
	err := r.db.Model(&models.PayoutTransfer{}).
		Select("COALESCE(SUM(commission_amount), 0)").Scan(&total).Error
	return total, err
}
