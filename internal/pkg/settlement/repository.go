package settlement

import (
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
)

// Repository provides the DB operations used by the settlement service.
// The webhook flow reads seller and settings state fresh on every event,
// never from cached state.
type Repository interface {
	GetActiveProductByUUID(uuid string) (*models.Product, error)
	GetActivePotterByUUID(uuid string) (*models.Potter, error)
	GetPotterByUUID(uuid string) (*models.Potter, error)
	GetPotterByID(id uint) (*models.Potter, error)
	SetPotterStripeAccount(potterID uint, accountID string) error
	DefaultCommissionPercent() (float64, error)
	CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	MarkWebhookProcessed(id uint, processingErr error) error
	CreatePayoutTransfer(t *models.PayoutTransfer) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a settlement repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetActiveProductByUUID(uuid string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("uuid = ? AND active = ?", uuid, true).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormRepository) GetActivePotterByUUID(uuid string) (*models.Potter, error) {
	var potter models.Potter
	err := r.db.Where("uuid = ? AND active = ?", uuid, true).First(&potter).Error
	if err != nil {
		return nil, err
	}
	return &potter, nil
}

func (r *gormRepository) GetPotterByUUID(uuid string) (*models.Potter, error) {
	var potter models.Potter
	err := r.db.Where("uuid = ?", uuid).First(&potter).Error
	if err != nil {
		return nil, err
	}
	return &potter, nil
}

func (r *gormRepository) GetPotterByID(id uint) (*models.Potter, error) {
	var potter models.Potter
	err := r.db.First(&potter, id).Error
	if err != nil {
		return nil, err
	}
	return &potter, nil
}

func (r *gormRepository) SetPotterStripeAccount(potterID uint, accountID string) error {
	return r.db.Model(&models.Potter{}).Where("id = ?", potterID).
		Update("stripe_account_id", accountID).Error
}

// DefaultCommissionPercent reads the platform default from the settings
// table. A missing or unparseable row falls back to the hard-coded default.
func (r *gormRepository) DefaultCommissionPercent() (float64, error) {
	var setting models.Setting
	err := r.db.Where("setting_key = ?", models.SettingKeyDefaultCommission).First(&setting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return models.FallbackCommissionPercent, nil
		}
		return 0, err
	}
	v, parseErr := strconv.ParseFloat(setting.Value, 64)
	if parseErr != nil || v < 0 || v > 100 {
		return models.FallbackCommissionPercent, nil
	}
	return v, nil
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.WebhookEvent
	if err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingErr error) error {
	now := time.Now()
	msg := ""
	if processingErr != nil {
		msg = processingErr.Error()
	}
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": msg,
	}
	return r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}

func (r *gormRepository) CreatePayoutTransfer(t *models.PayoutTransfer) error {
	return r.db.Create(t).Error
}
