package repository

import (
	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"gorm.io/gorm"
)

// potterRepository implements the PotterRepository interface
type potterRepository struct {
	db *gorm.DB
}

// NewPotterRepository creates a new potter repository instance
func NewPotterRepository(db *gorm.DB) PotterRepository {
	return &potterRepository{db: db}
}

func (r *potterRepository) Create(potter *models.Potter) error {
	return r.db.Create(potter).Error
}

func (r *potterRepository) GetByID(id uint) (*models.Potter, error) {
	var potter models.Potter
	err := r.db.First(&potter, id).Error
	if err != nil {
		return nil, err
	}
	return &potter, nil
}

func (r *potterRepository) GetByUUID(uuid string) (*models.Potter, error) {
	var potter models.Potter
	err := r.db.Where("uuid = ?", uuid).First(&potter).Error
	if err != nil {
		return nil, err
	}
	return &potter, nil
}

func (r *potterRepository) GetBySlug(slug string) (*models.Potter, error) {
	var potter models.Potter
	err := r.db.Where("slug = ?", slug).First(&potter).Error
	if err != nil {
		return nil, err
	}
	return &potter, nil
}

func (r *potterRepository) GetByUserID(userID uint) (*models.Potter, error) {
	var potter models.Potter
	err := r.db.Where("user_id = ?", userID).First(&potter).Error
	if err != nil {
		return nil, err
	}
	return &potter, nil
}

func (r *potterRepository) Update(potter *models.Potter) error {
	return r.db.Save(potter).Error
}

func (r *potterRepository) Delete(id uint) error {
	return r.db.Delete(&models.Potter{}, id).Error
}

func (r *potterRepository) List(offset, limit int) ([]models.Potter, error) {
	var potters []models.Potter
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&potters).Error
	return potters, err
}

func (r *potterRepository) ListActive(offset, limit int) ([]models.Potter, error) {
	var potters []models.Potter
	err := r.db.Where("active = ?", true).Order("name ASC").Offset(offset).Limit(limit).Find(&potters).Error
	return potters, err
}

func (r *potterRepository) GetFeatured(limit int) ([]models.Potter, error) {
	var potters []models.Potter
	err := r.db.Where("active = ? AND featured = ?", true, true).Limit(limit).Find(&potters).Error
	return potters, err
}

func (r *potterRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Potter{}).Count(&count).Error
	return count, err
}

func (r *potterRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Potter{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SetCommissionOverride updates only the commission override column. A nil
// percent clears the override so the platform default applies again.
func (r *potterRepository) SetCommissionOverride(id uint, percent *float64) error {
	return r.db.Model(&models.Potter{}).Where("id = ?", id).
		Update("commission_override_percent", percent).Error
}

func (r *potterRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.Potter{}).Where("id = ?", id).
		Update("active", active).Error
}
