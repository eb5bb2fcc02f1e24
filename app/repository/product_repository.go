package repository

import (
	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"gorm.io/gorm"
)

// productRepository implements the ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByUUID(uuid string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("uuid = ?", uuid).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetBySlug(potterID uint, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("potter_id = ? AND slug = ?", potterID, slug).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByPotterID(potterID uint, includeInactive bool) ([]models.Product, error) {
	var products []models.Product
	query := r.db.Where("potter_id = ?", potterID)
	if !includeInactive {
		query = query.Where("active = ?", true)
	}
	err := query.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

func (r *productRepository) GetRecent(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("active = ? AND sold = ?", true, false).
		Order("created_at DESC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepository) GetFeatured(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("active = ? AND featured = ?", true, true).Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepository) SlugExists(potterID uint, slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("potter_id = ? AND slug = ?", potterID, slug).Count(&count).Error
	return count > 0, err
}
