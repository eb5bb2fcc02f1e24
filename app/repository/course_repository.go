package repository

import (
	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"gorm.io/gorm"
)

// courseRepository implements the CourseRepository interface
type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository instance
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) GetBySlug(slug string) (*models.Course, error) {
	var course models.Course
	err := r.db.Where("slug = ?", slug).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) GetByPotterID(potterID uint) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Where("potter_id = ?", potterID).Order("start_date ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

func (r *courseRepository) Delete(id uint) error {
	return r.db.Delete(&models.Course{}, id).Error
}

// ListActive applies the catalog filter in SQL and returns the page plus
// the total match count for pagination.
func (r *courseRepository) ListActive(f CourseFilter) ([]models.Course, int64, error) {
	query := r.db.Model(&models.Course{}).Where("active = ?", true)

	if f.Level != "" {
		query = query.Where("level = ?", f.Level)
	}
	if f.Location != "" {
		query = query.Where("location = ?", f.Location)
	}
	if f.StartAfter != nil {
		query = query.Where("start_date >= ?", *f.StartAfter)
	}
	if f.StartUntil != nil {
		query = query.Where("start_date < ?", *f.StartUntil)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.Sort {
	case "date_desc":
		query = query.Order("start_date DESC")
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	default: // date_asc
		query = query.Order("start_date ASC")
	}

	var courses []models.Course
	err := query.Offset(f.Offset).Limit(f.Limit).Find(&courses).Error
	return courses, total, err
}

// Locations returns the distinct locations of active courses for the
// catalog filter dropdown.
func (r *courseRepository) Locations() ([]string, error) {
	var locations []string
	err := r.db.Model(&models.Course{}).
		Where("active = ? AND location <> ''", true).
		Distinct().Order("location ASC").Pluck("location", &locations).Error
	return locations, err
}

func (r *courseRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Course{}).Count(&count).Error
	return count, err
}
