package repository

import (
	"time"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// PotterRepository defines the interface for potter-related database operations
type PotterRepository interface {
	Create(potter *models.Potter) error
	GetByID(id uint) (*models.Potter, error)
	GetByUUID(uuid string) (*models.Potter, error)
	GetBySlug(slug string) (*models.Potter, error)
	GetByUserID(userID uint) (*models.Potter, error)
	Update(potter *models.Potter) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Potter, error)
	ListActive(offset, limit int) ([]models.Potter, error)
	GetFeatured(limit int) ([]models.Potter, error)
	Count() (int64, error)
	SlugExists(slug string) (bool, error)
	SetCommissionOverride(id uint, percent *float64) error
	SetActive(id uint, active bool) error
}

// ProductRepository defines the interface for product-related database operations
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetByUUID(uuid string) (*models.Product, error)
	GetBySlug(potterID uint, slug string) (*models.Product, error)
	GetByPotterID(potterID uint, includeInactive bool) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	GetRecent(limit int) ([]models.Product, error)
	GetFeatured(limit int) ([]models.Product, error)
	Count() (int64, error)
	SlugExists(potterID uint, slug string) (bool, error)
}

// CourseRepository defines the interface for course catalog queries.
type CourseRepository interface {
	Create(course *models.Course) error
	GetByID(id uint) (*models.Course, error)
	GetBySlug(slug string) (*models.Course, error)
	GetByPotterID(potterID uint) ([]models.Course, error)
	Update(course *models.Course) error
	Delete(id uint) error
	// ListActive returns active courses, optionally restricted by level,
	// location and start month, ordered and paginated in the database.
	ListActive(f CourseFilter) ([]models.Course, int64, error)
	Locations() ([]string, error)
	Count() (int64, error)
}

// CourseFilter narrows and orders the public course catalog.
type CourseFilter struct {
	Level      string
	Location   string
	StartAfter *time.Time
	StartUntil *time.Time
	Sort       string // date_asc, date_desc, price_asc, price_desc
	Offset     int
	Limit      int
}

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	Get() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}

// PaymentRepository exposes settlement audit data to the admin area.
type PaymentRepository interface {
	ListTransfers(offset, limit int) ([]models.PayoutTransfer, error)
	ListTransfersByPotter(potterID uint, offset, limit int) ([]models.PayoutTransfer, error)
	CountTransfers() (int64, error)
	TotalCommission() (int64, error)
}

// Repositories holds all repository instances
type Repositories struct {
	User    UserRepository
	Potter  PotterRepository
	Product ProductRepository
	Course  CourseRepository
	Setting SettingRepository
	Payment PaymentRepository
}

// NewRepositories creates all repositories with the given database connection
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Potter:  NewPotterRepository(db),
		Product: NewProductRepository(db),
		Course:  NewCourseRepository(db),
		Setting: NewSettingRepository(db),
		Payment: NewPaymentRepository(db),
	}
}
