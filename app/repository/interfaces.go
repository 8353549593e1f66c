package repository

import (
	"time"

	"github.com/guidingv/iconify-style-consistent-icons/app/models"
	"gorm.io/gorm"
)

// IconRepository defines the interface for icon-related database operations
type IconRepository interface {
	Create(icon *models.Icon) error
	GetByID(id uint) (*models.Icon, error)
	GetByUUID(uuid string) (*models.Icon, error)
	GetByIDs(ids []uint) ([]models.Icon, error)
	Update(icon *models.Icon) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Icon, error)
	Count() (int64, error)
	Search(query string) ([]models.Icon, error)
	GetByTag(tagName string, offset, limit int) ([]models.Icon, error)
	GetRecent(limit int) ([]models.Icon, error)
	UpdateDownloadCount(id uint) error
}

// CollectionRepository defines the interface for collection-related database operations
type CollectionRepository interface {
	Create(collection *models.Collection) error
	GetByID(id uint) (*models.Collection, error)
	GetByShareLink(shareLink string) (*models.Collection, error)
	List(offset, limit int) ([]models.Collection, error)
	GetPublic(offset, limit int) ([]models.Collection, error)
	Update(collection *models.Collection) error
	Delete(id uint) error
	AddIcon(collectionID, iconID uint) error
	RemoveIcon(collectionID, iconID uint) error
	GetIcons(collectionID uint) ([]models.Icon, error)
	ReorderIcon(collectionID, iconID uint, position int) error
	Count() (int64, error)
	UpdateViewCount(id uint) error
}

// TagRepository defines the interface for tag-related database operations
type TagRepository interface {
	FindOrCreate(name string) (*models.Tag, error)
	GetAll() ([]models.Tag, error)
	GetByName(name string) (*models.Tag, error)
	Delete(id uint) error
}

// ExportRecordRepository defines the interface for persisted export results
type ExportRecordRepository interface {
	Create(record *models.ExportRecord) error
	GetByBatchID(batchID string) (*models.ExportRecord, error)
	Update(record *models.ExportRecord) error
	List(offset, limit int) ([]models.ExportRecord, error)
	Count() (int64, error)
}

// QueueRepository defines the interface for cache/queue operations
type QueueRepository interface {
	GetAllKeys() ([]string, error)
	GetValue(key string) (string, error)
	GetTTL(key string) (time.Duration, error)
	DeleteKey(key string) (int64, error)
	GetListLength(key string) (int64, error)
	FindKeysByPatterns(patterns []string) ([]string, error)
	DeleteKeys(keys []string) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Icon         IconRepository
	Collection   CollectionRepository
	Tag          TagRepository
	ExportRecord ExportRecordRepository
	Queue        QueueRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Icon:         NewIconRepository(db),
		Collection:   NewCollectionRepository(db),
		Tag:          NewTagRepository(db),
		ExportRecord: NewExportRecordRepository(db),
		Queue:        NewQueueRepository(),
	}
}
