package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetIconRepository returns the icon repository instance
func (f *Factory) GetIconRepository() IconRepository {
	return f.GetRepositories().Icon
}

// GetCollectionRepository returns the collection repository instance
func (f *Factory) GetCollectionRepository() CollectionRepository {
	return f.GetRepositories().Collection
}

// GetTagRepository returns the tag repository instance
func (f *Factory) GetTagRepository() TagRepository {
	return f.GetRepositories().Tag
}

// GetExportRecordRepository returns the export record repository instance
func (f *Factory) GetExportRecordRepository() ExportRecordRepository {
	return f.GetRepositories().ExportRecord
}

// GetQueueRepository returns the queue repository instance
func (f *Factory) GetQueueRepository() QueueRepository {
	return f.GetRepositories().Queue
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
