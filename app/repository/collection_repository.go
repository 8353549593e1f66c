package repository

import (
	"github.com/guidingv/iconify-style-consistent-icons/app/models"
	"gorm.io/gorm"
)

// collectionRepository implements the CollectionRepository interface
type collectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a new collection repository instance
func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

// Create creates a new collection in the database
func (r *collectionRepository) Create(collection *models.Collection) error {
	return r.db.Create(collection).Error
}

// GetByID retrieves a collection by its ID
func (r *collectionRepository) GetByID(id uint) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.First(&collection, id).Error
	if err != nil {
		return nil, err
	}

	icons, err := r.GetIcons(collection.ID)
	if err != nil {
		return nil, err
	}
	collection.Icons = icons
	return &collection, nil
}

// GetByShareLink retrieves a collection by its public share link
func (r *collectionRepository) GetByShareLink(shareLink string) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.Where("share_link = ?", shareLink).First(&collection).Error
	if err != nil {
		return nil, err
	}

	icons, err := r.GetIcons(collection.ID)
	if err != nil {
		return nil, err
	}
	collection.Icons = icons
	return &collection, nil
}

// List retrieves collections with pagination
func (r *collectionRepository) List(offset, limit int) ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&collections).Error
	return collections, err
}

// GetPublic retrieves publicly shared collections, paginated
func (r *collectionRepository) GetPublic(offset, limit int) ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.Where("is_public = ?", true).
		Order("view_count DESC").
		Offset(offset).Limit(limit).
		Find(&collections).Error
	return collections, err
}

// Update updates an existing collection in the database
func (r *collectionRepository) Update(collection *models.Collection) error {
	return r.db.Save(collection).Error
}

// Delete soft deletes a collection by its ID
func (r *collectionRepository) Delete(id uint) error {
	// First remove all collection-icon associations
	err := r.db.Exec("DELETE FROM collection_icons WHERE collection_id = ?", id).Error
	if err != nil {
		return err
	}

	// Then delete the collection
	return r.db.Delete(&models.Collection{}, id).Error
}

// AddIcon appends an icon to the end of a collection
func (r *collectionRepository) AddIcon(collectionID, iconID uint) error {
	// Check if the association already exists
	var count int64
	err := r.db.Table("collection_icons").
		Where("collection_id = ? AND icon_id = ?", collectionID, iconID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// New icons go to the end of the display order
	var maxPosition int
	err = r.db.Table("collection_icons").
		Where("collection_id = ?", collectionID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPosition).Error
	if err != nil {
		return err
	}

	return r.db.Exec("INSERT INTO collection_icons (collection_id, icon_id, position) VALUES (?, ?, ?)",
		collectionID, iconID, maxPosition+1).Error
}

// RemoveIcon removes an icon from a collection
func (r *collectionRepository) RemoveIcon(collectionID, iconID uint) error {
	return r.db.Exec("DELETE FROM collection_icons WHERE collection_id = ? AND icon_id = ?",
		collectionID, iconID).Error
}

// GetIcons retrieves all icons in a collection in display order
func (r *collectionRepository) GetIcons(collectionID uint) ([]models.Icon, error) {
	var icons []models.Icon
	err := r.db.Table("icons").
		Joins("JOIN collection_icons ON icons.id = collection_icons.icon_id").
		Where("collection_icons.collection_id = ?", collectionID).
		Order("collection_icons.position ASC").
		Find(&icons).Error
	return icons, err
}

// ReorderIcon moves an icon to a new position within a collection
func (r *collectionRepository) ReorderIcon(collectionID, iconID uint, position int) error {
	return r.db.Exec("UPDATE collection_icons SET position = ? WHERE collection_id = ? AND icon_id = ?",
		position, collectionID, iconID).Error
}

// Count returns the total number of collections
func (r *collectionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Collection{}).Count(&count).Error
	return count, err
}

// UpdateViewCount increments the view counter for a collection
func (r *collectionRepository) UpdateViewCount(id uint) error {
	return r.db.Model(&models.Collection{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
