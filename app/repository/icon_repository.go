package repository

import (
	"github.com/guidingv/iconify-style-consistent-icons/app/models"
	"gorm.io/gorm"
)

// iconRepository implements the IconRepository interface
type iconRepository struct {
	db *gorm.DB
}

// NewIconRepository creates a new icon repository instance
func NewIconRepository(db *gorm.DB) IconRepository {
	return &iconRepository{db: db}
}

// Create creates a new icon in the database
func (r *iconRepository) Create(icon *models.Icon) error {
	return r.db.Create(icon).Error
}

// GetByID retrieves an icon by its ID
func (r *iconRepository) GetByID(id uint) (*models.Icon, error) {
	var icon models.Icon
	err := r.db.Preload("Tags").First(&icon, id).Error
	if err != nil {
		return nil, err
	}
	return &icon, nil
}

// GetByUUID retrieves an icon by its UUID
func (r *iconRepository) GetByUUID(uuid string) (*models.Icon, error) {
	var icon models.Icon
	err := r.db.Preload("Tags").Where("uuid = ?", uuid).First(&icon).Error
	if err != nil {
		return nil, err
	}
	return &icon, nil
}

// GetByIDs retrieves a set of icons by their IDs
func (r *iconRepository) GetByIDs(ids []uint) ([]models.Icon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var icons []models.Icon
	err := r.db.Where("id IN ?", ids).Find(&icons).Error
	return icons, err
}

// Update updates an existing icon in the database
func (r *iconRepository) Update(icon *models.Icon) error {
	return r.db.Save(icon).Error
}

// Delete soft deletes an icon by its ID
func (r *iconRepository) Delete(id uint) error {
	// First remove all collection associations
	err := r.db.Exec("DELETE FROM collection_icons WHERE icon_id = ?", id).Error
	if err != nil {
		return err
	}

	// Then delete the icon
	return r.db.Delete(&models.Icon{}, id).Error
}

// List retrieves icons with pagination
func (r *iconRepository) List(offset, limit int) ([]models.Icon, error) {
	var icons []models.Icon
	err := r.db.Preload("Tags").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&icons).Error
	return icons, err
}

// Count returns the total number of icons
func (r *iconRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Icon{}).Count(&count).Error
	return count, err
}

// Search finds icons whose name or tags match the query
func (r *iconRepository) Search(query string) ([]models.Icon, error) {
	var icons []models.Icon
	pattern := "%" + query + "%"
	err := r.db.Preload("Tags").
		Distinct("icons.*").
		Joins("LEFT JOIN icon_tags ON icon_tags.icon_id = icons.id").
		Joins("LEFT JOIN tags ON tags.id = icon_tags.tag_id").
		Where("icons.name LIKE ? OR tags.name LIKE ?", pattern, pattern).
		Order("icons.name ASC").
		Find(&icons).Error
	return icons, err
}

// GetByTag retrieves icons carrying a specific tag, paginated
func (r *iconRepository) GetByTag(tagName string, offset, limit int) ([]models.Icon, error) {
	var icons []models.Icon
	err := r.db.Preload("Tags").
		Joins("JOIN icon_tags ON icon_tags.icon_id = icons.id").
		Joins("JOIN tags ON tags.id = icon_tags.tag_id").
		Where("tags.name = ?", tagName).
		Order("icons.name ASC").
		Offset(offset).Limit(limit).
		Find(&icons).Error
	return icons, err
}

// GetRecent retrieves the most recently added icons
func (r *iconRepository) GetRecent(limit int) ([]models.Icon, error) {
	var icons []models.Icon
	err := r.db.Order("created_at DESC").Limit(limit).Find(&icons).Error
	return icons, err
}

// UpdateDownloadCount increments the download counter for an icon
func (r *iconRepository) UpdateDownloadCount(id uint) error {
	return r.db.Model(&models.Icon{}).Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
}
