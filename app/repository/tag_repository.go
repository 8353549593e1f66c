package repository

import (
	"github.com/guidingv/iconify-style-consistent-icons/app/models"
	"gorm.io/gorm"
)

// tagRepository implements the TagRepository interface
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// FindOrCreate finds a tag by name or creates it when missing
func (r *tagRepository) FindOrCreate(name string) (*models.Tag, error) {
	tag := &models.Tag{Name: name}
	if err := tag.FindOrCreate(r.db); err != nil {
		return nil, err
	}
	return tag, nil
}

// GetAll retrieves all tags ordered by name
func (r *tagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

// GetByName retrieves a tag by its name
func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete removes a tag and its icon associations
func (r *tagRepository) Delete(id uint) error {
	err := r.db.Exec("DELETE FROM icon_tags WHERE tag_id = ?", id).Error
	if err != nil {
		return err
	}
	return r.db.Delete(&models.Tag{}, id).Error
}
