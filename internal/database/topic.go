package database

import (
	"errors"

	"github.com/thereayou/studybud/internal/models"
	"gorm.io/gorm"
)

// GetOrCreateTopic reuses the first topic with a matching name. Names are
// not unique, so pre-existing duplicates stay untouched.
func (d *Database) GetOrCreateTopic(name string) (*models.Topic, error) {
	var topic models.Topic
	err := d.db.Where("name = ?", name).First(&topic).Error
	if err == nil {
		return &topic, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	topic = models.Topic{Name: name}
	if err := d.db.Create(&topic).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

// SearchTopics lists topics whose name contains q, case-insensitive. An
// empty q lists everything.
func (d *Database) SearchTopics(q string) ([]models.Topic, error) {
	var topics []models.Topic
	err := d.db.
		Where("name ILIKE ?", "%"+q+"%").
		Order("name ASC").
		Find(&topics).Error
	return topics, err
}
