package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/models"
	"gorm.io/gorm"
)

func (d *Database) CreateRoom(room *models.Room) error {
	return d.db.Create(room).Error
}

func (d *Database) GetRoom(id uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := d.db.
		Preload("Host").
		Preload("Topic").
		Preload("Participants").
		First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// SearchRooms lists rooms whose topic name, room name or description
// contains q, case-insensitive. Ordering is most-recently-updated first,
// creation time as tiebreak.
func (d *Database) SearchRooms(q string) ([]models.Room, error) {
	var rooms []models.Room
	err := d.db.
		Joins("LEFT JOIN topics ON topics.id = rooms.topic_id").
		Where("topics.name ILIKE ? OR rooms.name ILIKE ? OR rooms.description ILIKE ?",
			"%"+q+"%", "%"+q+"%", "%"+q+"%").
		Order("rooms.updated_at DESC, rooms.created_at DESC").
		Preload("Host").
		Preload("Topic").
		Preload("Participants").
		Find(&rooms).Error
	return rooms, err
}

func (d *Database) GetUserRooms(userID uuid.UUID) ([]models.Room, error) {
	var rooms []models.Room
	err := d.db.
		Where("host_id = ?", userID).
		Order("updated_at DESC, created_at DESC").
		Preload("Topic").
		Preload("Participants").
		Find(&rooms).Error
	return rooms, err
}

func (d *Database) RemoveParticipant(roomID, userID uuid.UUID) error {
	var user models.User
	if err := d.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	return d.db.Model(&models.Room{ID: roomID}).Association("Participants").Delete(&user)
}

func (d *Database) UpdateRoom(room *models.Room) error {
	return d.db.Save(room).Error
}

func (d *Database) DeleteRoom(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.RoomJoinRequest{}, "room_id = ?", id).Error; err != nil {
			return err
		}

		var pollIDs []uuid.UUID
		if err := tx.Model(&models.Poll{}).Where("room_id = ?", id).Pluck("id", &pollIDs).Error; err != nil {
			return err
		}
		if len(pollIDs) > 0 {
			var optionIDs []uuid.UUID
			if err := tx.Model(&models.PollOption{}).Where("poll_id IN ?", pollIDs).Pluck("id", &optionIDs).Error; err != nil {
				return err
			}
			if len(optionIDs) > 0 {
				if err := tx.Exec("DELETE FROM poll_option_votes WHERE poll_option_id IN ?", optionIDs).Error; err != nil {
					return err
				}
				if err := tx.Delete(&models.PollOption{}, "id IN ?", optionIDs).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&models.Poll{}, "id IN ?", pollIDs).Error; err != nil {
				return err
			}
		}

		var messageIDs []uuid.UUID
		if err := tx.Model(&models.Message{}).Where("room_id = ?", id).Pluck("id", &messageIDs).Error; err != nil {
			return err
		}
		if len(messageIDs) > 0 {
			if err := tx.Delete(&models.EmojiReaction{}, "message_id IN ?", messageIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Message{}, "id IN ?", messageIDs).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&room).Association("Participants").Clear(); err != nil {
			return err
		}

		return tx.Delete(&room).Error
	})
}
