package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleReaction inserts the (message, user, emoji) reaction, or deletes it
// if it already exists. The insert rides on the unique index with
// DoNothing, so two concurrent identical toggles cannot both create a row;
// whichever sees zero rows affected takes the delete path instead.
func (d *Database) ToggleReaction(messageID, userID uuid.UUID, emoji string) (added bool, err error) {
	err = d.db.Transaction(func(tx *gorm.DB) error {
		reaction := models.EmojiReaction{
			MessageID: messageID,
			UserID:    userID,
			Emoji:     emoji,
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}, {Name: "emoji"}},
			DoNothing: true,
		}).Create(&reaction)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			added = true
			return nil
		}

		added = false
		return tx.
			Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
			Delete(&models.EmojiReaction{}).Error
	})
	return added, err
}

// GetMessageReactions lists a message's reactions in creation order, which
// gives the aggregation its first-seen tiebreak.
func (d *Database) GetMessageReactions(messageID uuid.UUID) ([]models.EmojiReaction, error) {
	var reactions []models.EmojiReaction
	err := d.db.
		Where("message_id = ?", messageID).
		Order("created_at ASC").
		Preload("User").
		Find(&reactions).Error
	return reactions, err
}

func (d *Database) CountReactions(messageID uuid.UUID, emoji string) (int64, error) {
	var count int64
	err := d.db.Model(&models.EmojiReaction{}).
		Where("message_id = ? AND emoji = ?", messageID, emoji).
		Count(&count).Error
	return count, err
}
