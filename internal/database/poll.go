package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/models"
	"gorm.io/gorm"
)

// CreatePoll stores a poll and its options atomically.
func (d *Database) CreatePoll(poll *models.Poll) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(poll).Error
	})
}

func (d *Database) GetPoll(id uuid.UUID) (*models.Poll, error) {
	var poll models.Poll
	err := d.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_options.id")
		}).
		Preload("Options.Votes").
		Preload("CreatedBy").
		First(&poll, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

func (d *Database) GetPollOption(id uuid.UUID) (*models.PollOption, error) {
	var option models.PollOption
	if err := d.db.First(&option, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (d *Database) GetRoomPolls(roomID uuid.UUID) ([]models.Poll, error) {
	var polls []models.Poll
	err := d.db.
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_options.id")
		}).
		Preload("Options.Votes").
		Preload("CreatedBy").
		Find(&polls).Error
	return polls, err
}

// CastVote records userID's vote on the given option. The removal from
// every sibling option and the insert on the target commit as one unit, so
// concurrent votes by the same user cannot leave zero or duplicate votes.
func (d *Database) CastVote(userID, optionID uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var option models.PollOption
		if err := tx.First(&option, "id = ?", optionID).Error; err != nil {
			return err
		}

		var siblingIDs []uuid.UUID
		if err := tx.Model(&models.PollOption{}).
			Where("poll_id = ?", option.PollID).
			Pluck("id", &siblingIDs).Error; err != nil {
			return err
		}

		if err := tx.Exec(
			"DELETE FROM poll_option_votes WHERE user_id = ? AND poll_option_id IN ?",
			userID, siblingIDs,
		).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		return tx.Model(&option).Association("Votes").Append(&user)
	})
}
