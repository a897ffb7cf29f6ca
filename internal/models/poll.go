package models

import (
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID      uuid.UUID `gorm:"type:uuid;not null"`
	Question    string    `gorm:"type:varchar(255);not null"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time

	// Associations
	Room      Room         `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	CreatedBy User         `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	Options   []PollOption `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
}

type PollOption struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PollID     uuid.UUID `gorm:"type:uuid;not null"`
	OptionText string    `gorm:"type:varchar(255);not null"`

	// A user holds a vote in at most one option per poll. The voting
	// transaction enforces this, not the join table.
	Votes []User `gorm:"many2many:poll_option_votes"`
}

// VoteCount is the size of the option's voter set. Votes must be loaded.
func (o *PollOption) VoteCount() int {
	return len(o.Votes)
}
