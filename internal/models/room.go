package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultWelcomeMessage = "Welcome {user} to {room}!"

type Room struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	HostID         *uuid.UUID `gorm:"type:uuid"`
	TopicID        *uuid.UUID `gorm:"type:uuid"`
	Name           string     `gorm:"not null"`
	Description    string
	IsPrivate      bool   `gorm:"default:false"`
	WelcomeMessage string `gorm:"default:'Welcome {user} to {room}!'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Associations. The host is never forced into Participants; host
	// access is implicit.
	Host         *User     `gorm:"foreignKey:HostID;constraint:OnDelete:SET NULL"`
	Topic        *Topic    `gorm:"foreignKey:TopicID;constraint:OnDelete:SET NULL"`
	Participants []User    `gorm:"many2many:room_participants"`
	Messages     []Message `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

// IsHost reports whether userID owns the room. A room whose host was
// deleted has no host.
func (r *Room) IsHost(userID uuid.UUID) bool {
	return r.HostID != nil && *r.HostID == userID
}

// HasParticipant reports whether userID is in the room's participant set.
// Participants must be loaded.
func (r *Room) HasParticipant(userID uuid.UUID) bool {
	for _, p := range r.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}
