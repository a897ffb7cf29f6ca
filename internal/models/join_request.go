package models

import (
	"time"

	"github.com/google/uuid"
)

type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// RoomJoinRequest mediates a user's access to a private room. At most one
// record exists per (room, user); status is mutated in place rather than
// creating new rows.
type RoomJoinRequest struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_room_user_request"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_room_user_request"`
	Status    JoinRequestStatus `gorm:"type:varchar(10);not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Room Room `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
