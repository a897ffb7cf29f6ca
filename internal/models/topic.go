package models

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a weak categorical tag on rooms. Names are not unique;
// room creation does get-or-create by name but pre-existing duplicates
// are left alone.
type Topic struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"not null;index"`
	CreatedAt time.Time
}
