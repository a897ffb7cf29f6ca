package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/models"
	"gorm.io/gorm"
)

func (d *Database) GetJoinRequest(roomID, userID uuid.UUID) (*models.RoomJoinRequest, error) {
	var request models.RoomJoinRequest
	err := d.db.
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (d *Database) GetJoinRequestByID(id uuid.UUID) (*models.RoomJoinRequest, error) {
	var request models.RoomJoinRequest
	err := d.db.
		Preload("Room").
		Preload("User").
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CreateJoinRequest inserts a pending request. The (room, user) unique
// index makes a concurrent double-submit surface as gorm.ErrDuplicatedKey
// for the loser.
func (d *Database) CreateJoinRequest(request *models.RoomJoinRequest) error {
	return d.db.Create(request).Error
}

func (d *Database) UpdateJoinRequestStatus(id uuid.UUID, status models.JoinRequestStatus) error {
	return d.db.Model(&models.RoomJoinRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ApproveJoinRequest flips the request to approved and adds the requester
// to the room's participants, together or not at all.
func (d *Database) ApproveJoinRequest(request *models.RoomJoinRequest) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.RoomJoinRequest{}).
			Where("id = ?", request.ID).
			Update("status", models.JoinRequestApproved).Error
		if err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", request.UserID).Error; err != nil {
			return err
		}

		return tx.Model(&models.Room{ID: request.RoomID}).Association("Participants").Append(&user)
	})
}

// ListJoinRequests returns a room's requests, newest first. With
// pendingOnly set it is the host-moderation view; otherwise the full API
// listing.
func (d *Database) ListJoinRequests(roomID uuid.UUID, pendingOnly bool) ([]models.RoomJoinRequest, error) {
	query := d.db.Where("room_id = ?", roomID)
	if pendingOnly {
		query = query.Where("status = ?", models.JoinRequestPending)
	}

	var requests []models.RoomJoinRequest
	err := query.
		Order("created_at DESC").
		Preload("User").
		Find(&requests).Error
	return requests, err
}

func (d *Database) CountPendingJoinRequests(roomID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.Model(&models.RoomJoinRequest{}).
		Where("room_id = ? AND status = ?", roomID, models.JoinRequestPending).
		Count(&count).Error
	return count, err
}
