package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/models"
	"gorm.io/gorm"
)

// MembershipService gates room access and runs the join-request state
// machine: pending -> approved (adds the requester to participants),
// pending -> rejected, and rejected/approved -> pending via re-request.
type MembershipService struct {
	store MembershipStore
}

func NewMembershipService(store MembershipStore) *MembershipService {
	return &MembershipService{store: store}
}

// CanAccess reports whether user may read or write the room: the room is
// public, or the user is the host, or an explicit participant. A nil user
// is anonymous.
func (s *MembershipService) CanAccess(user *models.User, room *models.Room) bool {
	if !room.IsPrivate {
		return true
	}
	if user == nil {
		return false
	}
	return room.IsHost(user.ID) || room.HasParticipant(user.ID)
}

// RequestJoin creates or revives userID's join request for a private room.
// A pending request cannot be re-submitted; a rejected or approved one is
// reset to pending.
func (s *MembershipService) RequestJoin(userID, roomID uuid.UUID) (*models.RoomJoinRequest, error) {
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	if room.IsHost(userID) || room.HasParticipant(userID) {
		return nil, ErrAlreadyMember
	}

	existing, err := s.store.GetJoinRequest(roomID, userID)
	if err == nil {
		if existing.Status == models.JoinRequestPending {
			return nil, ErrDuplicateRequest
		}
		// Re-request: flip the old record back to pending in place. The
		// privacy flag is not re-checked on this path.
		if err := s.store.UpdateJoinRequestStatus(existing.ID, models.JoinRequestPending); err != nil {
			return nil, fmt.Errorf("reset join request: %w", err)
		}
		existing.Status = models.JoinRequestPending
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get join request: %w", err)
	}

	if !room.IsPrivate {
		return nil, ErrRoomNotPrivate
	}

	request := &models.RoomJoinRequest{
		RoomID: roomID,
		UserID: userID,
		Status: models.JoinRequestPending,
	}
	if err := s.store.CreateJoinRequest(request); err != nil {
		// A concurrent double-submit loses the insert race on the
		// (room, user) unique index; treat it as already requested.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("create join request: %w", err)
	}

	return request, nil
}

// LeaveRoom removes the caller from the room's participant set. The host
// cannot leave a room they own; deleting the room is the way out.
func (s *MembershipService) LeaveRoom(roomID, userID uuid.UUID) error {
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get room: %w", err)
	}

	if room.IsHost(userID) {
		return ErrNotAuthorized
	}
	if !room.HasParticipant(userID) {
		return ErrNotFound
	}

	if err := s.store.RemoveParticipant(roomID, userID); err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	return nil
}

// ListJoinRequests returns a room's join requests to its host, newest
// first. pendingOnly selects the moderation view.
func (s *MembershipService) ListJoinRequests(roomID, actingUserID uuid.UUID, pendingOnly bool) ([]models.RoomJoinRequest, error) {
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	if !room.IsHost(actingUserID) {
		return nil, ErrNotAuthorized
	}

	requests, err := s.store.ListJoinRequests(roomID, pendingOnly)
	if err != nil {
		return nil, fmt.Errorf("list join requests: %w", err)
	}
	return requests, nil
}

// PendingCount is the host's moderation badge.
func (s *MembershipService) PendingCount(roomID, actingUserID uuid.UUID) (int64, error) {
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("get room: %w", err)
	}
	if !room.IsHost(actingUserID) {
		return 0, ErrNotAuthorized
	}
	return s.store.CountPendingJoinRequests(roomID)
}

// GetOwnRequest returns the caller's join request for a room, if any.
func (s *MembershipService) GetOwnRequest(roomID, userID uuid.UUID) (*models.RoomJoinRequest, error) {
	request, err := s.store.GetJoinRequest(roomID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get join request: %w", err)
	}
	return request, nil
}

// ProcessJoinRequest applies the host's decision. Approval and the
// participant add commit together; adding an existing participant is a
// no-op.
func (s *MembershipService) ProcessJoinRequest(requestID, actingUserID uuid.UUID, decision models.JoinRequestStatus) (*models.RoomJoinRequest, error) {
	request, err := s.store.GetJoinRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get join request: %w", err)
	}

	if !request.Room.IsHost(actingUserID) {
		return nil, ErrNotAuthorized
	}

	switch decision {
	case models.JoinRequestApproved:
		if err := s.store.ApproveJoinRequest(request); err != nil {
			return nil, fmt.Errorf("approve join request: %w", err)
		}
	case models.JoinRequestRejected:
		if err := s.store.UpdateJoinRequestStatus(request.ID, models.JoinRequestRejected); err != nil {
			return nil, fmt.Errorf("reject join request: %w", err)
		}
	default:
		return nil, ErrInvalidDecision
	}

	request.Status = decision
	return request, nil
}
