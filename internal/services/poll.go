package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/models"
	"gorm.io/gorm"
)

// PollService owns poll creation and single-choice voting. A user holds a
// vote in at most one option per poll.
type PollService struct {
	store PollStore
}

func NewPollService(store PollStore) *PollService {
	return &PollService{store: store}
}

// CreatePoll creates a poll with its options atomically. Blank option
// texts are silently dropped; fewer than two remaining options is an
// error. Only the host or a participant of the room may create polls.
func (s *PollService) CreatePoll(roomID, creatorID uuid.UUID, question string, optionTexts []string) (*models.Poll, error) {
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	if !room.IsHost(creatorID) && !room.HasParticipant(creatorID) {
		return nil, ErrMembershipRequired
	}

	var options []models.PollOption
	for _, text := range optionTexts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		options = append(options, models.PollOption{OptionText: text})
	}
	if len(options) < 2 {
		return nil, ErrInsufficientOptions
	}

	poll := &models.Poll{
		RoomID:      roomID,
		Question:    question,
		CreatedByID: creatorID,
		Options:     options,
	}
	if err := s.store.CreatePoll(poll); err != nil {
		return nil, fmt.Errorf("create poll: %w", err)
	}

	return poll, nil
}

// Vote records userID's single vote on the option. Any vote the user holds
// on a sibling option is removed in the same storage transaction, so a
// user can never end up with zero or multiple votes in a poll. Returns the
// poll with recomputed counts.
func (s *PollService) Vote(userID, optionID uuid.UUID) (*models.Poll, error) {
	option, err := s.store.GetPollOption(optionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get poll option: %w", err)
	}

	poll, err := s.store.GetPoll(option.PollID)
	if err != nil {
		return nil, fmt.Errorf("get poll: %w", err)
	}

	room, err := s.store.GetRoom(poll.RoomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	if !room.IsHost(userID) && !room.HasParticipant(userID) {
		return nil, ErrMembershipRequired
	}

	if err := s.store.CastVote(userID, optionID); err != nil {
		return nil, fmt.Errorf("cast vote: %w", err)
	}

	return s.store.GetPoll(option.PollID)
}

// RoomPolls lists a room's polls with options and voters, gated the same
// way as reading the room.
func (s *PollService) RoomPolls(roomID, userID uuid.UUID) ([]models.Poll, error) {
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	if room.IsPrivate && !room.IsHost(userID) && !room.HasParticipant(userID) {
		return nil, ErrNotAuthorized
	}

	return s.store.GetRoomPolls(roomID)
}
