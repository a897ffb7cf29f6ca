package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReactionService toggles emoji reactions on messages and aggregates them
// for display.
type ReactionService struct {
	store ReactionStore
}

func NewReactionService(store ReactionStore) *ReactionService {
	return &ReactionService{store: store}
}

// ReactionGroup is the display aggregate for one emoji on a message.
type ReactionGroup struct {
	Emoji     string   `json:"emoji"`
	Count     int      `json:"count"`
	Usernames []string `json:"users"`
}

// Toggle adds the (message, user, emoji) reaction if absent and removes it
// if present. Calling it twice returns the reaction set to its original
// state. The check-and-write is atomic on the store side.
func (s *ReactionService) Toggle(messageID, userID uuid.UUID, emoji string) (added bool, err error) {
	if _, err := s.store.GetMessage(messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("get message: %w", err)
	}

	added, err = s.store.ToggleReaction(messageID, userID, emoji)
	if err != nil {
		return false, fmt.Errorf("toggle reaction: %w", err)
	}
	return added, nil
}

// CountByEmoji counts reactions with the given emoji on a message.
func (s *ReactionService) CountByEmoji(messageID uuid.UUID, emoji string) (int64, error) {
	count, err := s.store.CountReactions(messageID, emoji)
	if err != nil {
		return 0, fmt.Errorf("count reactions: %w", err)
	}
	return count, nil
}

// GroupByEmoji aggregates a message's reactions per emoji, sorted by count
// descending with ties broken by first-seen order.
func (s *ReactionService) GroupByEmoji(messageID uuid.UUID) ([]ReactionGroup, error) {
	reactions, err := s.store.GetMessageReactions(messageID)
	if err != nil {
		return nil, fmt.Errorf("get reactions: %w", err)
	}

	byEmoji := make(map[string]*ReactionGroup)
	var order []string
	for _, r := range reactions {
		group, ok := byEmoji[r.Emoji]
		if !ok {
			group = &ReactionGroup{Emoji: r.Emoji}
			byEmoji[r.Emoji] = group
			order = append(order, r.Emoji)
		}
		group.Count++
		group.Usernames = append(group.Usernames, r.User.Username)
	}

	groups := make([]ReactionGroup, 0, len(order))
	for _, emoji := range order {
		groups = append(groups, *byEmoji[emoji])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	return groups, nil
}
