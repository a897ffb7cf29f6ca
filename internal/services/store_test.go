package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/models"
	"gorm.io/gorm"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// memStore is an in-memory stand-in for internal/database with the same
// semantics the engines rely on: gorm sentinel errors, unique keys, and
// atomic multi-step mutations.
type memStore struct {
	users     map[uuid.UUID]*models.User
	rooms     map[uuid.UUID]*models.Room
	requests  map[uuid.UUID]*models.RoomJoinRequest
	messages  map[uuid.UUID]*models.Message
	reactions []*models.EmojiReaction
	polls     map[uuid.UUID]*models.Poll
	optionIdx map[uuid.UUID]uuid.UUID // option id -> poll id
	bot       *models.User
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uuid.UUID]*models.User),
		rooms:     make(map[uuid.UUID]*models.Room),
		requests:  make(map[uuid.UUID]*models.RoomJoinRequest),
		messages:  make(map[uuid.UUID]*models.Message),
		polls:     make(map[uuid.UUID]*models.Poll),
		optionIdx: make(map[uuid.UUID]uuid.UUID),
	}
}

func (m *memStore) addUser(username string) *models.User {
	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
	}
	m.users[user.ID] = user
	return user
}

func (m *memStore) addRoom(host *models.User, name string, private bool) *models.Room {
	room := &models.Room{
		ID:             uuid.New(),
		Name:           name,
		IsPrivate:      private,
		WelcomeMessage: models.DefaultWelcomeMessage,
	}
	if host != nil {
		hostID := host.ID
		room.HostID = &hostID
		room.Host = host
	}
	m.rooms[room.ID] = room
	return room
}

func (m *memStore) GetUser(id uuid.UUID) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memStore) GetOrCreateBotUser() (*models.User, error) {
	if m.bot == nil {
		m.bot = m.addUser(models.BotUsername)
	}
	return m.bot, nil
}

func (m *memStore) GetRoom(id uuid.UUID) (*models.Room, error) {
	room, ok := m.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return room, nil
}

func (m *memStore) RemoveParticipant(roomID, userID uuid.UUID) error {
	room, ok := m.rooms[roomID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	participants := room.Participants[:0]
	for _, p := range room.Participants {
		if p.ID != userID {
			participants = append(participants, p)
		}
	}
	room.Participants = participants
	return nil
}

func (m *memStore) GetJoinRequest(roomID, userID uuid.UUID) (*models.RoomJoinRequest, error) {
	for _, request := range m.requests {
		if request.RoomID == roomID && request.UserID == userID {
			return request, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memStore) GetJoinRequestByID(id uuid.UUID) (*models.RoomJoinRequest, error) {
	request, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if room, ok := m.rooms[request.RoomID]; ok {
		request.Room = *room
	}
	if user, ok := m.users[request.UserID]; ok {
		request.User = *user
	}
	return request, nil
}

func (m *memStore) CreateJoinRequest(request *models.RoomJoinRequest) error {
	for _, existing := range m.requests {
		if existing.RoomID == request.RoomID && existing.UserID == request.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	request.ID = uuid.New()
	request.CreatedAt = time.Now()
	m.requests[request.ID] = request
	return nil
}

func (m *memStore) UpdateJoinRequestStatus(id uuid.UUID, status models.JoinRequestStatus) error {
	request, ok := m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	request.Status = status
	return nil
}

func (m *memStore) ApproveJoinRequest(request *models.RoomJoinRequest) error {
	stored, ok := m.requests[request.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	room, ok := m.rooms[stored.RoomID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user, ok := m.users[stored.UserID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	stored.Status = models.JoinRequestApproved
	if !room.HasParticipant(user.ID) {
		room.Participants = append(room.Participants, *user)
	}
	return nil
}

func (m *memStore) ListJoinRequests(roomID uuid.UUID, pendingOnly bool) ([]models.RoomJoinRequest, error) {
	var requests []models.RoomJoinRequest
	for _, request := range m.requests {
		if request.RoomID != roomID {
			continue
		}
		if pendingOnly && request.Status != models.JoinRequestPending {
			continue
		}
		requests = append(requests, *request)
	}
	return requests, nil
}

func (m *memStore) CountPendingJoinRequests(roomID uuid.UUID) (int64, error) {
	var count int64
	for _, request := range m.requests {
		if request.RoomID == roomID && request.Status == models.JoinRequestPending {
			count++
		}
	}
	return count, nil
}

func (m *memStore) GetPoll(id uuid.UUID) (*models.Poll, error) {
	poll, ok := m.polls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return poll, nil
}

func (m *memStore) GetPollOption(id uuid.UUID) (*models.PollOption, error) {
	pollID, ok := m.optionIdx[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	poll := m.polls[pollID]
	for i := range poll.Options {
		if poll.Options[i].ID == id {
			option := poll.Options[i]
			return &option, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memStore) GetRoomPolls(roomID uuid.UUID) ([]models.Poll, error) {
	var polls []models.Poll
	for _, poll := range m.polls {
		if poll.RoomID == roomID {
			polls = append(polls, *poll)
		}
	}
	return polls, nil
}

func (m *memStore) CreatePoll(poll *models.Poll) error {
	poll.ID = uuid.New()
	poll.CreatedAt = time.Now()
	for i := range poll.Options {
		poll.Options[i].ID = uuid.New()
		poll.Options[i].PollID = poll.ID
		m.optionIdx[poll.Options[i].ID] = poll.ID
	}
	m.polls[poll.ID] = poll
	return nil
}

func (m *memStore) CastVote(userID, optionID uuid.UUID) error {
	pollID, ok := m.optionIdx[optionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	poll := m.polls[pollID]

	// Remove-from-siblings and add-to-target as one unit.
	for i := range poll.Options {
		votes := poll.Options[i].Votes[:0]
		for _, v := range poll.Options[i].Votes {
			if v.ID != userID {
				votes = append(votes, v)
			}
		}
		poll.Options[i].Votes = votes
	}
	for i := range poll.Options {
		if poll.Options[i].ID == optionID {
			poll.Options[i].Votes = append(poll.Options[i].Votes, *user)
		}
	}
	return nil
}

func (m *memStore) GetMessage(id uuid.UUID) (*models.Message, error) {
	message, ok := m.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return message, nil
}

func (m *memStore) SaveMessage(message *models.Message) error {
	message.ID = uuid.New()
	message.CreatedAt = time.Now()
	m.messages[message.ID] = message

	room := m.rooms[message.RoomID]
	if room == nil {
		return nil
	}
	if !message.IsBot {
		if user := m.users[message.UserID]; user != nil && !room.HasParticipant(user.ID) {
			room.Participants = append(room.Participants, *user)
		}
	}
	room.UpdatedAt = time.Now()
	return nil
}

func (m *memStore) DeleteMessage(id uuid.UUID) error {
	delete(m.messages, id)
	return nil
}

func (m *memStore) GetRoomMessages(roomID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	for _, message := range m.messages {
		if message.RoomID == roomID {
			messages = append(messages, *message)
		}
	}
	return messages, nil
}

func (m *memStore) GetRecentMessages(limit int) ([]models.Message, error) {
	var messages []models.Message
	for _, message := range m.messages {
		messages = append(messages, *message)
		if len(messages) == limit {
			break
		}
	}
	return messages, nil
}

func (m *memStore) HasBotGreeting(roomID uuid.UUID, username string) (bool, error) {
	for _, message := range m.messages {
		if message.RoomID == roomID && message.IsBot && containsFold(message.Body, username) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ToggleReaction(messageID, userID uuid.UUID, emoji string) (bool, error) {
	for i, r := range m.reactions {
		if r.MessageID == messageID && r.UserID == userID && r.Emoji == emoji {
			m.reactions = append(m.reactions[:i], m.reactions[i+1:]...)
			return false, nil
		}
	}
	reaction := &models.EmojiReaction{
		ID:        uuid.New(),
		MessageID: messageID,
		UserID:    userID,
		Emoji:     emoji,
		CreatedAt: time.Now(),
	}
	if user, ok := m.users[userID]; ok {
		reaction.User = *user
	}
	m.reactions = append(m.reactions, reaction)
	return true, nil
}

func (m *memStore) GetMessageReactions(messageID uuid.UUID) ([]models.EmojiReaction, error) {
	var reactions []models.EmojiReaction
	for _, r := range m.reactions {
		if r.MessageID == messageID {
			reactions = append(reactions, *r)
		}
	}
	return reactions, nil
}

func (m *memStore) CountReactions(messageID uuid.UUID, emoji string) (int64, error) {
	var count int64
	for _, r := range m.reactions {
		if r.MessageID == messageID && r.Emoji == emoji {
			count++
		}
	}
	return count, nil
}
