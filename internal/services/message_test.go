package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/studybud/internal/models"
)

func TestPostMessage(t *testing.T) {
	t.Run("posting in a public room joins it", func(t *testing.T) {
		store := newMemStore()
		host := store.addUser("host")
		visitor := store.addUser("visitor")
		room := store.addRoom(host, "study-hall", false)

		svc := NewMessageService(store)

		message, err := svc.Post(visitor.ID, room.ID, "hi everyone", "")
		require.NoError(t, err)
		assert.Equal(t, "hi everyone", message.Body)
		assert.True(t, room.HasParticipant(visitor.ID))
	})

	t.Run("posting bumps the room's recency", func(t *testing.T) {
		store := newMemStore()
		host := store.addUser("host")
		room := store.addRoom(host, "study-hall", false)
		stale := time.Now().Add(-time.Hour)
		room.UpdatedAt = stale

		svc := NewMessageService(store)

		_, err := svc.Post(host.ID, room.ID, "bump", "")
		require.NoError(t, err)
		assert.True(t, room.UpdatedAt.After(stale))
	})

	t.Run("image attachments are flagged", func(t *testing.T) {
		store := newMemStore()
		host := store.addUser("host")
		room := store.addRoom(host, "study-hall", false)

		svc := NewMessageService(store)

		tests := []struct {
			fileURL string
			isImage bool
		}{
			{"", false},
			{"/uploads/notes.pdf", false},
			{"/uploads/diagram.png", true},
			{"/uploads/photo.jpg", true},
		}
		for _, tt := range tests {
			message, err := svc.Post(host.ID, room.ID, "see attachment", tt.fileURL)
			require.NoError(t, err)
			assert.Equal(t, tt.isImage, message.IsImage, "fileURL=%q", tt.fileURL)
		}
	})

	t.Run("outsiders cannot post in a private room", func(t *testing.T) {
		store := newMemStore()
		host := store.addUser("host")
		outsider := store.addUser("outsider")
		room := store.addRoom(host, "study-hall", true)

		svc := NewMessageService(store)

		_, err := svc.Post(outsider.ID, room.ID, "let me in", "")
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("unknown room", func(t *testing.T) {
		store := newMemStore()
		user := store.addUser("user")

		svc := NewMessageService(store)

		_, err := svc.Post(user.ID, uuid.New(), "hello?", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGreet(t *testing.T) {
	t.Run("greets a participant with the room template", func(t *testing.T) {
		store := newMemStore()
		host := store.addUser("host")
		alice := store.addUser("alice")
		room := store.addRoom(host, "Go Study Group", false)
		room.WelcomeMessage = "Hey {user}, welcome to {room}!"
		room.Participants = append(room.Participants, *alice)

		svc := NewMessageService(store)

		greeting, err := svc.Greet(room.ID, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, greeting)
		assert.Equal(t, "Hey alice, welcome to Go Study Group!", greeting.Body)
		assert.True(t, greeting.IsBot)
		assert.Equal(t, models.BotUsername, store.bot.Username)
	})

	t.Run("greets each participant at most once", func(t *testing.T) {
		store := newMemStore()
		host := store.addUser("host")
		alice := store.addUser("alice")
		room := store.addRoom(host, "study-hall", false)
		room.Participants = append(room.Participants, *alice)

		svc := NewMessageService(store)

		first, err := svc.Greet(room.ID, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := svc.Greet(room.ID, alice.ID)
		require.NoError(t, err)
		assert.Nil(t, second)
	})

	t.Run("non-participants are not greeted", func(t *testing.T) {
		store := newMemStore()
		host := store.addUser("host")
		visitor := store.addUser("visitor")
		room := store.addRoom(host, "study-hall", false)

		svc := NewMessageService(store)

		greeting, err := svc.Greet(room.ID, visitor.ID)
		require.NoError(t, err)
		assert.Nil(t, greeting)
	})

	t.Run("empty template falls back to the default", func(t *testing.T) {
		store := newMemStore()
		host := store.addUser("host")
		alice := store.addUser("alice")
		room := store.addRoom(host, "study-hall", false)
		room.WelcomeMessage = ""
		room.Participants = append(room.Participants, *alice)

		svc := NewMessageService(store)

		greeting, err := svc.Greet(room.ID, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, greeting)
		assert.Equal(t, "Welcome alice to study-hall!", greeting.Body)
	})
}

func TestDeleteMessage(t *testing.T) {
	store := newMemStore()
	host := store.addUser("host")
	alice := store.addUser("alice")
	room := store.addRoom(host, "study-hall", false)

	svc := NewMessageService(store)

	message, err := svc.Post(alice.ID, room.ID, "oops", "")
	require.NoError(t, err)

	t.Run("only the author deletes", func(t *testing.T) {
		err := svc.Delete(message.ID, host.ID)
		assert.ErrorIs(t, err, ErrNotAuthorized)

		_, err = store.GetMessage(message.ID)
		assert.NoError(t, err)
	})

	t.Run("author deletes own message", func(t *testing.T) {
		require.NoError(t, svc.Delete(message.ID, alice.ID))

		err := svc.Delete(message.ID, alice.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRoomMessages(t *testing.T) {
	store := newMemStore()
	host := store.addUser("host")
	outsider := store.addUser("outsider")
	room := store.addRoom(host, "study-hall", true)

	svc := NewMessageService(store)

	_, err := svc.Post(host.ID, room.ID, "first", "")
	require.NoError(t, err)

	t.Run("host reads a private room", func(t *testing.T) {
		messages, err := svc.RoomMessages(room.ID, host.ID)
		require.NoError(t, err)
		assert.Len(t, messages, 1)
	})

	t.Run("outsider blocked", func(t *testing.T) {
		_, err := svc.RoomMessages(room.ID, outsider.ID)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}
