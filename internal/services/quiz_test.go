package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/studybud/internal/models"
	"github.com/thereayou/studybud/pkg/groq"
)

type fakeCompletionClient struct {
	response groq.CompletionResponse
	err      error
	lastReq  groq.CompletionRequest
	calls    int
}

func (f *fakeCompletionClient) Complete(_ context.Context, req groq.CompletionRequest) (groq.CompletionResponse, error) {
	f.calls++
	f.lastReq = req
	return f.response, f.err
}

const validQuizJSON = `{
  "title": "Go Basics",
  "questions": [
    {
      "question": "What does the go keyword do?",
      "options": ["Starts a goroutine", "Imports a package", "Declares a variable", "Returns a value"],
      "correctAnswer": "A",
      "explanation": "go starts a new goroutine."
    }
  ],
  "recommendedTimeInMinutes": 5
}`

func TestGenerateQuiz(t *testing.T) {
	t.Run("plain JSON response", func(t *testing.T) {
		client := &fakeCompletionClient{response: groq.CompletionResponse{Text: validQuizJSON}}
		svc := NewQuizService(newMemStore(), client)

		result, err := svc.Generate(context.Background(), GenerateQuizParams{Topic: "Go"})
		require.NoError(t, err)
		assert.Equal(t, "Go Basics", result.Quiz.Title)
		require.Len(t, result.Quiz.Questions, 1)
		assert.Equal(t, "A", result.Quiz.Questions[0].CorrectAnswer)
		assert.Equal(t, "Go", result.Topic)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("defaults fill difficulty and count", func(t *testing.T) {
		client := &fakeCompletionClient{response: groq.CompletionResponse{Text: validQuizJSON}}
		svc := NewQuizService(newMemStore(), client)

		result, err := svc.Generate(context.Background(), GenerateQuizParams{Topic: "Go"})
		require.NoError(t, err)
		assert.Equal(t, "medium", result.Difficulty)
		assert.Equal(t, 5, result.Count)
		assert.Contains(t, client.lastReq.Prompt, "5 multiple-choice questions")
		assert.Contains(t, client.lastReq.Prompt, `"Go"`)
		assert.Contains(t, client.lastReq.Prompt, "medium")
	})

	t.Run("fenced json block is stripped", func(t *testing.T) {
		fenced := "Here is your quiz:\n```json\n" + validQuizJSON + "\n```\nEnjoy!"
		client := &fakeCompletionClient{response: groq.CompletionResponse{Text: fenced}}
		svc := NewQuizService(newMemStore(), client)

		result, err := svc.Generate(context.Background(), GenerateQuizParams{Topic: "Go"})
		require.NoError(t, err)
		assert.Equal(t, "Go Basics", result.Quiz.Title)
	})

	t.Run("unlabelled fence is stripped", func(t *testing.T) {
		fenced := "```\n" + validQuizJSON + "\n```"
		client := &fakeCompletionClient{response: groq.CompletionResponse{Text: fenced}}
		svc := NewQuizService(newMemStore(), client)

		result, err := svc.Generate(context.Background(), GenerateQuizParams{Topic: "Go"})
		require.NoError(t, err)
		assert.Equal(t, "Go Basics", result.Quiz.Title)
	})

	t.Run("unparseable output carries the raw text", func(t *testing.T) {
		client := &fakeCompletionClient{response: groq.CompletionResponse{Text: "sorry, I cannot do that"}}
		svc := NewQuizService(newMemStore(), client)

		_, err := svc.Generate(context.Background(), GenerateQuizParams{Topic: "Go"})
		var parseErr *QuizParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "sorry, I cannot do that", parseErr.Raw)
	})

	t.Run("structurally empty quiz is rejected", func(t *testing.T) {
		client := &fakeCompletionClient{response: groq.CompletionResponse{Text: `{"title": "", "questions": []}`}}
		svc := NewQuizService(newMemStore(), client)

		_, err := svc.Generate(context.Background(), GenerateQuizParams{Topic: "Go"})
		var parseErr *QuizParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("transport failure is not a parse failure", func(t *testing.T) {
		client := &fakeCompletionClient{err: errors.New("connection refused")}
		svc := NewQuizService(newMemStore(), client)

		_, err := svc.Generate(context.Background(), GenerateQuizParams{Topic: "Go"})
		assert.ErrorIs(t, err, ErrQuizUnavailable)
		var parseErr *QuizParseError
		assert.False(t, errors.As(err, &parseErr))
	})

	t.Run("no client configured", func(t *testing.T) {
		svc := NewQuizService(newMemStore(), nil)

		_, err := svc.Generate(context.Background(), GenerateQuizParams{Topic: "Go"})
		assert.ErrorIs(t, err, ErrQuizUnavailable)
	})

	t.Run("topic is required", func(t *testing.T) {
		client := &fakeCompletionClient{response: groq.CompletionResponse{Text: validQuizJSON}}
		svc := NewQuizService(newMemStore(), client)

		_, err := svc.Generate(context.Background(), GenerateQuizParams{Topic: "   "})
		assert.ErrorIs(t, err, ErrTopicRequired)
		assert.Zero(t, client.calls)
	})
}

func TestGenerateQuizForRoom(t *testing.T) {
	t.Run("topic falls back to the room topic", func(t *testing.T) {
		store := newMemStore()
		host := store.addUser("host")
		room := store.addRoom(host, "study-hall", false)
		room.Topic = &models.Topic{Name: "Databases"}

		client := &fakeCompletionClient{response: groq.CompletionResponse{Text: validQuizJSON}}
		svc := NewQuizService(store, client)

		result, err := svc.Generate(context.Background(), GenerateQuizParams{
			RoomID: &room.ID,
			UserID: &host.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Databases", result.Topic)
		assert.Contains(t, client.lastReq.Prompt, `"Databases"`)
	})

	t.Run("explicit topic wins over the room topic", func(t *testing.T) {
		store := newMemStore()
		host := store.addUser("host")
		room := store.addRoom(host, "study-hall", false)
		room.Topic = &models.Topic{Name: "Databases"}

		client := &fakeCompletionClient{response: groq.CompletionResponse{Text: validQuizJSON}}
		svc := NewQuizService(store, client)

		result, err := svc.Generate(context.Background(), GenerateQuizParams{
			Topic:  "Networking",
			RoomID: &room.ID,
			UserID: &host.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Networking", result.Topic)
	})

	t.Run("room without a topic and no explicit topic", func(t *testing.T) {
		store := newMemStore()
		host := store.addUser("host")
		room := store.addRoom(host, "study-hall", false)

		client := &fakeCompletionClient{response: groq.CompletionResponse{Text: validQuizJSON}}
		svc := NewQuizService(store, client)

		_, err := svc.Generate(context.Background(), GenerateQuizParams{
			RoomID: &room.ID,
			UserID: &host.ID,
		})
		assert.ErrorIs(t, err, ErrTopicRequired)
	})

	t.Run("membership is enforced before calling out", func(t *testing.T) {
		store := newMemStore()
		host := store.addUser("host")
		outsider := store.addUser("outsider")
		room := store.addRoom(host, "study-hall", true)
		room.Topic = &models.Topic{Name: "Databases"}

		client := &fakeCompletionClient{response: groq.CompletionResponse{Text: validQuizJSON}}
		svc := NewQuizService(store, client)

		_, err := svc.Generate(context.Background(), GenerateQuizParams{
			RoomID: &room.ID,
			UserID: &outsider.ID,
		})
		assert.ErrorIs(t, err, ErrMembershipRequired)
		assert.Zero(t, client.calls)
	})
}
