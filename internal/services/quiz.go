package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/thereayou/studybud/pkg/groq"
	"gorm.io/gorm"
)

const (
	quizTemperature = 0.7
	quizMaxTokens   = 2048

	defaultQuizDifficulty    = "medium"
	defaultQuizQuestionCount = 5
)

// CompletionClient is the external AI capability the quiz engine calls.
// It is injected at construction; there is no package-level client handle.
type CompletionClient interface {
	Complete(ctx context.Context, req groq.CompletionRequest) (groq.CompletionResponse, error)
}

// QuizService wraps the completion call and defensively parses its output
// into a structured quiz. A transport failure and an unparseable response
// are distinct outcomes.
type QuizService struct {
	store  QuizStore
	client CompletionClient
}

func NewQuizService(store QuizStore, client CompletionClient) *QuizService {
	return &QuizService{store: store, client: client}
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	Title                    string         `json:"title"`
	Questions                []QuizQuestion `json:"questions"`
	RecommendedTimeInMinutes json.Number    `json:"recommendedTimeInMinutes"`
}

type GenerateQuizParams struct {
	Topic      string
	Difficulty string
	Count      int
	RoomID     *uuid.UUID
	UserID     *uuid.UUID
}

type GeneratedQuiz struct {
	Quiz       Quiz   `json:"quiz"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// Generate builds the quiz prompt, calls the model once and parses the
// result. With a room and an authenticated caller it enforces membership
// before calling out, and an empty topic falls back to the room's topic.
// The call is never retried.
func (s *QuizService) Generate(ctx context.Context, params GenerateQuizParams) (*GeneratedQuiz, error) {
	topic := strings.TrimSpace(params.Topic)
	difficulty := params.Difficulty
	if difficulty == "" {
		difficulty = defaultQuizDifficulty
	}
	count := params.Count
	if count <= 0 {
		count = defaultQuizQuestionCount
	}

	if params.RoomID != nil {
		room, err := s.store.GetRoom(*params.RoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get room: %w", err)
		}

		if params.UserID != nil {
			if !room.IsHost(*params.UserID) && !room.HasParticipant(*params.UserID) {
				return nil, ErrMembershipRequired
			}
		}

		if topic == "" && room.Topic != nil {
			topic = room.Topic.Name
		}
	}

	if topic == "" {
		return nil, ErrTopicRequired
	}

	if s.client == nil {
		return nil, ErrQuizUnavailable
	}

	completion, err := s.client.Complete(ctx, groq.CompletionRequest{
		Prompt:      buildQuizPrompt(topic, difficulty, count),
		Temperature: quizTemperature,
		MaxTokens:   quizMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuizUnavailable, err)
	}

	quiz, err := parseQuiz(completion.Text)
	if err != nil {
		return nil, &QuizParseError{Raw: completion.Text, Err: err}
	}

	return &GeneratedQuiz{
		Quiz:       *quiz,
		Topic:      topic,
		Difficulty: difficulty,
		Count:      count,
	}, nil
}

func buildQuizPrompt(topic, difficulty string, count int) string {
	return fmt.Sprintf(`Generate a timed quiz of %d multiple-choice questions on the topic %q with difficulty level %s.

Format the response as a JSON object with the following structure:
{
  "title": "Quiz title",
  "questions": [
    {
      "question": "Question text",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": "Correct option letter (A, B, C, or D)",
      "explanation": "Brief explanation of the answer"
    },
    ... more questions
  ],
  "recommendedTimeInMinutes": recommended time to complete this quiz
}

Make sure all questions are factually accurate and each has exactly 4 answer options.`, count, topic, difficulty)
}

// parseQuiz extracts the quiz JSON from raw model output. The model may
// wrap the JSON in a fenced code block, labelled json or not; the first
// such fence is stripped before parsing.
func parseQuiz(raw string) (*Quiz, error) {
	text := stripCodeFence(raw)

	var quiz Quiz
	if err := json.Unmarshal([]byte(text), &quiz); err != nil {
		return nil, err
	}
	if quiz.Title == "" || len(quiz.Questions) == 0 {
		return nil, errors.New("invalid quiz data structure")
	}

	return &quiz, nil
}

func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+len("```"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	}
	return strings.TrimSpace(text)
}
