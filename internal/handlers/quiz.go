package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/handlers/dto"
	"github.com/thereayou/studybud/internal/middleware"
	"github.com/thereayou/studybud/internal/services"
	"github.com/thereayou/studybud/pkg/groq"
)

type QuizHandler struct {
	quiz   *services.QuizService
	client services.CompletionClient
}

func NewQuizHandler(quiz *services.QuizService, client services.CompletionClient) *QuizHandler {
	return &QuizHandler{quiz: quiz, client: client}
}

// GenerateQuiz generates a quiz on an explicit topic.
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	h.generate(c, nil)
}

// GenerateRoomQuiz generates a quiz tied to a room; the room's topic is
// the fallback when none is given, and membership is enforced.
func (h *QuizHandler) GenerateRoomQuiz(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	h.generate(c, &roomID)
}

func (h *QuizHandler) generate(c *gin.Context, roomID *uuid.UUID) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.quiz.Generate(c.Request.Context(), services.GenerateQuizParams{
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Count:      req.Count,
		RoomID:     roomID,
		UserID:     &userID,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"quiz":       result.Quiz,
		"topic":      result.Topic,
		"difficulty": result.Difficulty,
		"count":      result.Count,
	})
}

// Chat is the raw completion passthrough.
func (h *QuizHandler) Chat(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "completion client not configured"})
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = 1.0
	}

	completion, err := h.client.Complete(c.Request.Context(), groq.CompletionRequest{
		Model:       req.Model,
		Prompt:      req.Prompt,
		Temperature: temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "completion request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": completion.Text,
		"model":    completion.Model,
		"usage": gin.H{
			"input_tokens":  completion.Usage.PromptTokens,
			"output_tokens": completion.Usage.CompletionTokens,
			"total_tokens":  completion.Usage.TotalTokens,
		},
	})
}
