package dto

type CreateRoomRequest struct {
	Name           string `json:"name" binding:"required"`
	Topic          string `json:"topic" binding:"required"`
	Description    string `json:"description"`
	IsPrivate      bool   `json:"is_private"`
	WelcomeMessage string `json:"welcome_message"`
}

type UpdateRoomRequest struct {
	Name           string  `json:"name"`
	Topic          string  `json:"topic"`
	Description    *string `json:"description"`
	IsPrivate      *bool   `json:"is_private"`
	WelcomeMessage string  `json:"welcome_message"`
}

type PostMessageRequest struct {
	Body    string `json:"body" binding:"required"`
	FileURL string `json:"file_url"`
}

type CreatePollRequest struct {
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required"`
}

type ReactionRequest struct {
	Emoji string `json:"emoji" binding:"required"`
}

type ProcessJoinRequestRequest struct {
	Status string `json:"status" binding:"required"`
}

type GenerateQuizRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

type ChatRequest struct {
	Prompt      string  `json:"prompt" binding:"required"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}
