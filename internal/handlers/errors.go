package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/studybud/internal/services"
)

// writeServiceError maps the engines' typed failures onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	var parseErr *services.QuizParseError

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrNotFound.Error()})
	case errors.Is(err, services.ErrNotAuthorized),
		errors.Is(err, services.ErrMembershipRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrDuplicateRequest),
		errors.Is(err, services.ErrInvalidDecision),
		errors.Is(err, services.ErrInsufficientOptions),
		errors.Is(err, services.ErrRoomNotPrivate),
		errors.Is(err, services.ErrTopicRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &parseErr):
		// Keep the raw model output so callers can see what came back.
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        parseErr.Error(),
			"raw_response": parseErr.Raw,
		})
	case errors.Is(err, services.ErrQuizUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrQuizUnavailable.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
