package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/thereayou/studybud/internal/handlers"
	"github.com/thereayou/studybud/internal/middleware"
	"github.com/thereayou/studybud/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	roomH *handlers.RoomHandler,
	joinH *handlers.JoinRequestHandler,
	messageH *handlers.MessageHandler,
	pollH *handlers.PollHandler,
	quizH *handlers.QuizHandler,
) {
	authRequired := middleware.AuthMiddleware(jwtMgr, rdb)
	authOptional := middleware.OptionalAuthMiddleware(jwtMgr, rdb)

	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authRequired, authH.Logout)
		authGroup.POST("/change-password", authRequired, authH.ChangePassword)
	}

	// API endpoints
	api := r.Group("/api/v1")
	{
		api.GET("/users/me", authRequired, userH.GetMe)
		api.PUT("/users/me", authRequired, userH.UpdateMe)
		api.GET("/users/:id", authRequired, userH.GetUser)

		api.GET("/topics", authOptional, roomH.ListTopics)
		api.GET("/activity", authRequired, roomH.Activity)

		api.GET("/rooms", authOptional, roomH.ListRooms)
		api.POST("/rooms", authRequired, roomH.CreateRoom)
		api.GET("/rooms/:id", authOptional, roomH.GetRoom)
		api.PUT("/rooms/:id", authRequired, roomH.UpdateRoom)
		api.DELETE("/rooms/:id", authRequired, roomH.DeleteRoom)

		api.POST("/rooms/:id/join-requests", authRequired, joinH.RequestJoin)
		api.GET("/rooms/:id/join-requests", authRequired, joinH.ListJoinRequests)
		api.PUT("/join-requests/:id", authRequired, joinH.ProcessJoinRequest)
		api.DELETE("/rooms/:id/participants/me", authRequired, joinH.LeaveRoom)

		api.POST("/rooms/:id/messages", authRequired, messageH.PostMessage)
		api.DELETE("/messages/:id", authRequired, messageH.DeleteMessage)
		api.POST("/messages/:id/reactions", authRequired, messageH.ToggleReaction)
		api.GET("/messages/:id/reactions", authRequired, messageH.ListReactions)

		api.POST("/rooms/:id/polls", authRequired, pollH.CreatePoll)
		api.GET("/rooms/:id/polls", authRequired, pollH.ListRoomPolls)
		api.POST("/polls/options/:option_id/vote", authRequired, pollH.Vote)

		api.POST("/generate-quiz", authRequired, quizH.GenerateQuiz)
		api.POST("/rooms/:id/generate-quiz", authRequired, quizH.GenerateRoomQuiz)
		api.POST("/groq-chat", authRequired, quizH.Chat)
	}
}
