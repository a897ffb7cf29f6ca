package server

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/thereayou/studybud/internal/database"
	"github.com/thereayou/studybud/internal/handlers"
	"github.com/thereayou/studybud/internal/services"
	"github.com/thereayou/studybud/pkg/auth"
	"github.com/thereayou/studybud/pkg/groq"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	// The completion client is injected; with no key configured the quiz
	// endpoints report unavailable instead of panicking on a nil global.
	var completionClient services.CompletionClient
	if apiKey := os.Getenv("GROQ_API_KEY"); apiKey != "" {
		completionClient = groq.NewClient(apiKey)
	} else {
		log.Println("GROQ_API_KEY is not set, quiz generation is disabled")
	}

	membership := services.NewMembershipService(dbConn)
	polls := services.NewPollService(dbConn)
	reactions := services.NewReactionService(dbConn)
	messages := services.NewMessageService(dbConn)
	quiz := services.NewQuizService(dbConn, completionClient)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	userH := handlers.NewUserHandler(dbConn)
	roomH := handlers.NewRoomHandler(dbConn, membership, messages, polls)
	joinH := handlers.NewJoinRequestHandler(membership)
	messageH := handlers.NewMessageHandler(messages, reactions)
	pollH := handlers.NewPollHandler(polls)
	quizH := handlers.NewQuizHandler(quiz, completionClient)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, userH, roomH, joinH, messageH, pollH, quizH)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
