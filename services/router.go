package services

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Chat       *ChatHandler
	Session    *SessionHandler
	Quiz       *QuizHandler
	Assessment *AssessmentHandler
	Guidance   *GuidanceHandler
}

// NewRouter mounts all endpoints on a gin engine with CORS for the
// configured origins.
func NewRouter(h Handlers, allowedOrigins string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     splitOrigins(allowedOrigins),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"Hello": "World"})
	})

	r.POST("/chat", h.Chat.Chat)
	r.GET("/sessions", h.Session.ListSessions)
	r.GET("/sessions_by_user", h.Session.ListSessionsByUser)
	r.GET("/chat_history", h.Session.ChatHistory)
	r.POST("/create_session", h.Session.CreateSession)
	r.DELETE("/delete_session", h.Session.DeleteSession)

	r.POST("/video_questions", h.Quiz.VideoQuestions)
	r.GET("/aptitude", h.Quiz.Aptitude)
	r.POST("/assessment", h.Assessment.Assess)
	r.GET("/learner_type", h.Assessment.LearnerType)

	r.POST("/revision", h.Guidance.Revision)
	r.POST("/career_path", h.Guidance.CareerPath)
	r.POST("/recommendations", h.Guidance.Recommendations)

	return r
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
