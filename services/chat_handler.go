package services

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Vasudevshetty/studysyncs/agent"
	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/db"
)

// Converser is the conversational pipeline behind POST /chat.
type Converser interface {
	Converse(ctx context.Context, sessionID, userID, query, subject, learnerMode string) (*agent.ConverseResult, error)
}

type ChatHandler struct {
	converser Converser
}

func NewChatHandler(converser Converser) *ChatHandler {
	return &ChatHandler{converser: converser}
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
	Warning   string `json:"warning,omitempty"`
}

// POST /chat?session_id=&user_id=&user_query=&subject=&learner_type=
func (h *ChatHandler) Chat(c *gin.Context) {
	query := c.Query("user_query")
	if query == "" {
		respondError(c, apperr.Newf(apperr.InvalidArgument, "user_query is required"))
		return
	}

	subject := c.Query("subject")
	if subject == "" {
		respondError(c, apperr.Newf(apperr.InvalidArgument, "subject is required"))
		return
	}

	userID := c.DefaultQuery("user_id", db.AnonymousUser)
	learnerMode := c.DefaultQuery("learner_type", agent.DefaultLearnerMode)

	result, err := h.converser.Converse(c.Request.Context(),
		c.Query("session_id"), userID, query, subject, learnerMode)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := chatResponse{SessionID: result.SessionID, Response: result.Answer}
	if result.PersistErr != nil {
		// the answer stands, the turn was not recorded
		resp.Warning = "response was generated but could not be saved to history"
	}
	respondOK(c, resp)
}
