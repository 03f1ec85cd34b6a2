package services

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/SaiNageswarS/go-collection-boot/linq"

	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/db"
)

// SessionReader is the session-log surface the HTTP layer needs.
type SessionReader interface {
	History(ctx context.Context, sessionID string) ([]db.TurnModel, error)
	AllSessionIDs(ctx context.Context) ([]string, error)
	SessionIDsForUser(ctx context.Context, userID string) ([]string, error)
	Create(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, sessionID, userID string) (int64, error)
}

type SessionHandler struct {
	store SessionReader
}

func NewSessionHandler(store SessionReader) *SessionHandler {
	return &SessionHandler{store: store}
}

// GET /sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	ids, err := h.store.AllSessionIDs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"sessions": ids})
}

// GET /sessions_by_user?user_id=
func (h *SessionHandler) ListSessionsByUser(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		respondError(c, apperr.Newf(apperr.InvalidArgument, "user_id is required"))
		return
	}

	ids, err := h.store.SessionIDsForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user_id": userID, "sessions": ids})
}

type chatEntry struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// GET /chat_history?session_id=
func (h *SessionHandler) ChatHistory(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		respondError(c, apperr.Newf(apperr.InvalidArgument, "session_id is required"))
		return
	}

	turns, err := h.store.History(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(turns) == 0 {
		respondError(c, apperr.Newf(apperr.NotFound, "no chats found for session %s", sessionID))
		return
	}

	chats := linq.Map(turns, func(t db.TurnModel) chatEntry {
		return chatEntry{Query: t.Query, Response: t.Response, CreatedAt: t.CreatedAt}
	})
	respondOK(c, gin.H{"session_id": sessionID, "chats": chats})
}

// POST /create_session?user_id=
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID := c.DefaultQuery("user_id", db.AnonymousUser)

	sessionID, err := h.store.Create(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"session_id": sessionID, "user_id": userID, "status": "created"})
}

// DELETE /delete_session?session_id=&user_id=
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		respondError(c, apperr.Newf(apperr.InvalidArgument, "session_id is required"))
		return
	}
	userID := c.Query("user_id")

	deleted, err := h.store.Delete(c.Request.Context(), sessionID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if deleted == 0 {
		respondError(c, apperr.Newf(apperr.NotFound, "no records found for session %s", sessionID))
		return
	}
	respondOK(c, gin.H{
		"session_id":      sessionID,
		"user_id":         userID,
		"deleted_records": deleted,
		"status":          "deleted",
	})
}
