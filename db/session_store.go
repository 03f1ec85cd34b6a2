package db

import (
	"context"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/llm"
)

// SessionStore persists the turn-by-turn conversation log. A session is
// not a materialized record: it exists once at least one turn carries
// its id. Failures are never retried here: a retried append could
// duplicate a turn in an append-only log.
type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(gdb *gorm.DB) *SessionStore {
	return &SessionStore{db: gdb}
}

func (s *SessionStore) Append(ctx context.Context, sessionID, userID, query, response string) error {
	turn := TurnModel{
		SessionID: sessionID,
		UserID:    userID,
		Query:     query,
		Response:  response,
		CreatedAt: time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(&turn).Error; err != nil {
		logger.Error("Failed to append turn", zap.String("sessionId", sessionID), zap.Error(err))
		return apperr.New(apperr.PersistenceFailure, err)
	}
	return nil
}

// History returns the session's turns ascending by creation time, ties
// broken by insertion order. Unknown session ids yield an empty slice.
func (s *SessionStore) History(ctx context.Context, sessionID string) ([]TurnModel, error) {
	var turns []TurnModel
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&turns).Error
	if err != nil {
		return nil, apperr.New(apperr.PersistenceFailure, err)
	}
	return turns, nil
}

// HistoryAsDialogue expands each turn into a human message followed by
// an assistant message, the exact shape fed to the model as prior
// context. Reordering would corrupt the implied dialogue.
func (s *SessionStore) HistoryAsDialogue(ctx context.Context, sessionID string) ([]llm.Message, error) {
	turns, err := s.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	dialogue := make([]llm.Message, 0, len(turns)*2)
	for _, t := range turns {
		dialogue = append(dialogue,
			llm.Message{Role: llm.RoleHuman, Content: t.Query},
			llm.Message{Role: llm.RoleAssistant, Content: t.Response},
		)
	}
	return dialogue, nil
}

func (s *SessionStore) AllSessionIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&TurnModel{}).
		Distinct("session_id").
		Pluck("session_id", &ids).Error
	if err != nil {
		return nil, apperr.New(apperr.PersistenceFailure, err)
	}
	return ids, nil
}

func (s *SessionStore) SessionIDsForUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&TurnModel{}).
		Where("user_id = ?", userID).
		Distinct("session_id").
		Pluck("session_id", &ids).Error
	if err != nil {
		return nil, apperr.New(apperr.PersistenceFailure, err)
	}
	return ids, nil
}

// Create mints a session id and writes the sentinel turn that makes the
// id enumerable.
func (s *SessionStore) Create(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.New().String()
	if err := s.Append(ctx, sessionID, userID, "", SessionStartedMarker); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Delete removes the session's turns. A non-empty userID restricts the
// delete to turns owned by that user, so a caller cannot remove another
// user's session by guessing its id. Zero matched rows is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID, userID string) (int64, error) {
	tx := s.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if userID != "" {
		tx = tx.Where("user_id = ?", userID)
	}

	res := tx.Delete(&TurnModel{})
	if res.Error != nil {
		logger.Error("Failed to delete session", zap.String("sessionId", sessionID), zap.Error(res.Error))
		return 0, apperr.New(apperr.PersistenceFailure, res.Error)
	}
	return res.RowsAffected, nil
}
