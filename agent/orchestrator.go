package agent

import (
	"context"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Vasudevshetty/studysyncs/llm"
)

// SessionStore is the slice of the turn log the orchestrator needs.
type SessionStore interface {
	Append(ctx context.Context, sessionID, userID, query, response string) error
	HistoryAsDialogue(ctx context.Context, sessionID string) ([]llm.Message, error)
}

type QueryRewriter interface {
	Rewrite(ctx context.Context, query string, history []llm.Message) (string, error)
}

type ContextAnswerer interface {
	Answer(ctx context.Context, query, subject, learnerMode string, history []llm.Message) (string, error)
}

// ConverseResult carries the answer plus the persistence outcome.
// PersistErr non-nil means the answer was produced but its turn was not
// recorded. Callers should surface it as a warning, not a failure,
// since re-deriving the answer is wasteful.
type ConverseResult struct {
	SessionID  string
	Answer     string
	PersistErr error
}

// Orchestrator wires store, rewriter and answerer into one
// request/response cycle with the persist-after-success contract.
type Orchestrator struct {
	store    SessionStore
	rewriter QueryRewriter
	answerer ContextAnswerer
}

func NewOrchestrator(store SessionStore, rewriter QueryRewriter, answerer ContextAnswerer) *Orchestrator {
	return &Orchestrator{store: store, rewriter: rewriter, answerer: answerer}
}

// Converse resolves or mints the session id, answers the query over the
// session's dialogue, and appends the turn only after the answer
// succeeds. A failure anywhere before the append, including caller
// cancellation, leaves no turn recorded: a turn holding an error
// message as its response would corrupt every future replay.
func (o *Orchestrator) Converse(ctx context.Context, sessionID, userID, query, subject, learnerMode string) (*ConverseResult, error) {
	if sessionID == "" {
		// fresh session: mint an id, no sentinel turn needed for answering
		sessionID = uuid.New().String()
	}

	history, err := o.store.HistoryAsDialogue(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("processing failed: %w", err)
	}

	standaloneQuery, err := o.rewriter.Rewrite(ctx, query, history)
	if err != nil {
		return nil, fmt.Errorf("processing failed: %w", err)
	}

	answer, err := o.answerer.Answer(ctx, standaloneQuery, subject, learnerMode, history)
	if err != nil {
		return nil, fmt.Errorf("processing failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing failed: %w", err)
	}

	result := &ConverseResult{SessionID: sessionID, Answer: answer}
	if err := o.store.Append(ctx, sessionID, userID, query, answer); err != nil {
		logger.Log.Warn("Answer produced but not persisted",
			zap.String("sessionId", sessionID), zap.Error(err))
		result.PersistErr = err
	}
	return result, nil
}
