package agent

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"go.uber.org/zap"

	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/llm"
	"github.com/Vasudevshetty/studysyncs/prompts"
)

// Contextualizer rewrites the latest question into a standalone query so
// retrieval is not confused by pronouns referring to earlier turns.
type Contextualizer struct {
	llm llm.LLMClient
}

func NewContextualizer(client llm.LLMClient) *Contextualizer {
	return &Contextualizer{llm: client}
}

// Rewrite returns the query unchanged when there is no history.
// Rewriting with no context is wasteful and undefined.
func (c *Contextualizer) Rewrite(ctx context.Context, query string, history []llm.Message) (string, error) {
	if len(history) == 0 {
		return query, nil
	}

	standalone, err := async.Await(prompts.ContextualizeQuery(ctx, c.llm, query, history))
	if err != nil {
		logger.Error("Failed to contextualize query", zap.Error(err))
		return "", apperr.New(apperr.UpstreamFailure, err)
	}

	return standalone, nil
}
