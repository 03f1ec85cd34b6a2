package agent

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"go.uber.org/zap"

	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/index"
	"github.com/Vasudevshetty/studysyncs/llm"
	"github.com/Vasudevshetty/studysyncs/prompts"
)

// DefaultRetrievalK is the retrieval breadth owned by the answerer.
const DefaultRetrievalK = 4

// IndexProvider loads the similarity-search handle for a subject key.
type IndexProvider interface {
	Load(ctx context.Context, subject string) (index.Retriever, error)
}

// Answerer retrieves the top-k chunks for a standalone query and asks
// the model to answer strictly from them. Best-effort, context-grounded,
// unverified.
type Answerer struct {
	provider IndexProvider
	llm      llm.LLMClient
	k        int
}

func NewAnswerer(provider IndexProvider, client llm.LLMClient) *Answerer {
	return &Answerer{provider: provider, llm: client, k: DefaultRetrievalK}
}

func (a *Answerer) Answer(ctx context.Context, query, subject, learnerMode string, history []llm.Message) (string, error) {
	if err := ValidateLearnerMode(learnerMode); err != nil {
		return "", err
	}

	retriever, err := a.provider.Load(ctx, subject)
	if err != nil {
		return "", err
	}

	chunks, err := retriever.TopK(ctx, query, a.k)
	if err != nil {
		return "", err
	}

	// context block in similarity-rank order, best match first
	contextBlock := strings.Join(
		linq.Map(chunks, func(c index.ChunkModel) string { return c.Body }),
		"\n\n",
	)

	answer, err := async.Await(prompts.GenerateAnswer(ctx, a.llm, subject, learnerMode, contextBlock, query, history))
	if err != nil {
		logger.Error("Failed to generate answer", zap.String("subject", subject), zap.Error(err))
		return "", apperr.New(apperr.UpstreamFailure, err)
	}

	return answer, nil
}
