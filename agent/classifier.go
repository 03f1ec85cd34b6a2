package agent

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"go.uber.org/zap"

	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/llm"
	"github.com/Vasudevshetty/studysyncs/prompts"
)

// Classifier maps assessment scores to a learner type via the model.
// The reply must resolve to the closed label set; an unmatched reply is
// an error, never a guessed default.
type Classifier struct {
	llm llm.LLMClient
}

func NewClassifier(client llm.LLMClient) *Classifier {
	return &Classifier{llm: client}
}

func (c *Classifier) Classify(ctx context.Context, aptitudeScore, videoScore, total int) (string, error) {
	reply, err := async.Await(prompts.ClassifyLearner(ctx, c.llm, aptitudeScore, videoScore, total))
	if err != nil {
		logger.Error("Failed to classify learner", zap.Error(err))
		return "", apperr.New(apperr.UpstreamFailure, err)
	}

	for _, label := range learnerLabels {
		if reply == label {
			return label, nil
		}
	}

	// tolerate wrapping prose around the label
	for _, label := range learnerLabels {
		if strings.Contains(reply, label) {
			return label, nil
		}
	}

	return "", apperr.Newf(apperr.MalformedOutput, "classifier reply %q is not a learner type", reply)
}
