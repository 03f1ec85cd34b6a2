package prompts

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/go-collection-boot/async"

	"github.com/Vasudevshetty/studysyncs/llm"
)

// ClassifyLearner runs at low temperature: the reply is expected to be
// a bare label from a closed set, matched (not trusted) by the caller.
func ClassifyLearner(ctx context.Context, client llm.LLMClient, aptitudeScore, videoScore, total int) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt("templates/classify_learner_system.md", map[string]string{})
		if err != nil {
			return "", err
		}

		userPrompt, err := loadPrompt("templates/classify_learner_user.md", map[string]any{
			"AptitudeScore": aptitudeScore,
			"VideoScore":    videoScore,
			"Total":         total,
		})
		if err != nil {
			return "", err
		}

		var response string
		err = client.GenerateInference(ctx,
			[]llm.Message{{Role: llm.RoleHuman, Content: userPrompt}},
			func(chunk string) error {
				response += chunk
				return nil
			},
			llm.WithSystemPrompt(systemPrompt),
			llm.WithTemperature(0.1),
			llm.WithMaxTokens(16),
		)
		if err != nil {
			return "", err
		}

		return strings.TrimSpace(strings.ToLower(response)), nil
	})
}
