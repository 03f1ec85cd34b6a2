package prompts

import (
	"context"

	"github.com/SaiNageswarS/go-collection-boot/async"

	"github.com/Vasudevshetty/studysyncs/llm"
)

// GenerateAnswer produces the context-grounded answer: history and the
// standalone query as messages, retrieved chunks and the learner
// directive in the system prompt. The answer is returned verbatim,
// unverified.
func GenerateAnswer(ctx context.Context, client llm.LLMClient, subject, learnerType, contextBlock, query string, history []llm.Message) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt("templates/answer_system.md", map[string]string{
			"Subject":     subject,
			"LearnerType": learnerType,
			"Context":     contextBlock,
		})
		if err != nil {
			return "", err
		}

		messages := make([]llm.Message, 0, len(history)+1)
		messages = append(messages, history...)
		messages = append(messages, llm.Message{Role: llm.RoleHuman, Content: query})

		var response string
		err = client.GenerateInference(ctx, messages, func(chunk string) error {
			response += chunk
			return nil
		},
			llm.WithSystemPrompt(systemPrompt),
			llm.WithTemperature(0.5),
			llm.WithMaxTokens(4096),
		)

		return response, err
	})
}
