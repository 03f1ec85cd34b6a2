package prompts

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/go-collection-boot/async"

	"github.com/Vasudevshetty/studysyncs/llm"
)

// ContextualizeQuery asks the model to rewrite the latest question as a
// standalone query, using the dialogue history to resolve references.
// Callers handle the empty-history fast path; this always round-trips.
func ContextualizeQuery(ctx context.Context, client llm.LLMClient, query string, history []llm.Message) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt("templates/contextualize_system.md", map[string]string{})
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
			llm.WithTemperature(0.3),
			llm.WithMaxTokens(512),
		)
		if err != nil {
			return "", err
		}

		return strings.TrimSpace(response), nil
	})
}
