package prompts

import (
	"context"

	"github.com/SaiNageswarS/go-collection-boot/async"

	"github.com/Vasudevshetty/studysyncs/llm"
)

func RevisionStrategy(ctx context.Context, client llm.LLMClient, subject, topics, learnerType string) <-chan async.Result[string] {
	return singleShot(ctx, client,
		"templates/revision_system.md",
		"templates/revision_user.md",
		map[string]string{
			"Subject":     subject,
			"Topics":      topics,
			"LearnerType": learnerType,
		})
}

func CareerPath(ctx context.Context, client llm.LLMClient, interests, currentLevel string) <-chan async.Result[string] {
	return singleShot(ctx, client,
		"templates/career_path_system.md",
		"templates/career_path_user.md",
		map[string]string{
			"Interests":    interests,
			"CurrentLevel": currentLevel,
		})
}

func Recommendations(ctx context.Context, client llm.LLMClient, subject, learnerType string) <-chan async.Result[string] {
	return singleShot(ctx, client,
		"templates/recommendations_system.md",
		"templates/recommendations_user.md",
		map[string]string{
			"Subject":     subject,
			"LearnerType": learnerType,
		})
}

// singleShot is the shape shared by all stateless guidance prompts:
// one system template, one user template, one reply.
func singleShot(ctx context.Context, client llm.LLMClient, systemPath, userPath string, data map[string]string) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt(systemPath, map[string]string{})
		if err != nil {
			return "", err
		}

		userPrompt, err := loadPrompt(userPath, data)
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
			llm.WithTemperature(0.6),
			llm.WithMaxTokens(4096),
		)

		return response, err
	})
}
