package prompts

import (
	"context"

	"github.com/SaiNageswarS/go-collection-boot/async"

	"github.com/Vasudevshetty/studysyncs/llm"
)

// GenerateVideoQuestions asks for a JSON question set over a video
// transcript. The raw reply goes through the extractor; no parsing here.
func GenerateVideoQuestions(ctx context.Context, client llm.LLMClient, transcript string, count int) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt("templates/video_questions_system.md", map[string]string{})
		if err != nil {
			return "", err
		}

		userPrompt, err := loadPrompt("templates/video_questions_user.md", map[string]any{
			"Transcript": transcript,
			"Count":      count,
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
			llm.WithTemperature(0.4),
			llm.WithMaxTokens(4096),
		)

		return response, err
	})
}

func GenerateAptitudeQuestions(ctx context.Context, client llm.LLMClient, count int) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt("templates/aptitude_questions_system.md", map[string]string{})
		if err != nil {
			return "", err
		}

		userPrompt, err := loadPrompt("templates/aptitude_questions_user.md", map[string]any{
			"Count": count,
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
			llm.WithTemperature(0.7),
			llm.WithMaxTokens(4096),
		)

		return response, err
	})
}
