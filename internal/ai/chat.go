package ai

import (
	"context"

	"careercompass/internal/errors"
	"careercompass/internal/types"
)

// ChatClient answers career questions, preferring the configured AI provider
// and degrading to canned guidance when the provider is unavailable or fails.
type ChatClient struct {
	service *Service
	logger  *errors.Logger
}

// NewChatClient creates a chat client. A nil service is valid and means every
// response comes from the fallback advisor.
func NewChatClient(service *Service, logger *errors.Logger) *ChatClient {
	return &ChatClient{
		service: service,
		logger:  logger,
	}
}

// Respond produces an answer for the user's message. The retrieved slice
// carries knowledge base snippets relevant to the question.
func (c *ChatClient) Respond(ctx context.Context, input types.ChatInput, retrieved []string) (types.ChatOutput, *TokenUsage, error) {
	matchScore := 0
	if input.Context != nil {
		matchScore = input.Context.MatchScore
	}

	if c.service == nil {
		return types.ChatOutput{
			Response: FallbackChatResponse(input.Message, matchScore),
			Model:    FallbackModel,
		}, nil, nil
	}

	prompt := BuildChatPrompt(input, retrieved)
	text, tokenUsage, err := c.service.GenerateText(ctx, prompt)
	if err != nil {
		c.logger.Warn("Chat generation failed, serving fallback guidance",
			"model", c.service.Model(),
			"error", err.Error())
		return types.ChatOutput{
			Response: FallbackChatResponse(input.Message, matchScore),
			Model:    FallbackModel,
		}, nil, nil
	}

	return types.ChatOutput{
		Response: text,
		Model:    c.service.Model(),
	}, tokenUsage, nil
}
