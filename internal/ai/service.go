package ai

import (
	"context"
	"fmt"

	"careercompass/internal/config"
	"careercompass/internal/errors"
)

// Service handles AI operations for a single configured operation type
type Service struct {
	Provider  AIProvider // Exported for access from server package
	config    *config.OperationAIConfig
	operation string
	logger    *errors.Logger
}

// NewService creates a new AI service instance with configuration for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType, embedModel string, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, embedModel, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider:  provider,
		config:    cfg,
		operation: operationType,
		logger:    logger,
	}, nil
}

// Model returns the configured model name
func (s *Service) Model() string {
	return s.config.Model
}

// Generate runs a single text generation request. It adapts the provider to
// callers that only need prompt-in, text-out semantics.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	text, _, err := s.Provider.GenerateText(ctx, s.operation, prompt)
	return text, err
}

// GenerateText runs a text generation request and reports token usage
func (s *Service) GenerateText(ctx context.Context, prompt string) (string, *TokenUsage, error) {
	return s.Provider.GenerateText(ctx, s.operation, prompt)
}

// Embed computes embedding vectors for the given texts
func (s *Service) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return s.Provider.Embed(ctx, texts)
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}
