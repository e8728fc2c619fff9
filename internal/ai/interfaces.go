package ai

import "context"

// AIProvider interface for different AI implementations
// All generation methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	GenerateText(ctx context.Context, operation, prompt string) (string, *TokenUsage, error)
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
