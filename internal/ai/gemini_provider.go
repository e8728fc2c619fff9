package ai

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"careercompass/internal/config"
	ccerrors "careercompass/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

const (
	modelCheckTimeout = 10 * time.Second
	maxRetryBackoff   = 30 * time.Second
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client          *genai.Client
	httpClient      *http.Client
	config          *config.OperationAIConfig
	embedModel      string
	generateBreaker *GenerateBreaker
	embedBreaker    *EmbedBreaker
	modelBreaker    *ModelBreaker
	logger          *ccerrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType, embedModel string, logger *ccerrors.Logger) (*GeminiProvider, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, ccerrors.NewAIError(ccerrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:          client,
		httpClient:      &http.Client{Timeout: *cfg.Timeout},
		config:          cfg,
		embedModel:      embedModel,
		generateBreaker: NewGenerateBreaker(operationType, cfg, logger),
		embedBreaker:    NewEmbedBreaker(operationType, cfg, logger),
		modelBreaker:    NewModelBreaker(operationType, cfg, logger),
		logger:          logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	info := &ModelInfo{Name: g.config.Model}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.Execute(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		info.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return info
	}

	info.Available = true
	info.DisplayName = model.DisplayName
	info.Version = model.Version

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", info.DisplayName,
		"version", info.Version)

	return info
}

// GenerateText runs a free-form text generation request against the configured model
func (g *GeminiProvider) GenerateText(ctx context.Context, operation, prompt string) (string, *TokenUsage, error) {
	tracer := otel.Tracer("careercompass.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operation)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
		attribute.Int("input.prompt_length", len(prompt)),
	)

	genaiConfig := &genai.GenerateContentConfig{}
	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}

	result, err := g.generateBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.generateWithRetry(ctx, operation, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(prompt), genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, ccerrors.NewAIError(ccerrors.ErrCodeAIServiceFailed,
			"Failed to generate content for "+operation, err)
	}

	text := result.Text()
	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.response_length", len(text)),
	)
	return text, tokenUsage, nil
}

// Embed computes embedding vectors for a batch of texts using the embedding model
func (g *GeminiProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	tracer := otel.Tracer("careercompass.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.embed")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.embed_model", g.embedModel),
		attribute.Int("input.batch_size", len(texts)),
	)

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	result, err := g.embedBreaker.Execute(func() (*genai.EmbedContentResponse, error) {
		return g.client.Models.EmbedContent(ctx, g.embedModel, contents, &genai.EmbedContentConfig{})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, ccerrors.NewAIError(ccerrors.ErrCodeEmbeddingFailed,
			"Failed to embed content", err)
	}

	if len(result.Embeddings) != len(texts) {
		err := fmt.Errorf("embedding count mismatch: got %d, want %d", len(result.Embeddings), len(texts))
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, ccerrors.NewAIError(ccerrors.ErrCodeEmbeddingFailed,
			"Embedding response incomplete", err)
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, embedding := range result.Embeddings {
		vectors[i] = embedding.Values
	}

	span.SetAttributes(attribute.Bool("success", true))
	return vectors, nil
}

// generateWithRetry retries fn with exponential backoff for errors that look
// transient. Auth and invalid-input errors fail immediately.
func (g *GeminiProvider) generateWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	maxRetries := *g.config.MaxRetries
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", maxRetries,
				"error", lastErr.Error())

			select {
			case <-time.After(retryBackoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}
		lastErr = err

		if !isRetryable(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", maxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, maxRetries, lastErr)
}

// retryBackoff returns the delay before the given retry attempt: exponential
// growth with jitter, capped at maxRetryBackoff. Jitter keeps concurrent
// callers from retrying in lockstep.
func retryBackoff(attempt int) time.Duration {
	base := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
	jitterMax := big.NewInt(int64(float64(base) * 0.1))
	jitterBig, _ := rand.Int(rand.Reader, jitterMax)
	return min(base+time.Duration(jitterBig.Int64()), maxRetryBackoff)
}

// isRetryable treats network errors and 429/5xx API responses as transient.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	return map[string]any{
		"ai_operations":    g.generateBreaker.Stats(),
		"embed_operations": g.embedBreaker.Stats(),
		"model_operations": g.modelBreaker.Stats(),
		"overall_healthy": g.generateBreaker.Healthy() &&
			g.embedBreaker.Healthy() &&
			g.modelBreaker.Healthy(),
	}
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
