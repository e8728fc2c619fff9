package ai

import (
	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"

	"careercompass/internal/config"
	"careercompass/internal/errors"
)

// Breaker guards one shape of AI call with a circuit breaker. A nil *Breaker
// means the breaker is disabled and Execute passes calls straight through.
type Breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// The three call shapes the Gemini provider issues.
type (
	GenerateBreaker = Breaker[*genai.GenerateContentResponse]
	EmbedBreaker    = Breaker[*genai.EmbedContentResponse]
	ModelBreaker    = Breaker[*genai.Model]
)

// NewGenerateBreaker creates the breaker for text generation calls of one
// operation type. Returns nil when the breaker is disabled in config.
func NewGenerateBreaker(operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *GenerateBreaker {
	return newBreaker[*genai.GenerateContentResponse]("AI-"+operationType, operationType, cfg, ratioTrip(cfg), logger)
}

// NewEmbedBreaker creates the breaker for embedding calls of one operation type.
func NewEmbedBreaker(operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *EmbedBreaker {
	return newBreaker[*genai.EmbedContentResponse]("AI-Embed-"+operationType, operationType, cfg, ratioTrip(cfg), logger)
}

// NewModelBreaker creates the breaker for model info lookups. Availability
// checks are not on the request path, so the trip condition is looser than
// the configured one.
func NewModelBreaker(operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *ModelBreaker {
	trip := func(counts gobreaker.Counts) bool {
		return counts.Requests >= 5 &&
			float64(counts.TotalFailures)/float64(counts.Requests) >= 0.8
	}
	return newBreaker[*genai.Model]("AI-Model-"+operationType, operationType, cfg, trip, logger)
}

// ratioTrip builds the standard trip condition from the operation config:
// enough requests seen and the failure ratio over the threshold.
func ratioTrip(cfg *config.OperationAIConfig) func(gobreaker.Counts) bool {
	minRequests := cfg.CircuitBreaker.MinRequests
	threshold := cfg.CircuitBreaker.FailureThreshold
	return func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= minRequests && failureRatio >= threshold
	}
}

func newBreaker[T any](name, operationType string, cfg *config.OperationAIConfig, trip func(gobreaker.Counts) bool, logger *errors.Logger) *Breaker[T] {
	if !cfg.CircuitBreaker.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.CircuitBreaker.MaxRequests,
		Interval:    cfg.CircuitBreaker.Interval,
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: trip,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.Info("Circuit breaker state changed",
					"name", name,
					"operation_type", operationType,
					"from", from.String(),
					"to", to.String())
			}
		},
	}

	return &Breaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// Execute runs fn under the breaker, or directly when the breaker is disabled.
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// Stats reports the breaker's name, state, and counters.
func (b *Breaker[T]) Stats() map[string]any {
	if b == nil || b.cb == nil {
		return map[string]any{"enabled": false}
	}
	return map[string]any{
		"name":    b.cb.Name(),
		"state":   b.cb.State().String(),
		"counts":  b.cb.Counts(),
		"enabled": true,
	}
}

// Healthy reports whether the breaker is closed. A disabled breaker counts
// as healthy.
func (b *Breaker[T]) Healthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}
