package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"careercompass/internal/ai"
	"careercompass/internal/config"
)

// eachAIOperation builds the AI service for every configured operation and
// collects fn's verdict per operation. Construction errors are passed to fn
// so health endpoints can report them instead of failing.
func (s *Server) eachAIOperation(fn func(op string, svc *ai.Service, err error) any) map[string]any {
	embedModel := s.AppConfig.Knowledge.EmbedModel
	configs := map[string]config.OperationAIConfig{
		"augment": s.AppConfig.GetAugmentConfig(),
		"chat":    s.AppConfig.GetChatConfig(),
	}

	out := make(map[string]any, len(configs))
	for op, cfg := range configs {
		svc, err := ai.NewService(&cfg, op, embedModel, s.Logger)
		out[op] = fn(op, svc, err)
	}
	return out
}

// healthHandler provides a comprehensive health check endpoint including AI model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.AppConfig.Observability.HealthCheck.Timeout)
	defer cancel()

	aiStatus := s.eachAIOperation(func(op string, svc *ai.Service, err error) any {
		if err != nil {
			return map[string]any{
				"available": false,
				"error":     fmt.Sprintf("Failed to create %s service: %v", op, err),
			}
		}
		return svc.GetModelInfo(ctx)
	})

	response := map[string]any{
		"status":           "healthy",
		"service":          "careercompass",
		"version":          s.Version,
		"ai_models":        aiStatus,
		"circuit_breakers": s.checkCircuitBreakerHealth(),
		"knowledge_base":   s.knowledgeStatus(),
	}

	// The knowledge base is optional and a degraded one never takes the
	// service down; only unavailable AI models do.
	if !allModelsAvailable(aiStatus) {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	s.writeJSON(w, response)
}

func allModelsAvailable(aiStatus map[string]any) bool {
	for _, status := range aiStatus {
		switch v := status.(type) {
		case *ai.ModelInfo:
			if !v.Available {
				return false
			}
		case map[string]any:
			if available, ok := v["available"].(bool); ok && !available {
				return false
			}
		}
	}
	return true
}

// checkCircuitBreakerHealth checks the health of circuit breakers for all AI operations
func (s *Server) checkCircuitBreakerHealth() map[string]any {
	return s.eachAIOperation(func(op string, svc *ai.Service, err error) any {
		if err != nil {
			return map[string]any{
				"available": false,
				"error":     fmt.Sprintf("Failed to create %s service: %v", op, err),
			}
		}
		return map[string]any{
			"available": true,
			"message":   fmt.Sprintf("Circuit breaker integrated with %s service", op),
		}
	})
}

// knowledgeStatus reports the state of the retrieval knowledge base
func (s *Server) knowledgeStatus() map[string]any {
	status := map[string]any{
		"enabled": s.AppConfig.Knowledge.Enabled,
	}

	if !s.AppConfig.Knowledge.Enabled || s.Knowledge == nil {
		return status
	}

	status["documents"] = s.Knowledge.Count()
	status["path"] = s.AppConfig.Knowledge.Path

	if s.knowledgeWatcher != nil {
		status["watcher_running"] = s.knowledgeWatcher.IsRunning()
	}

	return status
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "careercompass",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
		"knowledge_base": s.knowledgeStatus(),
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{"enabled": false}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	s.writeJSON(w, response)
}

func (s *Server) writeJSON(w http.ResponseWriter, response any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: error, Message: message}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
