package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"careercompass/internal/ai"
	"careercompass/internal/engine"
	"careercompass/internal/extract"
	"careercompass/internal/knowledge"
	"careercompass/internal/observability"
	"careercompass/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// heuristicModel is reported when no AI provider contributed to a result
const heuristicModel = "heuristic"

// augmentService creates the AI service used to augment skill extraction.
// Analysis degrades to pure heuristic extraction when the service cannot
// be created, so a nil return is not an error for the caller.
func (s *Server) augmentService() *ai.Service {
	augmentConfig := s.AppConfig.GetAugmentConfig()
	aiService, err := ai.NewService(&augmentConfig, "augment", s.AppConfig.Knowledge.EmbedModel, s.Logger)
	if err != nil {
		s.Logger.Warn("AI augmentation unavailable, falling back to heuristic extraction",
			"error", err.Error())
		return nil
	}
	return aiService
}

// chatService creates the AI service used for coaching conversations.
// The chat client accepts a nil service and answers from canned guidance.
func (s *Server) chatService() *ai.Service {
	chatConfig := s.AppConfig.GetChatConfig()
	aiService, err := ai.NewService(&chatConfig, "chat", s.AppConfig.Knowledge.EmbedModel, s.Logger)
	if err != nil {
		s.Logger.Warn("Chat AI service unavailable, using fallback responses",
			"error", err.Error())
		return nil
	}
	return aiService
}

// createAnalyzeHandler wraps the analyze handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careercompass.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// An empty job description is scored neutrally, a missing resume is not
		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resume_text field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume text too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large", fmt.Sprintf("resume_text exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}
		if len(req.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("job_description exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "analyze"),
		)

		analyzer := &engine.Analyzer{
			Weights: s.AppConfig.Analysis.Scoring.Weights(),
			Model:   heuristicModel,
		}
		aiService := s.augmentService()
		if aiService != nil {
			analyzer.Augmenter = aiService
			analyzer.Model = aiService.Model()
		}

		metrics := om.GetMetrics()
		var result types.AnalyzeOutput
		err := metrics.TrackAIOperationWithTokens(ctx, "analyze", func(ctx context.Context) *observability.AIOperationResult {
			result = analyzer.Analyze(ctx, req.ResumeText, req.JobDescription)
			return &observability.AIOperationResult{}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			metrics.RecordBusinessMetric(ctx, "analysis_performed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusInternalServerError)
			return
		}

		if aiService != nil && len(result.Gaps) > 0 {
			if tip, tipErr := aiService.SuggestTopTip(ctx, result.Gaps, req.JobDescription); tipErr == nil {
				result.TopTip = tip
			} else {
				s.Logger.Debug("Tip generation unavailable, keeping heuristic tip", "error", tipErr)
			}
		}

		metrics.RecordBusinessMetric(ctx, "analysis_performed", true, om,
			attribute.Int("match_score", result.MatchScore),
			attribute.Int("gaps_count", len(result.Gaps)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("match_score", result.MatchScore),
			attribute.Int("matched_skills", len(result.MatchedSkills)),
			attribute.Int("missing_skills", len(result.MissingSkills)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createChatHandler wraps the coaching chat handler with observability
func (s *Server) createChatHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careercompass.api")
		ctx, span := tracer.Start(ctx, "api.chat")
		defer span.End()

		var req ChatRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Message) == "" {
			err := fmt.Errorf("missing message")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing message", "message field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.message_length", len(req.Message)),
			attribute.Int("request.history_turns", len(req.History)),
			attribute.String("operation", "chat"),
		)

		input := types.ChatInput{
			Message: req.Message,
			Context: req.Context,
			History: req.History,
		}

		retrieved := s.retrieveGuidance(ctx, req.Message)
		span.SetAttributes(attribute.Int("retrieval.snippets", len(retrieved)))

		chatClient := ai.NewChatClient(s.chatService(), s.Logger)

		metrics := om.GetMetrics()
		var result types.ChatOutput
		err := metrics.TrackAIOperationWithTokens(ctx, "chat", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := chatClient.Respond(ctx, input, retrieved)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "chat_handled", false, om)
			writeErrorResponse(w, "Failed to generate chat response", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "chat_handled", true, om,
			attribute.String("model", result.Model))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("response.model", result.Model),
			attribute.Int("response.length", len(result.Response)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// retrieveGuidance searches the knowledge base for content relevant to the
// user's message. Retrieval failures only reduce the prompt context.
func (s *Server) retrieveGuidance(ctx context.Context, message string) []string {
	if s.Knowledge == nil || s.Knowledge.Count() == 0 {
		return nil
	}

	results, err := s.Knowledge.Search(ctx, message, s.AppConfig.Knowledge.TopK)
	if err != nil {
		s.Logger.Warn("Knowledge base search failed", "error", err.Error())
		return nil
	}

	return knowledge.Snippets(results, 500)
}

// createExtractTextHandler wraps the document text extraction handler with observability
func (s *Server) createExtractTextHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careercompass.api")
		ctx, span := tracer.Start(ctx, "api.extract_text")
		defer span.End()

		var req ExtractTextRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.FileContent) == "" {
			err := fmt.Errorf("missing file content")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing file content", "file_content field is required", http.StatusBadRequest)
			return
		}

		data, err := base64.StdEncoding.DecodeString(req.FileContent)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid file content", "file_content must be base64-encoded", http.StatusBadRequest)
			return
		}

		if maxSize := s.AppConfig.App.MaxFileSize; maxSize > 0 && int64(len(data)) > maxSize {
			err := fmt.Errorf("file too large: %d bytes", len(data))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "File too large", fmt.Sprintf("file exceeds size limit of %d bytes", maxSize), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.file_name", req.FileName),
			attribute.String("request.file_type", req.FileType),
			attribute.Int("request.file_bytes", len(data)),
			attribute.String("operation", "extract_text"),
		)

		metrics := om.GetMetrics()
		text, err := extract.Text(req.FileName, req.FileType, data)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "extraction"))
			metrics.RecordBusinessMetric(ctx, "text_extracted", false, om,
				attribute.String("file_type", req.FileType))
			writeErrorResponse(w, "Failed to extract text", err.Error(), http.StatusBadRequest)
			return
		}

		result := types.ExtractTextOutput{
			Text:      text,
			CharCount: utf8.RuneCountInString(text),
		}

		metrics.RecordBusinessMetric(ctx, "text_extracted", true, om,
			attribute.String("file_type", req.FileType),
			attribute.Int("char_count", result.CharCount))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.char_count", result.CharCount),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createExtractSkillsHandler wraps the standalone skill extraction handler with observability
func (s *Server) createExtractSkillsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careercompass.api")
		ctx, span := tracer.Start(ctx, "api.extract_skills")
		defer span.End()

		var req ExtractSkillsRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Text) == "" {
			err := fmt.Errorf("missing text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing text", "text field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.text_length", len(req.Text)),
			attribute.String("operation", "extract_skills"),
		)

		model := heuristicModel
		var gen engine.Generator
		if aiService := s.augmentService(); aiService != nil {
			gen = aiService
			model = aiService.Model()
		}

		metrics := om.GetMetrics()
		var skills []string
		err := metrics.TrackAIOperationWithTokens(ctx, "extract_skills", func(ctx context.Context) *observability.AIOperationResult {
			skills = engine.ExtractSkillsWithAI(ctx, gen, req.Text)
			return &observability.AIOperationResult{}
		}, om)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to extract skills", err.Error(), http.StatusInternalServerError)
			return
		}

		result := types.ExtractSkillsOutput{
			Skills: skills,
			Model:  model,
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.skills", len(result.Skills)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limited responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
