package server

import (
	"net/http"
	"strings"

	"careercompass/internal/observability"

	"github.com/google/uuid"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	rateLimited := s.createRateLimitMiddleware(om)
	sizeLimited := s.requestSizeLimitMiddleware()

	// API endpoints get the full chain: request ID, rate limit, auth, body
	// size limit. Health and stats stay open for probes and dashboards.
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return s.requestIDMiddleware(rateLimited(s.authMiddleware(sizeLimited(h))))
	}

	mux.HandleFunc("/health", s.requestIDMiddleware(s.healthHandler))
	mux.HandleFunc("/stats", s.requestIDMiddleware(s.statsHandler))
	mux.HandleFunc("/analyze", protected(s.createAnalyzeHandler(om)))
	mux.HandleFunc("/chat", protected(s.createChatHandler(om)))
	mux.HandleFunc("/extract-text", protected(s.createExtractTextHandler(om)))
	mux.HandleFunc("/extract-skills", protected(s.createExtractSkillsHandler(om)))

	return mux
}

// requestIDMiddleware tags every request and response with an X-Request-ID.
// Client-supplied IDs are preserved so they can be correlated across services.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set("X-Request-ID", requestID)
		}
		w.Header().Set("X-Request-ID", requestID)

		next(w, r)
	}
}

// apiKeyFromRequest reads the client API key from the X-API-Key header, with
// an Authorization Bearer token as fallback.
func apiKeyFromRequest(r *http.Request) string {
	if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
		return apiKey
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return token
	}
	return ""
}

// authMiddleware rejects requests without a valid API key. With no keys
// configured the server runs open.
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		apiKey := apiKeyFromRequest(r)
		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"client_ip", r.RemoteAddr,
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r)
	}
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}
			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
