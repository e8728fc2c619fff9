package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"careercompass/internal/ai"
	"careercompass/internal/config"
	ccerrors "careercompass/internal/errors"
	"careercompass/internal/observability"
	"careercompass/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	// The "test" provider is unsupported on purpose: handlers must degrade
	// to heuristic analysis and fallback chat when no AI service exists.
	cfg.AI = config.AIConfig{
		Provider:    "test",
		Model:       "test-model",
		Timeout:     5 * time.Second,
		MaxRetries:  1,
		Temperature: 0.1,
	}
	cfg.Analysis.Scoring = config.ScoringConfig{
		SkillWeight:      40,
		ExperienceWeight: 25,
		KeywordWeight:    20,
		EducationWeight:  10,
		SeniorityWeight:  5,
		NearDupHigh:      0.95,
		NearDupMid:       0.90,
		NearDupLow:       0.85,
		ZeroMatchCap:     30,
		LowMatchCap:      45,
		MinScore:         5,
		EmptyJobScore:    50,
	}
	cfg.Knowledge.TopK = 3
	cfg.App.MaxFileSize = 10 * 1024 * 1024
	cfg.Observability.HealthCheck.Timeout = time.Second
	return cfg
}

func newTestServer(t *testing.T) (*Server, *observability.ObservabilityManager) {
	t.Helper()

	logger, err := ccerrors.New("error")
	require.NoError(t, err)

	cfg := newTestConfig()
	srv := NewServer(cfg, ServerConfig{
		Host:           "127.0.0.1",
		Port:           "0",
		Version:        "test",
		MaxRequestSize: 1 << 20,
	}, logger)

	om, err := observability.NewObservabilityManager(
		observability.ObservabilityConfig{Enabled: false}, cfg)
	require.NoError(t, err)

	return srv, om
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAnalyzeHandler(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createAnalyzeHandler(om)

	rec := postJSON(t, handler, "/analyze", AnalyzeRequest{
		ResumeText:     "Senior engineer with 6 years of experience in Python, Docker and PostgreSQL. BS in Computer Science.",
		JobDescription: "Looking for a senior backend engineer with Python, Kubernetes and AWS experience.",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result types.AnalyzeOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.GreaterOrEqual(t, result.MatchScore, 5)
	assert.LessOrEqual(t, result.MatchScore, 100)
	assert.Equal(t, "heuristic", result.Model)
	assert.NotEmpty(t, result.TopTip)
	assert.NotEmpty(t, result.MatchedSkills)
	assert.NotEmpty(t, result.MissingSkills)
}

func TestAnalyzeHandlerEmptyJobDescription(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createAnalyzeHandler(om)

	rec := postJSON(t, handler, "/analyze", AnalyzeRequest{
		ResumeText: "Engineer with Python experience.",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result types.AnalyzeOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 50, result.MatchScore)
}

func TestAnalyzeHandlerMissingResume(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createAnalyzeHandler(om)

	rec := postJSON(t, handler, "/analyze", AnalyzeRequest{
		JobDescription: "Backend engineer role.",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "Missing resume text", errResp.Error)
}

func TestAnalyzeHandlerRejectsWrongContentType(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createAnalyzeHandler(om)

	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader([]byte("resume")))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandlerFallback(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createChatHandler(om)

	rec := postJSON(t, handler, "/chat", ChatRequest{
		Message: "How should I prepare for the interview?",
		Context: &types.ChatContext{MatchScore: 72},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result types.ChatOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, ai.FallbackModel, result.Model)
	assert.NotEmpty(t, result.Response)
}

func TestChatHandlerMissingMessage(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createChatHandler(om)

	rec := postJSON(t, handler, "/chat", ChatRequest{Message: "   "})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "Missing message", errResp.Error)
}

func TestExtractTextHandler(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createExtractTextHandler(om)

	content := "Jane Doe\nEngineer"
	rec := postJSON(t, handler, "/extract-text", ExtractTextRequest{
		FileName:    "resume.txt",
		FileType:    "txt",
		FileContent: base64.StdEncoding.EncodeToString([]byte(content)),
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result types.ExtractTextOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, content, result.Text)
	assert.Equal(t, len(content), result.CharCount)
}

func TestExtractTextHandlerInvalidBase64(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createExtractTextHandler(om)

	rec := postJSON(t, handler, "/extract-text", ExtractTextRequest{
		FileName:    "resume.txt",
		FileType:    "txt",
		FileContent: "not base64!!",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "Invalid file content", errResp.Error)
}

func TestExtractTextHandlerFileTooLarge(t *testing.T) {
	srv, om := newTestServer(t)
	srv.AppConfig.App.MaxFileSize = 8
	handler := srv.createExtractTextHandler(om)

	rec := postJSON(t, handler, "/extract-text", ExtractTextRequest{
		FileName:    "resume.txt",
		FileType:    "txt",
		FileContent: base64.StdEncoding.EncodeToString([]byte("this is longer than eight bytes")),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractSkillsHandler(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createExtractSkillsHandler(om)

	rec := postJSON(t, handler, "/extract-skills", ExtractSkillsRequest{
		Text: "Experienced in Python, Docker and Kubernetes.",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result types.ExtractSkillsOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "heuristic", result.Model)
	assert.Contains(t, result.Skills, "Python")
	assert.Contains(t, result.Skills, "Docker")
	assert.Contains(t, result.Skills, "Kubernetes")
}

func TestAuthMiddleware(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.APIKeys = map[string]bool{"secret-key-123456": true}

	var called bool
	handler := srv.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing key", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("invalid key", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		req.Header.Set("X-API-Key", "wrong-key")
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("valid header key", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		req.Header.Set("X-API-Key", "secret-key-123456")
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	})

	t.Run("valid bearer token", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		req.Header.Set("Authorization", "Bearer secret-key-123456")
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	})

	t.Run("no keys configured skips auth", func(t *testing.T) {
		srv.APIKeys = map[string]bool{}
		called = false
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	srv, _ := newTestServer(t)

	handler := srv.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("generates id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("preserves client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "client-supplied-id")
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, "client-supplied-id", rec.Header().Get("X-Request-ID"))
	})
}

func TestStatsHandler(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	srv.statsHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, "careercompass", stats["service"])
	assert.Contains(t, stats, "rate_limiting")
	assert.Contains(t, stats, "knowledge_base")
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "12345678****", maskAPIKey("1234567890abcdef"))
}
