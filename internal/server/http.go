package server

import (
	"time"

	"careercompass/internal/config"
	ccerrors "careercompass/internal/errors"
	"careercompass/internal/knowledge"
	"careercompass/internal/types"
)

// AnalyzeRequest represents the request body for the analyze endpoint
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// ChatRequest represents the request body for the chat endpoint
type ChatRequest struct {
	Message string             `json:"message"`
	Context *types.ChatContext `json:"context,omitempty"`
	History []types.ChatTurn   `json:"history,omitempty"`
}

// ExtractTextRequest represents an uploaded document; file_content is base64-encoded
type ExtractTextRequest struct {
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
	FileContent string `json:"file_content"`
}

// ExtractSkillsRequest represents the request body for standalone skill extraction
type ExtractSkillsRequest struct {
	Text string `json:"text"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Knowledge base for retrieval-augmented chat (initialized at startup)
	Knowledge        *knowledge.Base
	knowledgeWatcher *knowledge.Watcher

	// Logger
	Logger *ccerrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *ccerrors.Logger) *Server {
	// API keys as a set; empty entries from config are skipped.
	apiKeyMap := make(map[string]bool, len(cfg.APIKeys))
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if rl := cfg.RateLimit; rl != nil && rl.Enabled {
		rateLimiter = NewRateLimiter(rl.RequestsPerMin, rl.Window, rl.BurstCapacity, logger)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
