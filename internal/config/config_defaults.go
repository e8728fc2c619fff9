package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.7)

	// AI Configuration - Augment operation defaults
	v.SetDefault("ai.augment.provider", "gemini")
	v.SetDefault("ai.augment.model", "")
	v.SetDefault("ai.augment.timeout", 30*time.Second) // Short task, short leash
	v.SetDefault("ai.augment.apiKey", "")
	v.SetDefault("ai.augment.maxRetries", 2)
	v.SetDefault("ai.augment.temperature", 0.2) // Low temperature for list extraction

	// AI Configuration - Chat operation defaults
	v.SetDefault("ai.chat.provider", "gemini")
	v.SetDefault("ai.chat.model", "")
	v.SetDefault("ai.chat.timeout", 60*time.Second)
	v.SetDefault("ai.chat.apiKey", "")
	v.SetDefault("ai.chat.maxRetries", 3)
	v.SetDefault("ai.chat.temperature", 0.7) // Conversational tone

	// Circuit Breaker Configuration - Augment operation
	v.SetDefault("ai.augment.circuitBreaker.enabled", true)
	v.SetDefault("ai.augment.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.augment.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.augment.circuitBreaker.timeout", 30*time.Second)
	v.SetDefault("ai.augment.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.augment.circuitBreaker.failureThreshold", 0.6)

	// Circuit Breaker Configuration - Chat operation
	v.SetDefault("ai.chat.circuitBreaker.enabled", true)
	v.SetDefault("ai.chat.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.chat.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.chat.circuitBreaker.timeout", 30*time.Second)
	v.SetDefault("ai.chat.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.chat.circuitBreaker.failureThreshold", 0.6)

	// Analysis Engine - scoring formula constants
	v.SetDefault("analysis.scoring.skillWeight", 40.0)
	v.SetDefault("analysis.scoring.experienceWeight", 25.0)
	v.SetDefault("analysis.scoring.keywordWeight", 20.0)
	v.SetDefault("analysis.scoring.educationWeight", 10.0)
	v.SetDefault("analysis.scoring.seniorityWeight", 5.0)
	v.SetDefault("analysis.scoring.nearDupHigh", 0.95)
	v.SetDefault("analysis.scoring.nearDupMid", 0.90)
	v.SetDefault("analysis.scoring.nearDupLow", 0.85)
	v.SetDefault("analysis.scoring.zeroMatchCap", 30)
	v.SetDefault("analysis.scoring.lowMatchCap", 45)
	v.SetDefault("analysis.scoring.minScore", 5)
	v.SetDefault("analysis.scoring.emptyJobScore", 50)

	// Knowledge Base Configuration
	v.SetDefault("knowledge.enabled", true)
	v.SetDefault("knowledge.path", "knowledge")
	v.SetDefault("knowledge.embedModel", "gemini-embedding-001")
	v.SetDefault("knowledge.topK", 3)
	v.SetDefault("knowledge.watch", false)
	v.SetDefault("knowledge.watchDebounce", 2*time.Second)

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)

	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled")
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.certContent", "")
	v.SetDefault("server.tls.keyContent", "")
	v.SetDefault("server.tls.caContent", "")
	v.SetDefault("server.tls.minVersion", "1.2")
	v.SetDefault("server.tls.clientAuthPolicy", "require")

	// Rate Limiting Configuration defaults
	v.SetDefault("server.rateLimit.enabled", true)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", true)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "text")
	v.SetDefault("app.supportedFormats", []string{"text", "json", "markdown"})
	v.SetDefault("app.maxFileSize", int64(10*1024*1024)) // 10MB

	// Vault Configuration defaults
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "secret/data/careercompass/api-keys")
	v.SetDefault("vault.secrets.geminiKey", "secret/data/careercompass/gemini")
	v.SetDefault("vault.secrets.tlsCerts", "")

	// Observability Configuration defaults
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.serviceName", "careercompass")
	v.SetDefault("observability.serviceVersion", "dev")
	v.SetDefault("observability.serviceInstance", "")
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing defaults
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics defaults
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 30*time.Second)

	// Custom metrics defaults
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackKnowledge", true)

	// Console output defaults
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus defaults
	v.SetDefault("observability.prometheus.enabled", false)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP defaults
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "")
	v.SetDefault("observability.otlp.insecure", false)

	// Health check defaults
	v.SetDefault("observability.healthCheck.timeout", 5*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 3*time.Second)
}
