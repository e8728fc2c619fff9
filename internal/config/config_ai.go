package config

import "time"

// AIConfig holds AI provider configuration with per-operation overrides
type AIConfig struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	APIKey      string        `mapstructure:"apiKey"`
	MaxRetries  int           `mapstructure:"maxRetries"`
	Temperature float32       `mapstructure:"temperature"`

	// Operation-specific configurations. Unset fields fall back to the
	// top-level values above.
	Augment OperationAIConfig `mapstructure:"augment"`
	Chat    OperationAIConfig `mapstructure:"chat"`
}

// OperationAIConfig holds configuration for a specific AI operation
type OperationAIConfig struct {
	Provider       string               `mapstructure:"provider"`
	Model          string               `mapstructure:"model"`
	Timeout        *time.Duration       `mapstructure:"timeout"`
	APIKey         string               `mapstructure:"apiKey"`
	MaxRetries     *int                 `mapstructure:"maxRetries"`
	Temperature    *float32             `mapstructure:"temperature"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// CircuitBreakerConfig holds circuit breaker configuration for AI operations
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// applyOperationDefaults fills unset operation fields from the base AI config
func (c *AIConfig) applyOperationDefaults(opConfig OperationAIConfig) OperationAIConfig {
	result := opConfig

	if result.Provider == "" {
		result.Provider = c.Provider
	}
	if result.Model == "" {
		result.Model = c.Model
	}
	if result.Timeout == nil {
		result.Timeout = &c.Timeout
	}
	if result.APIKey == "" {
		result.APIKey = c.APIKey
	}
	if result.MaxRetries == nil {
		result.MaxRetries = &c.MaxRetries
	}
	if result.Temperature == nil {
		result.Temperature = &c.Temperature
	}

	return result
}

// GetAugmentConfig returns the effective configuration for skill augmentation
func (c *AIConfig) GetAugmentConfig() OperationAIConfig {
	return c.applyOperationDefaults(c.Augment)
}

// GetChatConfig returns the effective configuration for chat guidance
func (c *AIConfig) GetChatConfig() OperationAIConfig {
	return c.applyOperationDefaults(c.Chat)
}

// GetAugmentConfig exposes the augment AI configuration at the top level
func (c *Config) GetAugmentConfig() OperationAIConfig {
	return c.AI.GetAugmentConfig()
}

// GetChatConfig exposes the chat AI configuration at the top level
func (c *Config) GetChatConfig() OperationAIConfig {
	return c.AI.GetChatConfig()
}
