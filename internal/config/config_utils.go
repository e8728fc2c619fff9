package config

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// applyFallbacks fills in values that viper defaults cannot express:
// comma-split API key lists from the environment, mode-dependent TLS
// defaults, and a host-derived service instance ID.
func (c *Config) applyFallbacks() {
	if len(c.Server.APIKeys) == 0 {
		if raw := os.Getenv("CAREERCOMPASS_SERVER_APIKEYS"); raw != "" {
			keys := strings.Split(raw, ",")
			for i := range keys {
				keys[i] = strings.TrimSpace(keys[i])
			}
			c.Server.APIKeys = keys
		}
	}

	if c.Server.TLS.Mode == "mutual" && c.Server.TLS.ClientAuthPolicy == "" {
		c.Server.TLS.ClientAuthPolicy = "require"
	}
	if c.Server.TLS.MinVersion == "" && c.Server.TLS.Mode != "disabled" {
		c.Server.TLS.MinVersion = "1.2"
	}

	if c.Observability.ServiceInstance == "" {
		c.Observability.ServiceInstance = serviceInstanceID(c.Observability.ServiceName)
	}
}

func serviceInstanceID(serviceName string) string {
	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Sprintf("%s-1", serviceName)
	}
	return fmt.Sprintf("%s-%s", serviceName, hostname)
}

// watchedEnvVars are the environment variables worth calling out in the
// startup summary. GEMINI_API_KEY is kept for legacy setups.
var watchedEnvVars = []string{
	"CAREERCOMPASS_AI_APIKEY",
	"CAREERCOMPASS_AI_PROVIDER",
	"CAREERCOMPASS_AI_MODEL",
	"CAREERCOMPASS_SERVER_PORT",
	"CAREERCOMPASS_SERVER_HOST",
	"CAREERCOMPASS_APP_LOGLEVEL",
	"CAREERCOMPASS_KNOWLEDGE_PATH",
	"CAREERCOMPASS_VAULT_ENABLED",
	"GEMINI_API_KEY",
}

// logConfigurationSources logs a summary of where the effective configuration
// came from, with API keys masked.
func (c *Config) logConfigurationSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	log.Println("[CONFIG] Environment variables:")
	found := false
	for _, envVar := range watchedEnvVars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		found = true
		if strings.Contains(strings.ToLower(envVar), "key") {
			log.Printf("[CONFIG]   %s=***MASKED***", envVar)
		} else {
			log.Printf("[CONFIG]   %s=%s", envVar, value)
		}
	}
	if !found {
		log.Println("[CONFIG]   None set")
	}

	apiKeyStatus := "***NOT SET***"
	if c.AI.APIKey != "" {
		apiKeyStatus = "***CONFIGURED***"
	}

	log.Println("[CONFIG] === Key Configuration Values ===")
	for _, line := range []struct {
		label string
		value any
	}{
		{"AI Provider", c.AI.Provider},
		{"AI Model", c.AI.Model},
		{"AI API Key", apiKeyStatus},
		{"Server Host", c.Server.Host},
		{"Server Port", c.Server.Port},
		{"Log Level", c.App.LogLevel},
		{"TLS Mode", c.Server.TLS.Mode},
		{"Knowledge Base Enabled", c.Knowledge.Enabled},
		{"Vault Enabled", c.Vault.Enabled},
		{"Observability Enabled", c.Observability.Enabled},
	} {
		log.Printf("[CONFIG] %s: %v", line.label, line.value)
	}

	log.Println("[CONFIG] === Operation-Specific AI Configurations ===")
	log.Printf("[CONFIG] Augment - Provider: %s, Model: %s", c.AI.Augment.Provider, c.AI.Augment.Model)
	log.Printf("[CONFIG] Chat - Provider: %s, Model: %s", c.AI.Chat.Provider, c.AI.Chat.Model)
	log.Println("[CONFIG] =====================================")
}
