package config

import (
	"os"
	"path/filepath"
	"testing"

	"careercompass/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSecretVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int64
		wantErr bool
	}{
		{"int64 value", int64(3), 3, false},
		{"float64 from JSON decoding", float64(7), 7, false},
		{"numeric string", "12", 12, false},
		{"non-numeric string", "latest", 0, true},
		{"unexpected type", []string{"1"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSecretVersion(tt.input, "secret/data/test")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveVaultToken(t *testing.T) {
	t.Run("literal token wins", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "literal-token"})
		require.NoError(t, err)
		assert.Equal(t, "literal-token", token)
	})

	t.Run("token read from file and trimmed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("  file-token \n"), 0600))

		token, err := resolveVaultToken(VaultConfig{TokenFile: path})
		require.NoError(t, err)
		assert.Equal(t, "file-token", token)
	})

	t.Run("missing token file", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{TokenFile: filepath.Join(t.TempDir(), "absent")})
		assert.Error(t, err)
	})

	t.Run("no token at all", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{})
		assert.ErrorContains(t, err, "vault token is required")
	})
}

func TestSpreadGeminiKey(t *testing.T) {
	t.Run("fills empty per-operation keys", func(t *testing.T) {
		cfg := &Config{}
		spreadGeminiKey(cfg, "vault-key")

		assert.Equal(t, "vault-key", cfg.AI.APIKey)
		assert.Equal(t, "vault-key", cfg.AI.Augment.APIKey)
		assert.Equal(t, "vault-key", cfg.AI.Chat.APIKey)
	})

	t.Run("keeps explicit per-operation keys", func(t *testing.T) {
		cfg := &Config{}
		cfg.AI.Augment.APIKey = "augment-key"
		spreadGeminiKey(cfg, "vault-key")

		assert.Equal(t, "vault-key", cfg.AI.APIKey)
		assert.Equal(t, "augment-key", cfg.AI.Augment.APIKey)
		assert.Equal(t, "vault-key", cfg.AI.Chat.APIKey)
	})
}

func TestCopyCertContent(t *testing.T) {
	secret := &VaultSecret{Data: map[string]any{
		"cert":  "-----BEGIN CERTIFICATE-----",
		"key":   "",
		"wrong": 42,
	}}

	var target string
	assert.Equal(t, 1, copyCertContent(secret, "cert", &target))
	assert.Equal(t, "-----BEGIN CERTIFICATE-----", target)

	target = ""
	assert.Equal(t, 0, copyCertContent(secret, "key", &target), "empty content not copied")
	assert.Equal(t, 0, copyCertContent(secret, "wrong", &target), "non-string not copied")
	assert.Equal(t, 0, copyCertContent(secret, "missing", &target))
	assert.Empty(t, target)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "abcd****wxyz", maskSecret("abcdefghijklmnopqrstuvwxyz"))
	assert.Equal(t, "****", maskSecret("short"))
	assert.Equal(t, "", maskSecret(""))
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	logger, err := errors.New("error")
	require.NoError(t, err)

	cfg := &Config{}
	cfg.Vault.Enabled = false

	// Disabled Vault is a no-op, not an error
	assert.NoError(t, ApplyVaultSecrets(cfg, logger))
}

func TestNewVaultClientDisabled(t *testing.T) {
	client, err := NewVaultClient(VaultConfig{Enabled: false}, nil)
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestGetSecretV2NilClient(t *testing.T) {
	var vc *VaultClient
	_, err := vc.GetSecretV2("secret/data/test")
	assert.ErrorContains(t, err, "not initialized")
}
