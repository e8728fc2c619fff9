package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOutputFormat(t *testing.T) {
	supported := []string{"json", "text", "markdown"}

	tests := []struct {
		name    string
		format  string
		formats []string
		wantErr bool
	}{
		{"json allowed", "json", supported, false},
		{"markdown allowed", "markdown", supported, false},
		{"xml rejected", "xml", supported, true},
		{"matching is case sensitive", "JSON", supported, true},
		{"empty format rejected", "", supported, true},
		{"no restrictions allows anything", "xml", nil, false},
		{"single format list", "text", []string{"json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.formats)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.format)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetSupportedFormats(t *testing.T) {
	formats := []string{"json", "text", "markdown"}
	assert.Equal(t, formats, GetSupportedFormats(formats))
	assert.Empty(t, GetSupportedFormats(nil))
}
