package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"careercompass/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalyzeOutput", &AnalyzeTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalyzeOutput", &AnalyzeMarkdownFormatter{})
	registry.RegisterFormatter("text", "ChatOutput", &ChatTextFormatter{})
	registry.RegisterFormatter("markdown", "ChatOutput", &ChatMarkdownFormatter{})
	registry.RegisterFormatter("text", "ExtractSkillsOutput", &SkillsTextFormatter{})
	registry.RegisterFormatter("markdown", "ExtractSkillsOutput", &SkillsMarkdownFormatter{})
	registry.RegisterFormatter("text", "ExtractTextOutput", &ExtractedTextFormatter{})
	registry.RegisterFormatter("markdown", "ExtractTextOutput", &ExtractedTextMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalyzeOutput:
		return "AnalyzeOutput"
	case types.ChatOutput:
		return "ChatOutput"
	case types.ExtractSkillsOutput:
		return "ExtractSkillsOutput"
	case types.ExtractTextOutput:
		return "ExtractTextOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AnalyzeTextFormatter handles text formatting for analysis results
type AnalyzeTextFormatter struct{}

func (atf *AnalyzeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalyzeOutput)
	if !ok {
		return "", fmt.Errorf("expected AnalyzeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Match Score: %d/100\n", result.MatchScore))
	output.WriteString(fmt.Sprintf("Model: %s\n\n", result.Model))

	if len(result.MatchedSkills) > 0 {
		output.WriteString("=== MATCHED SKILLS ===\n")
		for _, skill := range result.MatchedSkills {
			output.WriteString(fmt.Sprintf("- %s (relevance %.2f)\n", skill.Name, skill.Relevance))
		}
		output.WriteString("\n")
	}

	if len(result.MissingSkills) > 0 {
		output.WriteString("=== MISSING SKILLS ===\n")
		for i, skill := range result.MissingSkills {
			output.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, skill.Name, skill.Priority))
			output.WriteString("   Suggestion: ")
			output.WriteString(skill.Suggestion)
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if len(result.Gaps) > 0 {
		output.WriteString("=== GAPS ===\n")
		for i, gap := range result.Gaps {
			output.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, gap.Priority, gap.Category))
			output.WriteString("   ")
			output.WriteString(gap.Description)
			output.WriteString("\n")
			output.WriteString("   Action: ")
			output.WriteString(gap.Actionable)
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		output.WriteString("=== RECOMMENDATIONS ===\n")
		for i, rec := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, rec.Priority, rec.Text))
			output.WriteString("   Impact: ")
			output.WriteString(rec.Impact)
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	output.WriteString("=== TOP TIP ===\n")
	output.WriteString(result.TopTip)
	output.WriteString("\n")

	return output.String(), nil
}

func (atf *AnalyzeTextFormatter) SupportedType() string {
	return "AnalyzeOutput"
}

// AnalyzeMarkdownFormatter handles markdown formatting for analysis results
type AnalyzeMarkdownFormatter struct{}

func (amf *AnalyzeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalyzeOutput)
	if !ok {
		return "", fmt.Errorf("expected AnalyzeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Match Score:** %d/100\n\n", result.MatchScore))
	output.WriteString(fmt.Sprintf("**Model:** %s\n\n", result.Model))

	if len(result.MatchedSkills) > 0 {
		output.WriteString("## Matched Skills\n\n")
		for _, skill := range result.MatchedSkills {
			output.WriteString(fmt.Sprintf("- **%s** (relevance %.2f)\n", skill.Name, skill.Relevance))
		}
		output.WriteString("\n")
	}

	if len(result.MissingSkills) > 0 {
		output.WriteString("## Missing Skills\n\n")
		for _, skill := range result.MissingSkills {
			output.WriteString(fmt.Sprintf("- **%s** (%s priority): %s\n", skill.Name, skill.Priority, skill.Suggestion))
		}
		output.WriteString("\n")
	}

	if len(result.Gaps) > 0 {
		output.WriteString("## Gaps\n\n")
		for i, gap := range result.Gaps {
			output.WriteString(fmt.Sprintf("### %d. %s (%s priority)\n\n", i+1, gap.Category, gap.Priority))
			output.WriteString(gap.Description)
			output.WriteString("\n\n")
			output.WriteString("**Action:** ")
			output.WriteString(gap.Actionable)
			output.WriteString("\n\n")
		}
	}

	if len(result.Recommendations) > 0 {
		output.WriteString("## Recommendations\n\n")
		for i, rec := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. **[%s]** %s (impact: %s)\n", i+1, rec.Priority, rec.Text, rec.Impact))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Top Tip\n\n")
	output.WriteString(result.TopTip)
	output.WriteString("\n")

	return output.String(), nil
}

func (amf *AnalyzeMarkdownFormatter) SupportedType() string {
	return "AnalyzeOutput"
}

// ChatTextFormatter handles text formatting for chat replies
type ChatTextFormatter struct{}

func (ctf *ChatTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ChatOutput)
	if !ok {
		return "", fmt.Errorf("expected ChatOutput, got %T", data)
	}

	var output strings.Builder
	output.WriteString(result.Response)
	output.WriteString("\n\n")
	output.WriteString(fmt.Sprintf("[model: %s]\n", result.Model))

	return output.String(), nil
}

func (ctf *ChatTextFormatter) SupportedType() string {
	return "ChatOutput"
}

// ChatMarkdownFormatter handles markdown formatting for chat replies
type ChatMarkdownFormatter struct{}

func (cmf *ChatMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ChatOutput)
	if !ok {
		return "", fmt.Errorf("expected ChatOutput, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Career Coach\n\n")
	output.WriteString(result.Response)
	output.WriteString("\n\n")
	output.WriteString(fmt.Sprintf("*Model: %s*\n", result.Model))

	return output.String(), nil
}

func (cmf *ChatMarkdownFormatter) SupportedType() string {
	return "ChatOutput"
}

// SkillsTextFormatter handles text formatting for extracted skill lists
type SkillsTextFormatter struct{}

func (stf *SkillsTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractSkillsOutput)
	if !ok {
		return "", fmt.Errorf("expected ExtractSkillsOutput, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== EXTRACTED SKILLS ===\n\n")
	if len(result.Skills) == 0 {
		output.WriteString("No skills found.\n")
	} else {
		for _, skill := range result.Skills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
	}
	output.WriteString(fmt.Sprintf("\nModel: %s\n", result.Model))

	return output.String(), nil
}

func (stf *SkillsTextFormatter) SupportedType() string {
	return "ExtractSkillsOutput"
}

// SkillsMarkdownFormatter handles markdown formatting for extracted skill lists
type SkillsMarkdownFormatter struct{}

func (smf *SkillsMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractSkillsOutput)
	if !ok {
		return "", fmt.Errorf("expected ExtractSkillsOutput, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Extracted Skills\n\n")
	if len(result.Skills) == 0 {
		output.WriteString("No skills found.\n")
	} else {
		for _, skill := range result.Skills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
	}
	output.WriteString(fmt.Sprintf("\n*Model: %s*\n", result.Model))

	return output.String(), nil
}

func (smf *SkillsMarkdownFormatter) SupportedType() string {
	return "ExtractSkillsOutput"
}

// ExtractedTextFormatter handles text formatting for document extraction results
type ExtractedTextFormatter struct{}

func (etf *ExtractedTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractTextOutput)
	if !ok {
		return "", fmt.Errorf("expected ExtractTextOutput, got %T", data)
	}

	var output strings.Builder
	output.WriteString(result.Text)
	output.WriteString("\n")

	return output.String(), nil
}

func (etf *ExtractedTextFormatter) SupportedType() string {
	return "ExtractTextOutput"
}

// ExtractedTextMarkdownFormatter handles markdown formatting for document extraction results
type ExtractedTextMarkdownFormatter struct{}

func (etmf *ExtractedTextMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractTextOutput)
	if !ok {
		return "", fmt.Errorf("expected ExtractTextOutput, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Extracted Text\n\n")
	output.WriteString("```\n")
	output.WriteString(result.Text)
	output.WriteString("\n```\n\n")
	output.WriteString(fmt.Sprintf("*%d characters*\n", result.CharCount))

	return output.String(), nil
}

func (etmf *ExtractedTextMarkdownFormatter) SupportedType() string {
	return "ExtractTextOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
