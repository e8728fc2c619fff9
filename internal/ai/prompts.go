package ai

import (
	"context"
	"fmt"
	"strings"

	"careercompass/internal/types"
)

const chatPromptTemplate = `You are a helpful career advisor. Answer the user's question based on the context provided.

Context:
%s

User Question: %s

Your Response:`

const tipPromptTemplate = `Given the skill gaps identified, generate specific, actionable tips for the candidate.

Skill Gaps: %s

Job Description: %s

Generate 3-5 tips that are:
- Specific and actionable
- Realistic to achieve in 1-3 months
- Prioritized by importance

Tips:`

// excerptLimit bounds how much resume and job text is inlined into a prompt
const excerptLimit = 2000

// BuildChatPrompt assembles the chat prompt from the user message, the
// analysis context, retrieved guidance snippets, and conversation history.
func BuildChatPrompt(input types.ChatInput, retrieved []string) string {
	var context strings.Builder

	if input.Context != nil {
		fmt.Fprintf(&context, "match_score: %d\n", input.Context.MatchScore)
		if len(input.Context.Gaps) > 0 {
			fmt.Fprintf(&context, "identified gaps: %s\n", strings.Join(input.Context.Gaps, "; "))
		}
		if input.Context.ResumeText != "" {
			fmt.Fprintf(&context, "\nResume excerpt:\n%s\n", excerpt(input.Context.ResumeText))
		}
		if input.Context.JobDescription != "" {
			fmt.Fprintf(&context, "\nJob description excerpt:\n%s\n", excerpt(input.Context.JobDescription))
		}
	}

	if len(retrieved) > 0 {
		context.WriteString("\nRelevant career guidance:\n")
		for _, snippet := range retrieved {
			fmt.Fprintf(&context, "- %s\n", snippet)
		}
	}

	if len(input.History) > 0 {
		context.WriteString("\nConversation so far:\n")
		for _, turn := range input.History {
			fmt.Fprintf(&context, "%s: %s\n", turn.Role, turn.Content)
		}
	}

	return fmt.Sprintf(chatPromptTemplate, strings.TrimSpace(context.String()), input.Message)
}

// BuildTipPrompt assembles the prompt for generating gap-specific tips
func BuildTipPrompt(gaps []string, jobDescription string) string {
	return fmt.Sprintf(tipPromptTemplate, strings.Join(gaps, ", "), excerpt(jobDescription))
}

// SuggestTopTip asks the model for gap-specific tips and returns the first
// usable one. Callers keep their deterministic tip when this fails.
func (s *Service) SuggestTopTip(ctx context.Context, gaps []types.Gap, jobDescription string) (string, error) {
	descriptions := make([]string, len(gaps))
	for i, g := range gaps {
		descriptions[i] = g.Description
	}

	raw, err := s.Generate(ctx, BuildTipPrompt(descriptions, jobDescription))
	if err != nil {
		return "", err
	}
	tip := firstTip(raw)
	if tip == "" {
		return "", fmt.Errorf("model returned no usable tip")
	}
	return tip, nil
}

// firstTip strips list markup from model output and returns the first line
// that looks like an actual tip rather than a preamble.
func firstTip(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "-*•0123456789.) ")
		line = strings.TrimSpace(strings.Trim(line, `"`))
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		return line
	}
	return ""
}

func excerpt(s string) string {
	if len(s) <= excerptLimit {
		return s
	}
	return s[:excerptLimit] + "..."
}
