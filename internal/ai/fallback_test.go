package ai

import (
	"context"
	"testing"

	"careercompass/internal/errors"
	"careercompass/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackChatResponseRouting(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		score    int
		contains string
	}{
		{
			name:     "skill learning question",
			message:  "Which skills should I learn first?",
			contains: "prioritizing skills",
		},
		{
			name:     "resume improvement question",
			message:  "How can I improve my resume?",
			contains: "quantifiable achievements",
		},
		{
			name:     "readiness with strong match",
			message:  "Am I ready for this role?",
			score:    75,
			contains: "You have a solid foundation",
		},
		{
			name:     "readiness with weak match",
			message:  "Am I qualified?",
			score:    40,
			contains: "You should focus on key skill development",
		},
		{
			name:     "experience presentation",
			message:  "How do I showcase my projects?",
			contains: "STAR method",
		},
		{
			name:     "interview preparation",
			message:  "Help me prepare for the interview",
			contains: "Interview Preparation Checklist",
		},
		{
			name:     "certification question",
			message:  "Which certification is worth it?",
			contains: "Recommended certifications",
		},
		{
			name:     "gap question",
			message:  "What am I missing?",
			contains: "Addressing skill gaps",
		},
		{
			name:     "salary question",
			message:  "How should I negotiate salary?",
			contains: "Salary negotiation guidance",
		},
		{
			name:     "unknown topic gets menu",
			message:  "Hello there",
			contains: "AI career advisor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackChatResponse(tt.message, tt.score)
			assert.Contains(t, got, tt.contains)
		})
	}
}

func TestChatClientWithoutProvider(t *testing.T) {
	logger, err := errors.New("error")
	require.NoError(t, err)

	client := NewChatClient(nil, logger)

	out, usage, err := client.Respond(context.Background(), types.ChatInput{
		Message: "which skills should I study?",
		Context: &types.ChatContext{MatchScore: 82},
	}, nil)

	require.NoError(t, err)
	assert.Nil(t, usage)
	assert.Equal(t, FallbackModel, out.Model)
	assert.Contains(t, out.Response, "prioritizing skills")
}

func TestBuildChatPrompt(t *testing.T) {
	input := types.ChatInput{
		Message: "Am I a good fit?",
		Context: &types.ChatContext{
			ResumeText:     "Senior Go developer with Kubernetes experience",
			JobDescription: "Looking for a platform engineer",
			MatchScore:     72,
			Gaps:           []string{"Terraform", "AWS"},
		},
		History: []types.ChatTurn{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
	}

	prompt := BuildChatPrompt(input, []string{"Quantify achievements with metrics"})

	assert.Contains(t, prompt, "User Question: Am I a good fit?")
	assert.Contains(t, prompt, "match_score: 72")
	assert.Contains(t, prompt, "Terraform; AWS")
	assert.Contains(t, prompt, "Senior Go developer")
	assert.Contains(t, prompt, "platform engineer")
	assert.Contains(t, prompt, "- Quantify achievements with metrics")
	assert.Contains(t, prompt, "user: hi")
	assert.Contains(t, prompt, "assistant: hello")
}

func TestBuildChatPromptWithoutContext(t *testing.T) {
	prompt := BuildChatPrompt(types.ChatInput{Message: "hello"}, nil)

	assert.Contains(t, prompt, "User Question: hello")
	assert.NotContains(t, prompt, "match_score")
	assert.NotContains(t, prompt, "Conversation so far")
}

func TestBuildTipPrompt(t *testing.T) {
	prompt := BuildTipPrompt([]string{"Docker", "Kubernetes"}, "We need container expertise")

	assert.Contains(t, prompt, "Skill Gaps: Docker, Kubernetes")
	assert.Contains(t, prompt, "We need container expertise")
	assert.Contains(t, prompt, "Generate 3-5 tips")
}

type stubProvider struct {
	response string
	err      error
}

func (p *stubProvider) GenerateText(ctx context.Context, operation, prompt string) (string, *TokenUsage, error) {
	return p.response, nil, p.err
}

func (p *stubProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, nil
}

func (p *stubProvider) GetModelInfo(ctx context.Context) *ModelInfo { return nil }

func (p *stubProvider) Close() error { return nil }

func TestSuggestTopTip(t *testing.T) {
	svc := &Service{Provider: &stubProvider{
		response: "Tips:\n1. Build a small Kubernetes lab cluster\n2. Ship a containerized side project",
	}}

	tip, err := svc.SuggestTopTip(context.Background(),
		[]types.Gap{{Description: "Missing skill: Kubernetes"}}, "We need container expertise")

	require.NoError(t, err)
	assert.Equal(t, "Build a small Kubernetes lab cluster", tip)
}

func TestSuggestTopTipProviderFailure(t *testing.T) {
	svc := &Service{Provider: &stubProvider{err: errors.NewAIError(errors.ErrCodeAIServiceFailed, "boom", nil)}}

	_, err := svc.SuggestTopTip(context.Background(),
		[]types.Gap{{Description: "Missing skill: Docker"}}, "job")
	assert.Error(t, err)
}

func TestSuggestTopTipEmptyResponse(t *testing.T) {
	svc := &Service{Provider: &stubProvider{response: "Tips:\n\n"}}

	_, err := svc.SuggestTopTip(context.Background(), []types.Gap{{Description: "gap"}}, "job")
	assert.Error(t, err)
}
