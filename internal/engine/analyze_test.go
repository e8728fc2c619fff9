package engine

import (
	"context"
	"errors"
	"testing"

	"careercompass/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzerFullPipeline(t *testing.T) {
	analyzer := NewAnalyzer("gemini-2.5-flash")

	out := analyzer.Analyze(context.Background(),
		"Python developer with 5 years experience building REST APIs using Django",
		"Looking for a Python developer with Django and Docker experience",
	)

	assert.Equal(t, "gemini-2.5-flash", out.Model)
	assert.GreaterOrEqual(t, out.MatchScore, 5)
	assert.LessOrEqual(t, out.MatchScore, 100)

	require.NotEmpty(t, out.MatchedSkills)
	names := make([]string, 0, len(out.MatchedSkills))
	for _, m := range out.MatchedSkills {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "Python")
	assert.Contains(t, names, "Django")

	require.NotEmpty(t, out.MissingSkills)
	assert.Equal(t, "Docker", out.MissingSkills[0].Name)
	assert.Equal(t, types.PriorityHigh, out.MissingSkills[0].Priority)

	assert.NotEmpty(t, out.Recommendations)
	assert.NotEmpty(t, out.TopTip)
}

func TestAnalyzerViewLimitsAndAnnotations(t *testing.T) {
	matched := matchedSkillViews([]string{
		"A1", "B2", "C3", "D4", "E5", "F6", "G7", "H8", "I9", "J10", "K11", "L12",
	})
	require.Len(t, matched, 10)
	assert.InDelta(t, 0.85, matched[0].Relevance, 0.0001)
	assert.InDelta(t, 0.88, matched[1].Relevance, 0.0001)
	assert.InDelta(t, 1.12, matched[9].Relevance, 0.0001)

	missing := missingSkillViews([]string{
		"A", "B", "C", "D", "E", "F", "G", "H", "I", "J",
	})
	require.Len(t, missing, 8)
	assert.Equal(t, types.PriorityHigh, missing[0].Priority)
	assert.Equal(t, types.PriorityHigh, missing[2].Priority)
	assert.Equal(t, types.PriorityMedium, missing[3].Priority)
	assert.Equal(t, "Consider learning A through online courses or hands-on projects", missing[0].Suggestion)
}

func TestAnalyzerAugmenterFailureIsRecoverable(t *testing.T) {
	analyzer := NewAnalyzer("test-model")
	analyzer.Augmenter = &stubGenerator{err: errors.New("quota exhausted")}

	out := analyzer.Analyze(context.Background(),
		"Python developer", "Python and Go role")

	assert.GreaterOrEqual(t, out.MatchScore, 5)
	assert.NotEmpty(t, out.MatchedSkills)
}

func TestAnalyzerEmptyInputs(t *testing.T) {
	analyzer := NewAnalyzer("test-model")

	out := analyzer.Analyze(context.Background(), "", "")

	assert.Equal(t, 50, out.MatchScore)
	assert.Empty(t, out.MatchedSkills)
	assert.Empty(t, out.MissingSkills)
	assert.NotEmpty(t, out.TopTip)
}
