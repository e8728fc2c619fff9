package engine

import (
	"strings"
	"testing"

	"careercompass/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRecommendationsMissingSkills(t *testing.T) {
	recs := GenerateRecommendations(
		"Developed services, improved latency by 30%",
		"job text",
		nil,
		[]string{"Aws", "Docker", "Kubernetes", "Terraform"},
	)

	assert.Equal(t, "Learn Aws, Docker, Kubernetes to better match job requirements", recs[0].Text)
	assert.Equal(t, types.PriorityHigh, recs[0].Priority)
	assert.Equal(t, types.PriorityHigh, recs[0].Impact)
}

func TestGenerateRecommendationsQuantifiableAchievements(t *testing.T) {
	recs := GenerateRecommendations(
		"Developed and designed backend services without any metrics",
		"job text",
		nil,
		nil,
	)

	var texts []string
	for _, r := range recs {
		texts = append(texts, r.Text)
	}
	assert.Contains(t, texts, `Add quantifiable achievements (e.g., "Improved performance by 40%")`)
}

func TestGenerateRecommendationsActionVerbs(t *testing.T) {
	recs := GenerateRecommendations(
		"Responsible for 3 backend services",
		"job text",
		nil,
		nil,
	)

	var texts []string
	for _, r := range recs {
		texts = append(texts, r.Text)
	}
	assert.Contains(t, texts, "Use strong action verbs to describe your experience")
}

func TestGenerateRecommendationsAWSCertification(t *testing.T) {
	recs := GenerateRecommendations(
		"Led work on 5 services",
		"Cloud role on AWS infrastructure",
		nil,
		[]string{"Aws"},
	)

	var found bool
	for _, r := range recs {
		if strings.Contains(r.Text, "AWS certification") {
			found = true
			assert.Equal(t, types.PriorityMedium, r.Priority)
			assert.Equal(t, types.PriorityHigh, r.Impact)
		}
	}
	assert.True(t, found)
}

func TestGenerateRecommendationsAlwaysTailored(t *testing.T) {
	recs := GenerateRecommendations("Led work on 5 projects", "job", nil, nil)

	last := recs[len(recs)-1]
	assert.Equal(t, "Tailor resume to highlight relevant experience for this specific role", last.Text)
}

func TestGenerateRecommendationsCap(t *testing.T) {
	// Every trigger fires at once.
	recs := GenerateRecommendations(
		"plain resume with no numbers and no verbs",
		"Senior AWS role",
		nil,
		[]string{"Aws", "Docker", "Kubernetes"},
	)

	assert.LessOrEqual(t, len(recs), 5)
}

func TestGenerateTopTipTiers(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		missing []string
		want    string
	}{
		{
			name:  "strong match",
			score: 85,
			want:  "Your profile is a strong match! Focus on highlighting your key achievements and impact.",
		},
		{
			name:    "mid tier with missing skills",
			score:   65,
			missing: []string{"Docker", "Kubernetes", "Terraform"},
			want:    "Strengthen your profile by gaining experience in Docker, Kubernetes to better align with job requirements.",
		},
		{
			name:  "mid tier without missing skills",
			score: 70,
			want:  "Focus on quantifying your achievements with specific metrics and outcomes.",
		},
		{
			name:    "low tier with missing skills",
			score:   40,
			missing: []string{"Rust", "Go"},
			want:    "Priority: Learn Rust and build relevant projects to demonstrate your capability.",
		},
		{
			name:  "low tier without missing skills",
			score: 30,
			want:  "Significant gaps identified. Focus on developing core skills and gaining relevant experience.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateTopTip(tt.score, nil, tt.missing))
		})
	}
}
