package engine

import (
	"testing"

	"careercompass/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestIdentifyGapsCategories(t *testing.T) {
	gaps := IdentifyGaps("resume text", "job text",
		[]string{"Python", "React", "Docker", "Communication"})

	assert.Len(t, gaps, 4)
	assert.Equal(t, "Technical Skills", gaps[0].Category)
	assert.Equal(t, "Framework Knowledge", gaps[1].Category)
	assert.Equal(t, "Tools & Technologies", gaps[2].Category)
	assert.Equal(t, "Additional Skills", gaps[3].Category)

	assert.Equal(t, types.PriorityHigh, gaps[0].Priority)
	assert.Equal(t, types.PriorityHigh, gaps[1].Priority)
	assert.Equal(t, types.PriorityMedium, gaps[2].Priority)
	assert.Equal(t, types.PriorityMedium, gaps[3].Priority)

	assert.Equal(t, "Missing Python expertise", gaps[0].Description)
	assert.Equal(t, "No experience with Docker", gaps[2].Description)
	assert.Equal(t, "Could benefit from Communication knowledge", gaps[3].Description)
}

func TestIdentifyGapsToolPriorityTiers(t *testing.T) {
	gaps := IdentifyGaps("resume", "job",
		[]string{"Docker", "Kubernetes", "Jenkins", "Terraform"})

	assert.Equal(t, types.PriorityHigh, gaps[0].Priority)
	assert.Equal(t, types.PriorityHigh, gaps[1].Priority)
	assert.Equal(t, types.PriorityMedium, gaps[2].Priority)
	assert.Equal(t, types.PriorityLow, gaps[3].Priority)
}

func TestIdentifyGapsSeniorExperienceGap(t *testing.T) {
	gaps := IdentifyGaps(
		"Software engineer with Python background",
		"Senior Software Engineer wanted",
		nil,
	)

	assert.Len(t, gaps, 1)
	assert.Equal(t, "Experience Level", gaps[0].Category)
	assert.Equal(t, types.PriorityHigh, gaps[0].Priority)
}

func TestIdentifyGapsNoSeniorGapWhenResumeSenior(t *testing.T) {
	gaps := IdentifyGaps(
		"Senior engineer with Python background",
		"Senior Software Engineer wanted",
		nil,
	)

	for _, g := range gaps {
		assert.NotEqual(t, "Experience Level", g.Category)
	}
}

func TestIdentifyGapsLeadershipGap(t *testing.T) {
	gaps := IdentifyGaps(
		"Built services in Go",
		"Engineering manager for the platform team",
		nil,
	)

	assert.Len(t, gaps, 1)
	assert.Equal(t, "Leadership Experience", gaps[0].Category)
	assert.Equal(t, types.PriorityHigh, gaps[0].Priority)
}

func TestIdentifyGapsLeadershipSatisfied(t *testing.T) {
	gaps := IdentifyGaps(
		"Led a team of four engineers",
		"Engineering manager for the platform team",
		nil,
	)

	assert.Empty(t, gaps)
}

func TestIdentifyGapsCap(t *testing.T) {
	missing := []string{"Python", "React", "Docker", "Rust", "Terraform", "Kafka", "Scala", "Vue"}

	gaps := IdentifyGaps(
		"plain resume",
		"Senior manager role requiring everything",
		missing,
	)

	assert.Len(t, gaps, 6)
	// Skill-derived gaps fill the cap before synthetic ones are considered.
	for _, g := range gaps {
		assert.NotEqual(t, "Experience Level", g.Category)
		assert.NotEqual(t, "Leadership Experience", g.Category)
	}
}

func TestIdentifyGapsEmptyMissing(t *testing.T) {
	gaps := IdentifyGaps("resume", "ordinary engineering role", nil)
	assert.Empty(t, gaps)
}
