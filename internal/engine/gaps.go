package engine

import (
	"fmt"
	"strings"

	"careercompass/internal/types"
)

const maxGaps = 6

// IdentifyGaps classifies missing skills and contextual signals into
// prioritized gap records. Skill-derived gaps come first in the matcher's
// sorted order, then synthetic experience and leadership gaps; the final
// list is capped at six entries.
func IdentifyGaps(resumeText, jobText string, missingSkills []string) []types.Gap {
	gaps := make([]types.Gap, 0, maxGaps)

	limit := len(missingSkills)
	if limit > maxGaps {
		limit = maxGaps
	}
	for i, skill := range missingSkills[:limit] {
		gaps = append(gaps, classifySkillGap(skill, i))
	}

	resumeLower := strings.ToLower(resumeText)
	jobLower := strings.ToLower(jobText)

	if strings.Contains(jobLower, "senior") && !strings.Contains(resumeLower, "senior") {
		gaps = append(gaps, types.Gap{
			Category:    "Experience Level",
			Description: "Role requires senior-level experience",
			Priority:    types.PriorityHigh,
			Actionable:  "Highlight leadership and advanced technical contributions",
		})
	}

	if containsAny(jobLower, []string{"lead", "manager", "team lead"}) &&
		!containsAny(resumeLower, []string{"led", "managed", "mentored", "leadership"}) {
		gaps = append(gaps, types.Gap{
			Category:    "Leadership Experience",
			Description: "Role involves leadership responsibilities",
			Priority:    types.PriorityHigh,
			Actionable:  "Emphasize mentoring, project coordination, or team initiatives on your resume",
		})
	}

	if len(gaps) > maxGaps {
		gaps = gaps[:maxGaps]
	}
	return gaps
}

// classifySkillGap buckets a missing skill into a category with wording and
// priority matched to how critical that kind of gap usually is. The first
// two gaps are always high priority.
func classifySkillGap(skill string, position int) types.Gap {
	lower := strings.ToLower(skill)

	switch {
	case containsAny(lower, technicalGapTerms):
		priority := types.PriorityMedium
		if position < 2 {
			priority = types.PriorityHigh
		}
		return types.Gap{
			Category:    "Technical Skills",
			Description: fmt.Sprintf("Missing %s expertise", skill),
			Priority:    priority,
			Actionable:  fmt.Sprintf("Complete online courses or build projects using %s", skill),
		}
	case containsAny(lower, frameworkGapTerms):
		priority := types.PriorityMedium
		if position < 2 {
			priority = types.PriorityHigh
		}
		return types.Gap{
			Category:    "Framework Knowledge",
			Description: fmt.Sprintf("Limited exposure to %s", skill),
			Priority:    priority,
			Actionable:  fmt.Sprintf("Build a small application with %s to gain practical experience", skill),
		}
	case containsAny(lower, toolGapTerms):
		priority := types.PriorityLow
		switch {
		case position < 2:
			priority = types.PriorityHigh
		case position < 3:
			priority = types.PriorityMedium
		}
		return types.Gap{
			Category:    "Tools & Technologies",
			Description: fmt.Sprintf("No experience with %s", skill),
			Priority:    priority,
			Actionable:  fmt.Sprintf("Gain hands-on experience with %s through practice projects", skill),
		}
	default:
		priority := types.PriorityMedium
		if position < 2 {
			priority = types.PriorityHigh
		}
		return types.Gap{
			Category:    "Additional Skills",
			Description: fmt.Sprintf("Could benefit from %s knowledge", skill),
			Priority:    priority,
			Actionable:  fmt.Sprintf("Consider learning %s to strengthen your profile", skill),
		}
	}
}
