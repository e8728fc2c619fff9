package engine

import (
	"fmt"
	"strings"
	"unicode"

	"careercompass/internal/types"
)

const maxRecommendations = 5

// GenerateRecommendations derives actionable resume improvements from the
// analysis. Each trigger is independent and the order is fixed; the list is
// capped at five entries.
func GenerateRecommendations(resumeText, jobText string, gaps []types.Gap, missingSkills []string) []types.Recommendation {
	recs := make([]types.Recommendation, 0, maxRecommendations)

	if len(missingSkills) > 0 {
		top := missingSkills
		if len(top) > 3 {
			top = top[:3]
		}
		recs = append(recs, types.Recommendation{
			Text:     fmt.Sprintf("Learn %s to better match job requirements", strings.Join(top, ", ")),
			Priority: types.PriorityHigh,
			Impact:   types.PriorityHigh,
		})
	}

	if !hasDigit(firstN(resumeText, 500)) {
		recs = append(recs, types.Recommendation{
			Text:     `Add quantifiable achievements (e.g., "Improved performance by 40%")`,
			Priority: types.PriorityHigh,
			Impact:   types.PriorityHigh,
		})
	}

	if !containsAny(strings.ToLower(resumeText), actionVerbs) {
		recs = append(recs, types.Recommendation{
			Text:     "Use strong action verbs to describe your experience",
			Priority: types.PriorityMedium,
			Impact:   types.PriorityMedium,
		})
	}

	if strings.Contains(strings.ToLower(jobText), "aws") && containsFold(missingSkills, "aws") {
		recs = append(recs, types.Recommendation{
			Text:     "Consider AWS certification to demonstrate cloud expertise",
			Priority: types.PriorityMedium,
			Impact:   types.PriorityHigh,
		})
	}

	recs = append(recs, types.Recommendation{
		Text:     "Tailor resume to highlight relevant experience for this specific role",
		Priority: types.PriorityMedium,
		Impact:   types.PriorityMedium,
	})

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// GenerateTopTip picks the single most useful suggestion, tiered by score.
func GenerateTopTip(score int, gaps []types.Gap, missingSkills []string) string {
	switch {
	case score >= 80:
		return "Your profile is a strong match! Focus on highlighting your key achievements and impact."
	case score >= 60:
		if len(missingSkills) > 0 {
			top := missingSkills
			if len(top) > 2 {
				top = top[:2]
			}
			return fmt.Sprintf("Strengthen your profile by gaining experience in %s to better align with job requirements.", strings.Join(top, ", "))
		}
		return "Focus on quantifying your achievements with specific metrics and outcomes."
	default:
		if len(missingSkills) > 0 {
			return fmt.Sprintf("Priority: Learn %s and build relevant projects to demonstrate your capability.", missingSkills[0])
		}
		return "Significant gaps identified. Focus on developing core skills and gaining relevant experience."
	}
}

func firstN(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func containsFold(list []string, target string) bool {
	for _, s := range list {
		if strings.EqualFold(s, target) {
			return true
		}
	}
	return false
}
