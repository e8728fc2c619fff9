package engine

import (
	"context"
	"fmt"

	"careercompass/internal/types"
)

const (
	maxMatchedView = 10
	maxMissingView = 8
)

// Analyzer runs the full analysis pipeline. Augmenter is optional; when set
// it contributes AI-extracted skills on top of the heuristic extraction.
// Analyzer is stateless and safe for concurrent use.
type Analyzer struct {
	Weights   Weights
	Augmenter Generator
	Model     string
}

// NewAnalyzer returns an Analyzer with default weights and no augmentation.
func NewAnalyzer(model string) *Analyzer {
	return &Analyzer{Weights: DefaultWeights(), Model: model}
}

// Analyze extracts skills from both texts, matches and scores them, and
// assembles the complete response: score, skill views, gaps,
// recommendations and a top tip. It never fails; degraded collaborators
// only reduce the skill pool to the heuristic baseline.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobText string) types.AnalyzeOutput {
	resumeSkills := ExtractSkillsWithAI(ctx, a.Augmenter, resumeText)
	jdSkills := ExtractSkillsWithAI(ctx, a.Augmenter, jobText)

	matched, missing := MatchSkills(resumeSkills, jdSkills)
	score := ComputeScoreWeighted(matched, jdSkills, resumeText, jobText, a.Weights)
	gaps := IdentifyGaps(resumeText, jobText, missing)
	recommendations := GenerateRecommendations(resumeText, jobText, gaps, missing)
	topTip := GenerateTopTip(score, gaps, missing)

	return types.AnalyzeOutput{
		MatchScore:      score,
		MatchedSkills:   matchedSkillViews(matched),
		MissingSkills:   missingSkillViews(missing),
		Gaps:            gaps,
		Recommendations: recommendations,
		TopTip:          topTip,
		Model:           a.Model,
	}
}

func matchedSkillViews(matched []string) []types.SkillMatch {
	if len(matched) > maxMatchedView {
		matched = matched[:maxMatchedView]
	}
	views := make([]types.SkillMatch, 0, len(matched))
	for i, skill := range matched {
		views = append(views, types.SkillMatch{
			Name:      skill,
			Relevance: 0.85 + float64(i)*0.03,
		})
	}
	return views
}

func missingSkillViews(missing []string) []types.MissingSkill {
	if len(missing) > maxMissingView {
		missing = missing[:maxMissingView]
	}
	views := make([]types.MissingSkill, 0, len(missing))
	for i, skill := range missing {
		priority := types.PriorityMedium
		if i < 3 {
			priority = types.PriorityHigh
		}
		views = append(views, types.MissingSkill{
			Name:       skill,
			Priority:   priority,
			Suggestion: fmt.Sprintf("Consider learning %s through online courses or hands-on projects", skill),
		})
	}
	return views
}
