package engine

import "strings"

// Weights holds the scoring formula's tuning constants. The defaults are
// empirically tuned; they are exposed as configuration rather than
// hard-coded so deployments can adjust them without a rebuild.
type Weights struct {
	Skill      float64
	Experience float64
	Keyword    float64
	Education  float64
	Seniority  float64

	// Near-duplicate similarity bands, checked in descending order.
	NearDupHigh float64
	NearDupMid  float64
	NearDupLow  float64

	ZeroMatchCap  int
	LowMatchCap   int
	MinScore      int
	EmptyJobScore int
}

// DefaultWeights returns the standard scoring constants.
func DefaultWeights() Weights {
	return Weights{
		Skill:         40,
		Experience:    25,
		Keyword:       20,
		Education:     10,
		Seniority:     5,
		NearDupHigh:   0.95,
		NearDupMid:    0.90,
		NearDupLow:    0.85,
		ZeroMatchCap:  30,
		LowMatchCap:   45,
		MinScore:      5,
		EmptyJobScore: 50,
	}
}

// ComputeScore scores a resume against a job description with the default
// weights. See ComputeScoreWeighted.
func ComputeScore(matched, jdSkills []string, resumeText, jobText string) int {
	return ComputeScoreWeighted(matched, jdSkills, resumeText, jobText, DefaultWeights())
}

// ComputeScoreWeighted combines skill overlap, experience years, keyword
// overlap, education level and seniority signals into a single 0-100 match
// score. Near-identical texts short-circuit to fixed high scores before the
// weighted formula runs; an empty job skill set yields the neutral default.
func ComputeScoreWeighted(matched, jdSkills []string, resumeText, jobText string, w Weights) int {
	normResume := normalizeText(resumeText)
	normJob := normalizeText(jobText)

	if normJob != "" && normResume == normJob {
		return 100
	}

	resumeWords := wordSet(normResume)
	jobWords := wordSet(normJob)
	if len(resumeWords) > 0 && len(jobWords) > 0 {
		overlap := float64(intersectionSize(resumeWords, jobWords))
		similarity := (overlap/float64(len(jobWords)) + overlap/float64(len(resumeWords))) / 2
		switch {
		case similarity >= w.NearDupHigh:
			return 99
		case similarity >= w.NearDupMid:
			return 96
		case similarity >= w.NearDupLow:
			return 92
		}
	}

	if len(jdSkills) == 0 {
		return w.EmptyJobScore
	}

	total := skillScore(len(matched), len(jdSkills), w) +
		experienceScore(resumeText, jobText, w) +
		keywordScore(normResume, normJob, w) +
		educationScore(normResume, normJob, w) +
		seniorityScore(normResume, normJob, w)

	score := int(total)
	if len(matched) == 0 && score > w.ZeroMatchCap {
		score = w.ZeroMatchCap
	}
	if len(matched) < 3 && len(jdSkills) > 5 && score > w.LowMatchCap {
		score = w.LowMatchCap
	}
	if score < w.MinScore {
		score = w.MinScore
	}
	if score > 100 {
		score = 100
	}
	return score
}

func skillScore(matchedCount, jdCount int, w Weights) float64 {
	score := float64(matchedCount) / float64(jdCount) * w.Skill
	switch {
	case matchedCount >= 10:
		score += 5
	case matchedCount >= 7:
		score += 3
	}
	if score > w.Skill {
		score = w.Skill
	}
	return score
}

func experienceScore(resumeText, jobText string, w Weights) float64 {
	resumeYears := extractYears(resumeText)
	requiredYears := extractYears(jobText)

	switch {
	case resumeYears > 0 && requiredYears > 0:
		ratio := float64(resumeYears) / float64(requiredYears)
		switch {
		case ratio >= 1.0:
			return w.Experience
		case ratio >= 0.8:
			return w.Experience * 0.8
		case ratio >= 0.6:
			return w.Experience * 0.6
		default:
			return w.Experience * 0.4
		}
	case resumeYears > 0:
		return w.Experience * 0.8
	default:
		return w.Experience * 0.4
	}
}

func keywordScore(normResume, normJob string, w Weights) float64 {
	jobKeywords := keywordSet(normJob)
	if len(jobKeywords) == 0 {
		return 0
	}
	resumeKeywords := keywordSet(normResume)
	overlap := float64(intersectionSize(jobKeywords, resumeKeywords))
	return overlap / float64(len(jobKeywords)) * w.Keyword
}

// educationLevels reports which degree tiers a text mentions.
func educationLevels(normalized string) map[int]struct{} {
	levels := make(map[int]struct{})
	for _, tier := range educationTiers {
		for _, term := range tier.terms {
			if strings.Contains(normalized, term) {
				levels[tier.level] = struct{}{}
				break
			}
		}
	}
	return levels
}

func educationScore(normResume, normJob string, w Weights) float64 {
	jobLevels := educationLevels(normJob)
	if len(jobLevels) == 0 {
		return w.Education
	}
	resumeLevels := educationLevels(normResume)
	for level := range jobLevels {
		if _, ok := resumeLevels[level]; ok {
			return w.Education
		}
	}
	return w.Education / 2
}

func seniorityScore(normResume, normJob string, w Weights) float64 {
	jobSenior := containsAny(normJob, seniorityTerms)
	resumeSenior := containsAny(normResume, seniorityTerms)
	if jobSenior && !resumeSenior {
		return w.Seniority * 0.4
	}
	return w.Seniority
}
