package engine

import (
	"regexp"
	"strings"
)

// techSkills is the skill vocabulary used for dictionary extraction. Single
// words are matched on word boundaries, multi-word phrases by substring.
var techSkills = []string{
	"python", "javascript", "java", "c++", "c#", "ruby", "php", "swift", "kotlin", "go", "rust",
	"typescript", "scala", "r", "html", "css", "react", "angular", "vue", "node.js", "express",
	"django", "flask", "spring", "asp.net", "laravel", "rails", "fastapi", "next.js",
	"sql", "mysql", "postgresql", "mongodb", "redis", "oracle", "elasticsearch",
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "terraform", "ansible",
	"machine learning", "deep learning", "ai", "tensorflow", "pytorch", "data science",
	"pandas", "numpy", "spark", "hadoop", "kafka", "git", "jira", "agile", "scrum",
	"rest api", "graphql", "microservices", "ci/cd", "devops", "linux", "unix",
	"leadership", "communication", "teamwork", "problem solving",
}

// seniorityTerms signal that a text describes a senior role or candidate.
var seniorityTerms = []string{"senior", "lead", "principal", "staff", "architect", "manager", "director"}

// actionVerbs are strong resume verbs checked during recommendation generation.
var actionVerbs = []string{"led", "developed", "implemented", "designed", "managed", "created"}

// educationTiers maps degree keywords to a comparable level, highest first.
var educationTiers = []struct {
	level int
	terms []string
}{
	{10, []string{"phd", "doctorate"}},
	{8, []string{"master", "msc", "mba"}},
	{6, []string{"bachelor", "bsc"}},
	{5, []string{"degree"}},
}

// Keyword lists used to classify missing skills into gap categories.
var (
	technicalGapTerms = []string{
		"python", "javascript", "java", "typescript", "sql", "c++", "c#", "go", "rust",
		"ruby", "php", "swift", "kotlin", "scala", "html", "css",
		"machine learning", "deep learning", "data science",
	}
	frameworkGapTerms = []string{
		"react", "angular", "vue", "node.js", "django", "flask", "spring", "express",
		"rails", "laravel", "fastapi", "next.js", "asp.net", "tensorflow", "pytorch",
	}
	toolGapTerms = []string{
		"docker", "kubernetes", "git", "jenkins", "jira", "terraform", "ansible",
		"aws", "azure", "gcp", "kafka", "spark", "hadoop", "elasticsearch", "linux",
	}
)

// stopWords are excluded from keyword-overlap scoring. Words of three
// characters or fewer are already filtered before this list applies.
var stopWords = map[string]struct{}{
	"with": {}, "have": {}, "this": {}, "that": {}, "from": {}, "your": {},
	"will": {}, "what": {}, "when": {}, "them": {}, "they": {}, "their": {},
	"there": {}, "about": {}, "should": {}, "would": {}, "could": {},
	"which": {}, "while": {}, "where": {}, "been": {}, "being": {},
	"into": {}, "over": {}, "such": {}, "than": {}, "then": {}, "were": {},
	"also": {}, "able": {}, "each": {}, "other": {}, "more": {}, "most": {},
}

var (
	singleWordPatterns map[string]*regexp.Regexp
	multiWordSkills    map[string]struct{}
)

func init() {
	singleWordPatterns = make(map[string]*regexp.Regexp)
	multiWordSkills = make(map[string]struct{})

	for _, skill := range techSkills {
		if strings.Contains(skill, " ") {
			multiWordSkills[skill] = struct{}{}
			continue
		}
		singleWordPatterns[skill] = regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`)
	}
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
