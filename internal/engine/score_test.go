package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeScoreIdenticalTexts(t *testing.T) {
	text := "Senior Python developer with 8 years of experience building distributed systems."
	skills := ExtractSkills(text)

	assert.Equal(t, 100, ComputeScore(skills, skills, text, text))
}

func TestComputeScoreIdenticalAfterNormalization(t *testing.T) {
	resume := "Python,   developer!!! With Docker."
	job := "python developer with docker"
	skills := ExtractSkills(job)

	assert.Equal(t, 100, ComputeScore(skills, skills, resume, job))
}

func TestComputeScoreNearDuplicateBands(t *testing.T) {
	base := strings.Fields("alpha beta gamma delta epsilon zeta eta theta iota kappa " +
		"lambda mu nu xi omicron pi rho sigma tau upsilon")
	job := strings.Join(base, " ")

	// 19 of 20 words shared: similarity (19/20 + 19/19)/2 = 0.975
	resume := strings.Join(base[1:], " ")
	assert.Equal(t, 99, ComputeScore(nil, []string{"python"}, resume, job))

	// 18 of 20 shared: (18/20 + 18/18)/2 = 0.95
	resume = strings.Join(base[2:], " ")
	assert.Equal(t, 99, ComputeScore(nil, []string{"python"}, resume, job))

	// 17 of 20 shared: (17/20 + 17/17)/2 = 0.925
	resume = strings.Join(base[3:], " ")
	assert.Equal(t, 96, ComputeScore(nil, []string{"python"}, resume, job))

	// 15 of 20 shared: (15/20 + 15/15)/2 = 0.875
	resume = strings.Join(base[5:], " ")
	assert.Equal(t, 92, ComputeScore(nil, []string{"python"}, resume, job))
}

func TestComputeScoreEmptyJobSkills(t *testing.T) {
	assert.Equal(t, 50, ComputeScore(nil, nil, "some resume text", "an unrelated posting"))
}

func TestComputeScoreRange(t *testing.T) {
	cases := []struct {
		matched  []string
		jdSkills []string
		resume   string
		job      string
	}{
		{nil, []string{"python"}, "", "python role"},
		{[]string{"Python"}, []string{"python"}, "python dev", "completely different posting text"},
		{nil, []string{"a", "b", "c", "d", "e", "f"}, "unrelated", "needs many skills here"},
	}

	for _, c := range cases {
		score := ComputeScore(c.matched, c.jdSkills, c.resume, c.job)
		assert.GreaterOrEqual(t, score, 5)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestComputeScoreMonotonicInMatches(t *testing.T) {
	jdSkills := []string{"python", "docker", "kubernetes", "terraform", "ansible", "linux", "git"}
	resume := "An engineer resume body with enough words to avoid similarity bands entirely."
	job := "A posting describing required platform tooling and deployment responsibilities."

	prev := -1
	for n := 0; n <= len(jdSkills); n++ {
		score := ComputeScore(jdSkills[:n], jdSkills, resume, job)
		assert.GreaterOrEqual(t, score, prev, "score decreased at %d matches", n)
		prev = score
	}
}

func TestComputeScoreZeroMatchCap(t *testing.T) {
	resume := ""
	job := "Requires AWS, Docker, Kubernetes"
	jdSkills := ExtractSkills(job)

	matched, missing := MatchSkills(ExtractSkills(resume), jdSkills)
	assert.Empty(t, matched)
	assert.Equal(t, []string{"Aws", "Docker", "Kubernetes"}, missing)

	score := ComputeScore(matched, jdSkills, resume, job)
	assert.LessOrEqual(t, score, 30)
}

func TestComputeScoreLowMatchCap(t *testing.T) {
	jdSkills := []string{"python", "go", "rust", "docker", "kubernetes", "terraform"}
	score := ComputeScore([]string{"python"}, jdSkills,
		"python dev with 10 years of experience and a master degree",
		"a long posting requiring many technologies")

	assert.LessOrEqual(t, score, 45)
}

func TestComputeScoreSkillMatchScenario(t *testing.T) {
	resume := "Python developer with 5 years experience"
	job := "Looking for Python developer"

	resumeSkills := ExtractSkills(resume)
	jdSkills := ExtractSkills(job)
	matched, missing := MatchSkills(resumeSkills, jdSkills)

	assert.Contains(t, matched, "Python")
	assert.Empty(t, missing)
	assert.Greater(t, ComputeScore(matched, jdSkills, resume, job), 50)
}

func TestExperienceScoreTiers(t *testing.T) {
	w := DefaultWeights()
	tests := []struct {
		name   string
		resume string
		job    string
		want   float64
	}{
		{"meets requirement", "8 years of experience", "5+ years of experience required", 25},
		{"eighty percent", "4 years of experience", "5 years of experience", 20},
		{"sixty percent", "3 years of experience", "5 years of experience", 15},
		{"well short", "1 year of experience", "5 years of experience", 10},
		{"resume only", "6 years experience", "no figure here", 20},
		{"neither", "no figure", "no figure", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, experienceScore(tt.resume, tt.job, w))
		})
	}
}

func TestExtractYearsPatternVariants(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"5 years of experience in backend work", 5},
		{"10+ years experience", 10},
		{"experience spanning 7 years", 7},
		{"experience: 4 years", 4},
		{"Experience\n2019 years of study", 0},
		{"no numbers here", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractYears(tt.text), "text %q", tt.text)
	}
}

func TestEducationScore(t *testing.T) {
	w := DefaultWeights()

	assert.Equal(t, 10.0, educationScore(normalizeText("any resume"), normalizeText("no requirement mentioned"), w))
	assert.Equal(t, 10.0, educationScore(normalizeText("holds an msc"), normalizeText("master required"), w))
	assert.Equal(t, 5.0, educationScore(normalizeText("self taught"), normalizeText("bachelor required"), w))
}

func TestSeniorityScore(t *testing.T) {
	w := DefaultWeights()

	assert.Equal(t, 5.0, seniorityScore(normalizeText("senior engineer"), normalizeText("senior role"), w))
	assert.Equal(t, 2.0, seniorityScore(normalizeText("junior engineer"), normalizeText("senior role"), w))
	assert.Equal(t, 5.0, seniorityScore(normalizeText("lead engineer"), normalizeText("engineer role"), w))
	assert.Equal(t, 5.0, seniorityScore(normalizeText("engineer"), normalizeText("engineer role"), w))
}
