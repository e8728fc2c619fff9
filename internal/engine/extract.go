package engine

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var acronymPattern = regexp.MustCompile(`\b[A-Z]{2,6}\b`)

// ExtractSkills turns free text into a sorted, deduplicated list of skill
// labels. Three heuristics contribute: vocabulary lookup (word-boundary for
// single words, substring for phrases), uppercase acronym detection, and
// adjacent-word bigrams matching known phrases. Labels are title-cased for
// display.
func ExtractSkills(text string) []string {
	found := make(map[string]struct{})
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	lower := strings.ToLower(text)

	for skill, pattern := range singleWordPatterns {
		if pattern.MatchString(lower) {
			found[skill] = struct{}{}
		}
	}
	for phrase := range multiWordSkills {
		if strings.Contains(lower, phrase) {
			found[phrase] = struct{}{}
		}
	}

	// Acronyms like AWS or GCP are often the only form a technology appears
	// in, so pick them up even when they are not in the vocabulary.
	for _, acronym := range acronymPattern.FindAllString(text, -1) {
		found[strings.ToLower(acronym)] = struct{}{}
	}

	words := strings.Fields(lower)
	for i := 0; i+1 < len(words); i++ {
		bigram := trimWordPunct(words[i]) + " " + trimWordPunct(words[i+1])
		if _, ok := multiWordSkills[bigram]; ok {
			found[bigram] = struct{}{}
		}
	}

	return sortedLabels(found)
}

func trimWordPunct(w string) string {
	return strings.Trim(w, ".,;:!?()[]{}\"'")
}

// sortedLabels title-cases and sorts a skill set. Single-rune entries such
// as "r" are dropped: a one-letter label is indistinguishable from prose.
func sortedLabels(set map[string]struct{}) []string {
	labels := make([]string, 0, len(set))
	for s := range set {
		if utf8.RuneCountInString(s) < 2 {
			continue
		}
		labels = append(labels, titleCase(s))
	}
	sort.Strings(labels)
	return labels
}
