package engine

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	punctPattern      = regexp.MustCompile(`[^\pL\pN\s]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s*of\s*experience`),
		regexp.MustCompile(`(\d+)\+?\s*years?\s*experience`),
		// Same-line only: a figure on a following line is usually a date,
		// not a years-of-experience count.
		regexp.MustCompile(`experience[^\d\n]*?(\d+)\+?\s*years?`),
	}
)

// normalizeText lowercases, strips punctuation and collapses whitespace so
// that trivially reformatted texts compare equal.
func normalizeText(text string) string {
	lower := strings.ToLower(text)
	stripped := punctPattern.ReplaceAllString(lower, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(stripped, " "))
}

// wordSet splits normalized text into its unique words.
func wordSet(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(normalized) {
		set[w] = struct{}{}
	}
	return set
}

// keywordSet is wordSet restricted to significant words: longer than three
// characters and not on the stopword list.
func keywordSet(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(normalized) {
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

// extractYears pulls the first "N years of experience" style figure out of a
// text. Several phrasing variants are tried in order; zero means no figure
// was found.
func extractYears(text string) int {
	lower := strings.ToLower(text)
	for _, p := range experiencePatterns {
		m := p.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		years := 0
		for _, r := range m[1] {
			years = years*10 + int(r-'0')
		}
		return years
	}
	return 0
}

// titleCase capitalizes the first letter of every word, where a word starts
// after any non-letter rune. "node.js" becomes "Node.Js", "ci/cd" "Ci/Cd".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// stripSymbols removes everything except letters and digits, for fuzzy skill
// comparison ("Node.js" and "nodejs" collapse to the same form).
func stripSymbols(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
