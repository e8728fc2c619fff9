package engine

import "strings"

// MatchSkills partitions the job's skill set into skills the resume covers
// and skills it lacks. Matching is tiered: exact case-insensitive equality,
// then substring containment in either direction, then containment of the
// punctuation-stripped forms ("Node.js" vs "nodejs"). Both outputs are
// title-cased and sorted; they never overlap.
func MatchSkills(resumeSkills, jdSkills []string) (matched, missing []string) {
	type resumeEntry struct {
		lower    string
		stripped string
	}
	entries := make([]resumeEntry, 0, len(resumeSkills))
	for _, s := range resumeSkills {
		lower := strings.ToLower(s)
		entries = append(entries, resumeEntry{lower: lower, stripped: stripSymbols(lower)})
	}

	matchedSet := make(map[string]struct{})
	missingSet := make(map[string]struct{})

	for _, jd := range jdSkills {
		jdLower := strings.ToLower(jd)
		if jdLower == "" {
			continue
		}
		jdStripped := stripSymbols(jdLower)

		hit := false
		for _, re := range entries {
			if re.lower == jdLower {
				hit = true
				break
			}
			if strings.Contains(re.lower, jdLower) || strings.Contains(jdLower, re.lower) {
				hit = true
				break
			}
			if re.stripped != "" && jdStripped != "" &&
				(strings.Contains(re.stripped, jdStripped) || strings.Contains(jdStripped, re.stripped)) {
				hit = true
				break
			}
		}

		if hit {
			matchedSet[jdLower] = struct{}{}
		} else {
			missingSet[jdLower] = struct{}{}
		}
	}

	return sortedLabels(matchedSet), sortedLabels(missingSet)
}
