package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Generator produces free text from a prompt. It is the only external
// collaborator the extractor knows about; failures from it are always
// recoverable.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const skillListPrompt = `Extract all technical skills, tools, and technologies mentioned in the following text.
Return them as a comma-separated list.

Text:
%s

Skills:`

// ExtractSkillsWithAI runs heuristic extraction and then asks gen to
// enumerate additional skills from the same text. The generated list is
// parsed, cleaned and merged into the heuristic result. Any failure of the
// generation call is swallowed: the heuristic baseline is always returned.
func ExtractSkillsWithAI(ctx context.Context, gen Generator, text string) []string {
	base := ExtractSkills(text)
	if gen == nil || strings.TrimSpace(text) == "" {
		return base
	}

	raw, err := gen.Generate(ctx, fmt.Sprintf(skillListPrompt, text))
	if err != nil {
		return base
	}
	return MergeSkills(base, ParseSkillList(raw))
}

// ParseSkillList parses a comma-separated skill enumeration as produced by a
// language model. Each label is trimmed of surrounding whitespace and of
// leading bullet, quote or numbering noise; labels shorter than 2 or longer
// than 49 characters are dropped.
func ParseSkillList(raw string) []string {
	var labels []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' }) {
		label := strings.TrimSpace(part)
		label = strings.TrimLeft(label, "-*•\"'`0123456789.)( ")
		label = strings.TrimRight(label, "\"'`. ")
		if len(label) < 2 || len(label) >= 50 {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

// MergeSkills unions skill lists case-insensitively, returning title-cased
// labels in stable sorted order.
func MergeSkills(lists ...[]string) []string {
	set := make(map[string]string)
	for _, list := range lists {
		for _, s := range list {
			key := strings.ToLower(s)
			if _, ok := set[key]; !ok {
				set[key] = titleCase(s)
			}
		}
	}
	merged := make([]string, 0, len(set))
	for _, label := range set {
		merged = append(merged, label)
	}
	sort.Strings(merged)
	return merged
}
