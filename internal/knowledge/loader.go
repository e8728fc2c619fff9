package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"careercompass/internal/errors"
)

// loadDocuments reads all knowledge base documents under basePath:
// sample_resumes/*.txt, job_templates/*.txt, and best_practices/resume_tips.json.
// Missing subdirectories are tolerated so a partial knowledge base still loads.
func loadDocuments(basePath string, logger *errors.Logger) ([]Document, error) {
	if _, err := os.Stat(basePath); err != nil {
		return nil, errors.NewKnowledgeError(errors.ErrCodeKnowledgeLoad,
			fmt.Sprintf("Knowledge base path not accessible: %s", basePath), err)
	}

	var docs []Document

	resumes, err := loadTextDocuments(filepath.Join(basePath, "sample_resumes"), KindSampleResume)
	if err != nil {
		logger.Warn("Failed to load sample resumes", "error", err.Error())
	}
	docs = append(docs, resumes...)

	jobs, err := loadTextDocuments(filepath.Join(basePath, "job_templates"), KindJobTemplate)
	if err != nil {
		logger.Warn("Failed to load job templates", "error", err.Error())
	}
	docs = append(docs, jobs...)

	tips, err := loadBestPractices(filepath.Join(basePath, "best_practices", "resume_tips.json"))
	if err != nil {
		logger.Warn("Failed to load best practices", "error", err.Error())
	}
	docs = append(docs, tips...)

	return docs, nil
}

// loadTextDocuments reads every .txt file in dir as one document.
// Sample resume filenames carry a trailing match score: senior_engineer_92.txt
func loadTextDocuments(dir, kind string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return docs, err
		}

		stem := strings.TrimSuffix(entry.Name(), ".txt")
		role := stem
		score := ""
		if kind == KindSampleResume {
			if base, suffix, ok := splitScoreSuffix(stem); ok {
				role = base
				score = suffix
			} else {
				score = "85"
			}
		}

		docs = append(docs, Document{
			FileName: stem,
			Role:     roleTitle(role),
			Kind:     kind,
			Score:    score,
			Content:  string(content),
		})
	}
	return docs, nil
}

// splitScoreSuffix splits "senior_engineer_92" into ("senior_engineer", "92")
func splitScoreSuffix(stem string) (string, string, bool) {
	idx := strings.LastIndex(stem, "_")
	if idx < 0 || idx == len(stem)-1 {
		return stem, "", false
	}
	suffix := stem[idx+1:]
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return stem, "", false
		}
	}
	return stem[:idx], suffix, true
}

// loadBestPractices converts the tips JSON into one document per category.
// Categories hold either a flat list of tips or sub-categories of lists.
func loadBestPractices(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var tips map[string]any
	if err := json.Unmarshal(data, &tips); err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(tips))
	for category := range tips {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var docs []Document
	for _, category := range categories {
		var content strings.Builder
		switch items := tips[category].(type) {
		case []any:
			fmt.Fprintf(&content, "%s:\n", strings.ToUpper(category))
			writeTipList(&content, items)
		case map[string]any:
			fmt.Fprintf(&content, "%s:\n", strings.ToUpper(category))
			subCategories := make([]string, 0, len(items))
			for sub := range items {
				subCategories = append(subCategories, sub)
			}
			sort.Strings(subCategories)
			for _, sub := range subCategories {
				subItems, ok := items[sub].([]any)
				if !ok {
					continue
				}
				fmt.Fprintf(&content, "\n%s:\n", sub)
				writeTipList(&content, subItems)
			}
		default:
			continue
		}

		docs = append(docs, Document{
			FileName: "tips_" + category,
			Role:     category,
			Kind:     KindBestPractice,
			Content:  content.String(),
		})
	}
	return docs, nil
}

func writeTipList(b *strings.Builder, items []any) {
	for _, item := range items {
		if s, ok := item.(string); ok {
			fmt.Fprintf(b, "- %s\n", s)
		}
	}
}

// roleTitle turns "senior_software_engineer" into "Senior Software Engineer"
func roleTitle(stem string) string {
	words := strings.Split(strings.ReplaceAll(stem, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
