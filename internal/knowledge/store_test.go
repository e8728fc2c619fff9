package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"careercompass/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	require.NoError(t, err)
	return logger
}

// stubEmbedder assigns fixed vectors by exact text match
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := s.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = []float32{0, 0, 1}
		}
	}
	return out, nil
}

func writeKnowledgeBase(t *testing.T) string {
	t.Helper()
	base := t.TempDir()

	resumeDir := filepath.Join(base, "sample_resumes")
	jobDir := filepath.Join(base, "job_templates")
	tipsDir := filepath.Join(base, "best_practices")
	for _, dir := range []string{resumeDir, jobDir, tipsDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	require.NoError(t, os.WriteFile(
		filepath.Join(resumeDir, "senior_software_engineer_92.txt"),
		[]byte("Senior engineer with Go, Kubernetes, and AWS experience."), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(resumeDir, "data_scientist.txt"),
		[]byte("Data scientist skilled in Python, Pandas, and TensorFlow."), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(jobDir, "backend_engineer.txt"),
		[]byte("We are hiring a backend engineer with Go and PostgreSQL."), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(tipsDir, "resume_tips.json"),
		[]byte(`{
			"general_tips": ["Quantify your achievements", "Use action verbs"],
			"role_specific": {
				"software_engineer": ["Link to your GitHub profile"]
			}
		}`), 0644))

	return base
}

func TestLoadDocuments(t *testing.T) {
	base := writeKnowledgeBase(t)
	logger := testLogger(t)

	docs, err := loadDocuments(base, logger)
	require.NoError(t, err)
	require.Len(t, docs, 5) // 2 resumes + 1 job + 2 tip categories

	byFile := make(map[string]Document)
	for _, doc := range docs {
		byFile[doc.FileName] = doc
	}

	resume := byFile["senior_software_engineer_92"]
	assert.Equal(t, KindSampleResume, resume.Kind)
	assert.Equal(t, "Senior Software Engineer", resume.Role)
	assert.Equal(t, "92", resume.Score)

	// Without a numeric suffix the default score applies
	plain := byFile["data_scientist"]
	assert.Equal(t, "Data Scientist", plain.Role)
	assert.Equal(t, "85", plain.Score)

	job := byFile["backend_engineer"]
	assert.Equal(t, KindJobTemplate, job.Kind)
	assert.Equal(t, "Backend Engineer", job.Role)
	assert.Empty(t, job.Score)

	tips := byFile["tips_general_tips"]
	assert.Equal(t, KindBestPractice, tips.Kind)
	assert.Contains(t, tips.Content, "GENERAL_TIPS:")
	assert.Contains(t, tips.Content, "- Quantify your achievements")

	roleTips := byFile["tips_role_specific"]
	assert.Contains(t, roleTips.Content, "software_engineer:")
	assert.Contains(t, roleTips.Content, "- Link to your GitHub profile")
}

func TestLoadDocumentsMissingPath(t *testing.T) {
	_, err := loadDocuments(filepath.Join(t.TempDir(), "nope"), testLogger(t))
	assert.Error(t, err)
}

func TestBaseReloadAndKeywordSearch(t *testing.T) {
	base := NewBase(writeKnowledgeBase(t), 3, nil, testLogger(t))

	require.NoError(t, base.Reload(context.Background()))
	assert.Equal(t, 5, base.Count())

	results, err := base.Search(context.Background(), "Go Kubernetes engineer", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// The Go/Kubernetes resume should outrank the Python resume
	assert.Equal(t, "senior_software_engineer_92", results[0].Document.FileName)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
}

func TestBaseVectorSearch(t *testing.T) {
	dir := t.TempDir()
	resumeDir := filepath.Join(dir, "sample_resumes")
	require.NoError(t, os.MkdirAll(resumeDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(resumeDir, "alpha_90.txt"), []byte("alpha doc"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(resumeDir, "beta_80.txt"), []byte("beta doc"), 0644))

	embedder := &stubEmbedder{vectors: map[string][]float32{
		"alpha doc": {1, 0, 0},
		"beta doc":  {0, 1, 0},
		"query":     {0.9, 0.1, 0},
	}}

	base := NewBase(dir, 3, embedder, testLogger(t))
	require.NoError(t, base.Reload(context.Background()))

	results, err := base.Search(context.Background(), "query", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "alpha_90", results[0].Document.FileName)
	assert.InDelta(t, 0.994, results[0].Similarity, 0.01)
}

func TestSearchEmptyQueryAndEmptyBase(t *testing.T) {
	base := NewBase(t.TempDir(), 3, nil, testLogger(t))

	results, err := base.Search(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)

	require.NoError(t, os.MkdirAll(filepath.Join(base.path, "sample_resumes"), 0755))
	require.NoError(t, base.Reload(context.Background()))

	results, err = base.Search(context.Background(), "   ", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0, 0})) // length mismatch
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))    // zero vector
}

func TestSnippets(t *testing.T) {
	results := []Result{
		{Document: Document{Content: "  short tip  "}},
		{Document: Document{Content: "This content is definitely longer than the limit"}},
	}

	snippets := Snippets(results, 20)
	require.Len(t, snippets, 2)
	assert.Equal(t, "short tip", snippets[0])
	assert.Equal(t, "This content is defi...", snippets[1])
}
