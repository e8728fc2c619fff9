package knowledge

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"careercompass/internal/errors"
)

// Kind labels the origin of a knowledge base document
const (
	KindSampleResume = "sample_resume"
	KindJobTemplate  = "job_template"
	KindBestPractice = "best_practice"
)

// Embedder computes embedding vectors for a batch of texts
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Document is a single entry in the knowledge base
type Document struct {
	FileName string
	Role     string
	Kind     string
	Score    string // match score annotation carried by sample resumes
	Content  string

	vector []float32
}

// Result is a document matched by a search, with its similarity to the query
type Result struct {
	Document   Document
	Similarity float64
}

// Base holds the knowledge base documents and serves similarity searches.
// Documents are embedded when an embedder is available; otherwise searches
// fall back to keyword overlap.
type Base struct {
	path     string
	topK     int
	embedder Embedder
	logger   *errors.Logger

	mu   sync.RWMutex
	docs []Document
}

// NewBase creates a knowledge base rooted at path. The embedder may be nil.
func NewBase(path string, topK int, embedder Embedder, logger *errors.Logger) *Base {
	if topK <= 0 {
		topK = 3
	}
	return &Base{
		path:     path,
		topK:     topK,
		embedder: embedder,
		logger:   logger,
	}
}

// Reload reads all documents from disk and recomputes their embeddings.
// Safe to call concurrently with Search.
func (b *Base) Reload(ctx context.Context) error {
	docs, err := loadDocuments(b.path, b.logger)
	if err != nil {
		return err
	}

	if b.embedder != nil && len(docs) > 0 {
		texts := make([]string, len(docs))
		for i, doc := range docs {
			texts[i] = doc.Content
		}

		vectors, err := b.embedder.Embed(ctx, texts)
		if err != nil {
			// Keep the documents usable for keyword search
			b.logger.Warn("Failed to embed knowledge base documents, keyword search only",
				"documents", len(docs),
				"error", err.Error())
		} else {
			for i := range docs {
				docs[i].vector = vectors[i]
			}
		}
	}

	b.mu.Lock()
	b.docs = docs
	b.mu.Unlock()

	b.logger.Info("Knowledge base loaded",
		"path", b.path,
		"documents", len(docs),
		"embedded", b.embedder != nil)

	return nil
}

// Count returns the number of loaded documents
func (b *Base) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.docs)
}

// Search returns the k most relevant documents for the query. With k <= 0 the
// configured topK applies.
func (b *Base) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 {
		k = b.topK
	}

	b.mu.RLock()
	docs := b.docs
	b.mu.RUnlock()

	if len(docs) == 0 || strings.TrimSpace(query) == "" {
		return []Result{}, nil
	}

	var queryVector []float32
	if b.embedder != nil && docs[0].vector != nil {
		vectors, err := b.embedder.Embed(ctx, []string{query})
		if err != nil {
			b.logger.Warn("Query embedding failed, falling back to keyword search",
				"error", err.Error())
		} else if len(vectors) == 1 {
			queryVector = vectors[0]
		}
	}

	results := make([]Result, 0, len(docs))
	for _, doc := range docs {
		var similarity float64
		if queryVector != nil && doc.vector != nil {
			similarity = cosineSimilarity(queryVector, doc.vector)
		} else {
			similarity = keywordOverlap(query, doc.Content)
		}
		results = append(results, Result{Document: doc, Similarity: similarity})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Snippets extracts bounded content excerpts from search results for prompt use
func Snippets(results []Result, limit int) []string {
	snippets := make([]string, 0, len(results))
	for _, r := range results {
		content := strings.TrimSpace(r.Document.Content)
		if limit > 0 && len(content) > limit {
			content = content[:limit] + "..."
		}
		snippets = append(snippets, content)
	}
	return snippets
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched lengths or zero vectors yield 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// keywordOverlap scores a document by the fraction of query words it contains
func keywordOverlap(query, content string) float64 {
	queryWords := strings.Fields(strings.ToLower(query))
	if len(queryWords) == 0 {
		return 0
	}

	contentLower := strings.ToLower(content)
	matched := 0
	for _, word := range queryWords {
		if strings.Contains(contentLower, word) {
			matched++
		}
	}
	return float64(matched) / float64(len(queryWords))
}
