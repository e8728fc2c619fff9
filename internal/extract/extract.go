// Package extract pulls plain text out of uploaded resume files.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"careercompass/internal/errors"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// Text extracts plain text from file data. The file type is taken from
// fileType when given, otherwise from the file name extension.
// Supported types: pdf, docx, txt.
func Text(fileName, fileType string, data []byte) (string, error) {
	kind := normalizeType(fileName, fileType)

	var text string
	var err error
	switch kind {
	case "pdf":
		text, err = pdfText(data)
	case "docx":
		text, err = docxText(data)
	case "txt":
		text, err = plainText(data)
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFile,
			fmt.Sprintf("Unsupported file type: %s (supported: pdf, docx, txt)", kind), nil)
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// normalizeType resolves the effective file type, preferring the explicit one
func normalizeType(fileName, fileType string) string {
	kind := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(fileType), "."))
	if kind == "" {
		kind = strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	}
	switch kind {
	case "application/pdf":
		return "pdf"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return "docx"
	case "text/plain":
		return "txt"
	}
	return kind
}

// pdfText extracts text from PDF data, page by page
func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Failed to read PDF file", err)
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages rather than failing the whole document
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"No extractable text found in PDF file", nil)
	}
	return text, nil
}

// docxText extracts text from DOCX data. The docx library returns the raw
// WordprocessingML body, so paragraph breaks are restored before tags are
// stripped.
func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Failed to read DOCX file", err)
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	return stripWordMarkup(content), nil
}

// stripWordMarkup converts WordprocessingML to plain text
func stripWordMarkup(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "&amp;", "&")
	content = strings.ReplaceAll(content, "&lt;", "<")
	content = strings.ReplaceAll(content, "&gt;", ">")
	return content
}

// plainText validates and returns UTF-8 text content
func plainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Text file is not valid UTF-8", nil)
	}
	return string(data), nil
}
