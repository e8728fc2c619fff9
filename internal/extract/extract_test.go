package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPlain(t *testing.T) {
	text, err := Text("resume.txt", "", []byte("  Jane Doe\nSoftware Engineer\n"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSoftware Engineer", text)
}

func TestTextPlainByMimeType(t *testing.T) {
	text, err := Text("upload", "text/plain", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestTextRejectsInvalidUTF8(t *testing.T) {
	_, err := Text("resume.txt", "txt", []byte{0xff, 0xfe, 0xfd})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid UTF-8")
}

func TestTextUnsupportedType(t *testing.T) {
	_, err := Text("resume.odt", "", []byte("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported file type")
}

func TestTextCorruptPDF(t *testing.T) {
	_, err := Text("resume.pdf", "", []byte("not a pdf at all"))
	assert.Error(t, err)
}

func TestTextCorruptDocx(t *testing.T) {
	_, err := Text("resume.docx", "", []byte("not a zip archive"))
	assert.Error(t, err)
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		fileType string
		want     string
	}{
		{"explicit type wins", "resume.txt", "pdf", "pdf"},
		{"extension fallback", "resume.PDF", "", "pdf"},
		{"dotted type", "resume", ".docx", "docx"},
		{"pdf mime type", "upload", "application/pdf", "pdf"},
		{"docx mime type", "upload", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "docx"},
		{"no hints", "resume", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeType(tt.fileName, tt.fileType))
		})
	}
}

func TestStripWordMarkup(t *testing.T) {
	content := `<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Engineer &amp; Architect</w:t></w:r></w:p>`

	got := stripWordMarkup(content)

	assert.Equal(t, "Jane Doe\nEngineer & Architect\n", got)
}
