package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"careercompass/internal/errors"
	"careercompass/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	require.NoError(t, err)
	return logger
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestFileProcessorReadFile(t *testing.T) {
	fp := NewFileProcessor(newTestLogger(t))

	path := writeTempFile(t, "resume.txt", "Jane Doe\nSoftware Engineer")
	content, err := fp.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSoftware Engineer", content)

	_, err = fp.ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestFileProcessorReadRawFile(t *testing.T) {
	fp := NewFileProcessor(newTestLogger(t))

	path := writeTempFile(t, "doc.pdf", "%PDF-1.4 fake")
	data, err := fp.ReadRawFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)

	_, err = fp.ReadRawFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestFileProcessorWriteFileCreatesDirectories(t *testing.T) {
	fp := NewFileProcessor(newTestLogger(t))

	path := filepath.Join(t.TempDir(), "nested", "out", "result.json")
	require.NoError(t, fp.WriteFile(path, "{}"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestValidateAndReadFiles(t *testing.T) {
	fp := NewFileProcessor(newTestLogger(t))

	resume := writeTempFile(t, "resume.txt", "resume content")
	job := writeTempFile(t, "job.txt", "job content")

	contents, err := fp.ValidateAndReadFiles(resume, job)
	require.NoError(t, err)
	require.Len(t, contents, 2)
	assert.Equal(t, "resume content", contents[0])
	assert.Equal(t, "job content", contents[1])

	_, err = fp.ValidateAndReadFiles(resume, filepath.Join(t.TempDir(), "gone.txt"))
	assert.Error(t, err)
}

func TestRunFileCommand(t *testing.T) {
	logger := newTestLogger(t)
	path := writeTempFile(t, "skills.txt", "Python and Docker experience")
	outFile := filepath.Join(t.TempDir(), "out.json")

	createInput := func(contents []string) (types.ExtractSkillsInput, error) {
		return types.ExtractSkillsInput{Text: contents[0]}, nil
	}
	operation := func(ctx context.Context, input types.ExtractSkillsInput) (types.ExtractSkillsOutput, error) {
		return types.ExtractSkillsOutput{Skills: []string{"Docker", "Python"}, Model: "heuristic"}, nil
	}
	logDetails := func(input types.ExtractSkillsInput, cfg CommandConfig) {}

	cmdConfig := CommandConfig{OutputFile: outFile, OutputFormat: "json"}
	err := RunFileCommand(context.Background(), logger, cmdConfig, []string{path},
		createInput, operation, logDetails)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Python")
	assert.Contains(t, string(data), "heuristic")
}
