package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banana/jobboard/internal/models"
)

func TestExtractor_Supported(t *testing.T) {
	extractor := NewExtractorService()

	assert.True(t, extractor.Supported("resume.pdf"))
	assert.True(t, extractor.Supported("Resume.PDF"))
	assert.True(t, extractor.Supported("resume.docx"))

	assert.False(t, extractor.Supported("resume.txt"))
	assert.False(t, extractor.Supported("resume.doc"))
	assert.False(t, extractor.Supported("resume.png"))
	assert.False(t, extractor.Supported("resume"))
}

func TestExtractText_UnsupportedType(t *testing.T) {
	extractor := NewExtractorService()

	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text resume"), 0644))

	_, err := extractor.ExtractText(path)
	assert.ErrorIs(t, err, models.ErrUnsupportedFileType)
}

func TestExtractText_MissingFile(t *testing.T) {
	extractor := NewExtractorService()

	_, err := extractor.ExtractText(filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	cleaned := CleanText("  first line \n\n\n  second line  \n")
	assert.Equal(t, "first line\nsecond line", cleaned)
}
