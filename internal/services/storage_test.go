package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banana/jobboard/internal/models"
)

func multipartHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("cv", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["cv"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaveFile_RejectsUnsupportedExtensions(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	for _, filename := range []string{"resume.txt", "resume.doc", "resume.png", "resume"} {
		_, _, err := storage.SaveFile(multipartHeader(t, filename, "content"))
		assert.ErrorIs(t, err, models.ErrUnsupportedFileType, "expected %s to be rejected", filename)
	}
}

func TestSaveFile_StoresSupportedUpload(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir)

	filename, path, err := storage.SaveFile(multipartHeader(t, "resume.pdf", "%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "cv_"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(saved))

	require.NoError(t, storage.DeleteFile(filename))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
