package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (ObjectStorage, string) {
	t.Helper()
	tempDir := t.TempDir()
	store, err := NewLocalStorage(tempDir, "http://localhost:8080")
	require.NoError(t, err)
	return store, tempDir
}

func TestValidatePath_PathTraversal(t *testing.T) {
	store, _ := newTestStorage(t)
	ls := store.(*localStorage)

	tests := []struct {
		name string
		key  string
	}{
		{"simple traversal", "../etc/passwd"},
		{"double traversal", "../../etc/passwd"},
		{"nested traversal", "1/../../../etc/passwd"},
		{"windows style", "..\\..\\windows\\system32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ls.validatePath(tt.key)
			assert.ErrorIs(t, err, ErrPathTraversal)
		})
	}
}

func TestValidatePath_AbsolutePath(t *testing.T) {
	store, _ := newTestStorage(t)
	ls := store.(*localStorage)

	_, err := ls.validatePath("/etc/passwd")
	assert.ErrorIs(t, err, ErrPathTraversal)
}

func TestSaveAndGet_RoundTrip(t *testing.T) {
	store, _ := newTestStorage(t)
	ctx := context.Background()

	err := store.Save(ctx, "1/abc.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)

	rc, err := store.Get(ctx, "1/abc.pdf")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))
}

func TestSave_CreatesLinkNamespaceDirectory(t *testing.T) {
	store, tempDir := newTestStorage(t)

	err := store.Save(context.Background(), "42/abc.png", strings.NewReader("png"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(tempDir, "42", "abc.png"))
	assert.NoError(t, err)
}

func TestGet_NotFound(t *testing.T) {
	store, _ := newTestStorage(t)

	_, err := store.Get(context.Background(), "1/missing.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestDelete_RemovesObject(t *testing.T) {
	store, _ := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "1/abc.pdf", strings.NewReader("x")))
	require.NoError(t, store.Delete(ctx, "1/abc.pdf"))

	_, err := store.Get(ctx, "1/abc.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestDelete_MissingObjectIsNotAnError(t *testing.T) {
	store, _ := newTestStorage(t)

	assert.NoError(t, store.Delete(context.Background(), "1/never-existed.pdf"))
}

func TestPublicURL_Local(t *testing.T) {
	store, _ := newTestStorage(t)

	assert.Equal(t, "http://localhost:8080/objects/1/abc.pdf", store.PublicURL("1/abc.pdf"))
}

func TestObjectKey_Format(t *testing.T) {
	key := ObjectKey(7, "My Report.pdf")

	// "<linkID>/<uuid>.<ext>"
	pattern := regexp.MustCompile(`^7/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.pdf$`)
	assert.Regexp(t, pattern, key)
}

func TestObjectKey_Unique(t *testing.T) {
	a := ObjectKey(1, "a.pdf")
	b := ObjectKey(1, "a.pdf")
	assert.NotEqual(t, a, b)
}

func TestObjectKey_NoExtension(t *testing.T) {
	key := ObjectKey(1, "README")
	assert.False(t, strings.Contains(key, "."))
}

func TestValidateFile_BlockedExtension(t *testing.T) {
	assert.ErrorIs(t, ValidateFile("malware.exe", 100), ErrBlockedExt)
	assert.ErrorIs(t, ValidateFile("script.sh", 100), ErrBlockedExt)
}

func TestValidateFile_TooLarge(t *testing.T) {
	assert.ErrorIs(t, ValidateFile("big.pdf", MaxFileSize+1), ErrFileTooLarge)
}

func TestValidateFile_OK(t *testing.T) {
	assert.NoError(t, ValidateFile("report.pdf", 1024))
	assert.NoError(t, ValidateFile("photo.png", MaxFileSize))
}
