package storage_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/straye-as/cpq-api/internal/config"
	"github.com/straye-as/cpq-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ============================================================================
// Storage Interface Tests
// ============================================================================

func TestStorageInterfaceCompliance(t *testing.T) {
	var _ storage.Storage = (*storage.LocalStorage)(nil)
	var _ storage.Storage = (*storage.AzureBlobStorage)(nil)
}

// ============================================================================
// Naming
// ============================================================================

func TestArtifactName(t *testing.T) {
	at := time.Date(2024, time.March, 7, 14, 5, 9, 0, time.UTC)

	assert.Equal(t, "pdf_quote_acme_sons_20240307_140509.pdf", storage.ArtifactName("pdf_quote", "Acme & Sons", "pdf", at))
	assert.Equal(t, "agreement_client_20240307_140509.docx", storage.ArtifactName("agreement", "  ", ".docx", at))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "jane_doe", storage.Slug("  Jane   Doe!"))
	assert.Equal(t, "m_ller_gmbh", storage.Slug("Müller GmbH"))
	assert.Equal(t, "client", storage.Slug("***"))
	assert.LessOrEqual(t, len(storage.Slug(string(bytes.Repeat([]byte("ab "), 40)))), 50)
}

// ============================================================================
// LocalStorage Tests
// ============================================================================

func TestNewLocalStorage_CreatesDirectory(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), "documents")

	ls, err := storage.NewLocalStorage(basePath)
	require.NoError(t, err)
	assert.Equal(t, basePath, ls.BasePath())

	info, err := os.Stat(basePath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalStorage_UploadKeepsArtifactName(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	content := []byte("%PDF-1.4 fake")
	storagePath, size, err := ls.Upload(context.Background(), "pdf_quote_acme_20240101_120000.pdf", "application/pdf", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "pdf_quote_acme_20240101_120000.pdf", storagePath)
	assert.Equal(t, int64(len(content)), size)
}

func TestLocalStorage_UploadDoesNotOverwrite(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	paths := make(map[string]bool)
	for i := 0; i < 3; i++ {
		storagePath, _, err := ls.Upload(context.Background(), "same.pdf", "application/pdf", bytes.NewReader([]byte{byte(i)}))
		require.NoError(t, err)
		assert.False(t, paths[storagePath], "storage path should be unique: %s", storagePath)
		assert.Equal(t, ".pdf", filepath.Ext(storagePath))
		paths[storagePath] = true
	}
	assert.True(t, paths["same.pdf"])
	assert.True(t, paths["same_1.pdf"])
	assert.True(t, paths["same_2.pdf"])
}

func TestLocalStorage_UploadDownloadRoundtrip(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	content := bytes.Repeat([]byte("L"), 1024*100)
	storagePath, _, err := ls.Upload(ctx, "big.bin", "application/octet-stream", bytes.NewReader(content))
	require.NoError(t, err)

	exists, err := ls.Exists(ctx, storagePath)
	require.NoError(t, err)
	assert.True(t, exists)

	reader, err := ls.Download(ctx, storagePath)
	require.NoError(t, err)
	defer reader.Close()

	downloaded, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, downloaded)
}

func TestLocalStorage_Download_FileNotFound(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	reader, err := ls.Download(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Nil(t, reader)

	exists, err := ls.Exists(context.Background(), "missing.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_PathsStayInBaseDir(t *testing.T) {
	base := t.TempDir()
	ls, err := storage.NewLocalStorage(filepath.Join(base, "documents"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(base, "secret.txt"), []byte("x"), 0644))

	exists, err := ls.Exists(context.Background(), "../secret.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_Delete_Idempotent(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	storagePath, _, err := ls.Upload(ctx, "delete-me.pdf", "application/pdf", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	require.NoError(t, ls.Delete(ctx, storagePath))
	assert.NoError(t, ls.Delete(ctx, storagePath))

	exists, err := ls.Exists(ctx, storagePath)
	require.NoError(t, err)
	assert.False(t, exists)
}

// ============================================================================
// NewStorage Factory Tests
// ============================================================================

func TestNewStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "documents")

	s, err := storage.NewStorage(&config.StorageConfig{Mode: "local", DocumentsDir: dir}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, s)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "azure"}, zap.NewNop())
	assert.Error(t, err)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewUploadStorage_SeparateDirectory(t *testing.T) {
	base := t.TempDir()
	cfg := &config.StorageConfig{
		DocumentsDir: filepath.Join(base, "documents"),
		UploadsDir:   filepath.Join(base, "uploaded_docs"),
	}

	docs, err := storage.NewStorage(cfg, zap.NewNop())
	require.NoError(t, err)
	uploads, err := storage.NewUploadStorage(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, cfg.DocumentsDir, docs.(*storage.LocalStorage).BasePath())
	assert.Equal(t, cfg.UploadsDir, uploads.(*storage.LocalStorage).BasePath())
}
