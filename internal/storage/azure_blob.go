package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"go.uber.org/zap"
)

const maxNameAttempts = 100

// AzureBlobStorage keeps artifacts in one container under a virtual folder, so
// documents and template uploads can share a container without colliding.
type AzureBlobStorage struct {
	container *container.Client
	folder    string
	logger    *zap.Logger
}

func NewAzureBlobStorage(connectionString, containerName, folder string, logger *zap.Logger) (*AzureBlobStorage, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	cc := client.ServiceClient().NewContainerClient(containerName)
	if _, err := cc.Create(context.Background(), nil); err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container %s: %w", containerName, err)
	}

	logger.Info("Azure Blob artifact store ready",
		zap.String("container", containerName),
		zap.String("folder", folder),
	)
	return &AzureBlobStorage{
		container: cc,
		folder:    strings.Trim(folder, "/"),
		logger:    logger,
	}, nil
}

// Upload writes the artifact as a block blob and returns its folder-qualified path.
// Artifacts are small rendered documents, so the body is buffered to learn its size.
func (s *AzureBlobStorage) Upload(ctx context.Context, name string, contentType string, data io.Reader) (string, int64, error) {
	body, err := io.ReadAll(data)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read artifact: %w", err)
	}

	storagePath, err := s.freePath(ctx, path.Base(name))
	if err != nil {
		return "", 0, err
	}

	_, err = s.container.NewBlockBlobClient(storagePath).UploadBuffer(ctx, body, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to upload %s: %w", storagePath, err)
	}

	s.logger.Info("Artifact stored",
		zap.String("storage_path", storagePath),
		zap.String("content_type", contentType),
		zap.Int("size", len(body)),
	)
	return storagePath, int64(len(body)), nil
}

func (s *AzureBlobStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	resp, err := s.container.NewBlobClient(storagePath).DownloadStream(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, storagePath)
		}
		return nil, fmt.Errorf("failed to download %s: %w", storagePath, err)
	}
	return resp.Body, nil
}

func (s *AzureBlobStorage) Exists(ctx context.Context, storagePath string) (bool, error) {
	_, err := s.container.NewBlobClient(storagePath).GetProperties(ctx, nil)
	switch {
	case err == nil:
		return true, nil
	case bloberror.HasCode(err, bloberror.BlobNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %s: %w", storagePath, err)
	}
}

// Delete is idempotent
func (s *AzureBlobStorage) Delete(ctx context.Context, storagePath string) error {
	_, err := s.container.NewBlobClient(storagePath).Delete(ctx, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("failed to delete %s: %w", storagePath, err)
	}
	s.logger.Info("Artifact deleted", zap.String("storage_path", storagePath))
	return nil
}

// freePath mirrors LocalStorage: a taken name gets a numeric suffix
func (s *AzureBlobStorage) freePath(ctx context.Context, name string) (string, error) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	var candidate bytes.Buffer
	for i := 0; i < maxNameAttempts; i++ {
		candidate.Reset()
		if s.folder != "" {
			candidate.WriteString(s.folder + "/")
		}
		candidate.WriteString(stem)
		if i > 0 {
			fmt.Fprintf(&candidate, "_%d", i)
		}
		candidate.WriteString(ext)

		exists, err := s.Exists(ctx, candidate.String())
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate.String(), nil
		}
	}
	return "", fmt.Errorf("no free blob name for %s", name)
}
