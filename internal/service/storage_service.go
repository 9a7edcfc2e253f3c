package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/config"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageService saves uploaded avatar images either on local disk or in
// a MinIO bucket, selected by config.
type StorageService struct {
	cfg    *config.Config
	client *minio.Client
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	s := &StorageService{cfg: cfg}

	if cfg.Storage.Type == util.StorageMinio {
		client, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.MinioAccessID, cfg.Storage.MinioSecret, ""),
			Secure: cfg.Storage.MinioUseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("init minio client: %w", err)
		}
		s.client = client

		ctx := context.Background()
		exists, err := client.BucketExists(ctx, cfg.Storage.MinioBucket)
		if err != nil {
			return nil, fmt.Errorf("check minio bucket: %w", err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, cfg.Storage.MinioBucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("create minio bucket: %w", err)
			}
		}
	}

	return s, nil
}

// SaveAvatar stores the uploaded image and returns the URL path clients
// should use to fetch it.
func (s *StorageService) SaveAvatar(userID uint, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedAvatarExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	objectName := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if s.cfg.Storage.Type == util.StorageMinio {
		contentType := file.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, util.MimeImage) {
			contentType = "application/octet-stream"
		}
		_, err := s.client.PutObject(context.Background(), s.cfg.Storage.MinioBucket, objectName, src, file.Size,
			minio.PutObjectOptions{ContentType: contentType})
		if err != nil {
			return "", err
		}
		scheme := "http"
		if s.cfg.Storage.MinioUseSSL {
			scheme = "https"
		}
		return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Storage.MinioEndpoint, s.cfg.Storage.MinioBucket, objectName), nil
	}

	localPath := filepath.Join(s.cfg.Storage.LocalPath, objectName)
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(localPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	logger.Log.Debug("Avatar saved", zap.String("path", localPath))
	return "/" + filepath.ToSlash(filepath.Join("uploads", objectName)), nil
}
