package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"dukamart/internal/repositories"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const productImageBucket = "product-images"

type MediaService interface {
	UploadProductImage(ctx context.Context, productID uuid.UUID, filename string, reader io.Reader, size int64) (string, error)
	ProductImageURL(productID uuid.UUID, objectName string, expiry time.Duration) (string, error)
	EnsureBucket(ctx context.Context) error
}

type mediaService struct {
	client      *minio.Client
	productRepo repositories.ProductRepository
}

func NewMediaService(endpoint, accessKey, secretKey string, useSSL bool, productRepo repositories.ProductRepository) (MediaService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &mediaService{client: client, productRepo: productRepo}, nil
}

// UploadProductImage stores the image and records its object name on the
// product. Returns the object name.
func (m *mediaService) UploadProductImage(ctx context.Context, productID uuid.UUID, filename string, reader io.Reader, size int64) (string, error) {
	if _, err := m.productRepo.GetByID(ctx, productID); err != nil {
		return "", fmt.Errorf("product not found: %w", err)
	}

	objectName := fmt.Sprintf("%s/%s%s", productID.String(), uuid.New().String(), filepath.Ext(filename))
	contentType := "image/jpeg"
	switch filepath.Ext(filename) {
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	}

	if _, err := m.client.PutObject(ctx, productImageBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", err
	}

	if err := m.productRepo.UpdateImageURL(ctx, productID, objectName); err != nil {
		return "", err
	}
	return objectName, nil
}

func (m *mediaService) ProductImageURL(productID uuid.UUID, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(context.Background(), productImageBucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *mediaService) EnsureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, productImageBucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, productImageBucket, minio.MakeBucketOptions{})
	}
	return nil
}
