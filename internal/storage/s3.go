package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dertamme/milestone3/configs"
)

// Uploader stores product images in an external object store and returns
// their public URL.
type Uploader interface {
	UploadImage(ctx context.Context, file io.Reader, filename, contentType string) (string, error)
}

type S3Uploader struct {
	client *s3.Client
	bucket string
}

func NewS3Uploader(ctx context.Context) (*S3Uploader, error) {
	cfg := config.LoadStorageConfig()
	if cfg.ImageBucket == "" {
		return nil, fmt.Errorf("IMAGE_BUCKET is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return &S3Uploader{client: s3.NewFromConfig(awsCfg), bucket: cfg.ImageBucket}, nil
}

func (u *S3Uploader) UploadImage(ctx context.Context, file io.Reader, filename, contentType string) (string, error) {
	key := fmt.Sprintf("images/%s-%s", uuid.NewString(), sanitizeFilename(filename))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key), nil
}

// sanitizeFilename keeps the base name and strips anything that has no
// business in an object key.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
