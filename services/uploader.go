package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Asset folder prefixes
const (
	SolutionReportFolder = "mars-quest-solutions"
	AvatarFolder         = "mars-quest/avatars"
)

// allowedUploadTypes is the MIME allow-list for solution report uploads.
var allowedUploadTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// allowedAvatarTypes restricts avatar uploads to images.
var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// IsAllowedUploadType reports whether a report file content type is accepted.
func IsAllowedUploadType(contentType string) bool {
	return allowedUploadTypes[normalizeContentType(contentType)]
}

// IsAllowedAvatarType reports whether an avatar content type is accepted.
func IsAllowedAvatarType(contentType string) bool {
	return allowedAvatarTypes[normalizeContentType(contentType)]
}

func normalizeContentType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// Uploader streams files to external asset storage and returns their public
// URL.
type Uploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
}

// S3Uploader stores assets in an S3 bucket under per-purpose folder prefixes.
type S3Uploader struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Uploader(ctx context.Context, bucket string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	log.Info().Str("bucket", bucket).Str("region", cfg.Region).Msg("Asset storage configured")

	return &S3Uploader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: cfg.Region,
	}, nil
}

// Upload puts the object under folder with a random name preserving the
// original extension, and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), path.Ext(filename))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(normalizeContentType(contentType)),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s to asset storage: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}
