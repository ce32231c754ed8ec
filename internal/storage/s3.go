package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/leogic/blog-backend/internal/config"
)

var (
	ErrNotImage     = errors.New("please upload an image file")
	ErrTooLarge     = errors.New("image exceeds the size limit")
	ErrUploadFailed = errors.New("image upload failed")
)

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads images to an S3-compatible bucket (AWS or a MinIO-style
// endpoint) and returns their public URLs.
type S3Store struct {
	client        putObjectAPI
	bucket        string
	publicBaseURL string
	maxBytes      int64
	log           *slog.Logger
}

func NewS3Store(ctx context.Context, cfg config.Config, log *slog.Logger) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.S3PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &S3Store{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
		maxBytes:      cfg.MaxUploadBytes,
		log:           log,
	}, nil
}

// Upload rejects non-image and oversized payloads before touching the
// network; a failing PutObject surfaces as ErrUploadFailed with no retry.
func (s *S3Store) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	key := objectKey(contentType)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.log.Error("s3 put object", "err", err, "key", key)
		return "", ErrUploadFailed
	}
	return s.publicBaseURL + "/" + key, nil
}

func objectKey(contentType string) string {
	ext := ".bin"
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	d := time.Now()
	return fmt.Sprintf("blog/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.NewString(), ext)
}
