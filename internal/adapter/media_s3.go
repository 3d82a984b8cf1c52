package adapter

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
)

const s3KeyPrefix = "media"

// s3API is the part of *s3.Client the uploader needs.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Uploader struct {
	client        s3API
	bucket        string
	publicBaseURL string
	timeout       time.Duration

	ids *utils.UUIDGenerator
	now func() time.Time

	logger *logger.Logger
}

// NewS3Uploader constructs a [MediaUploader] that puts files into an
// S3-compatible bucket. A non-empty cfg.Endpoint switches to path-style
// addressing against that endpoint (MinIO, LocalStack).
func NewS3Uploader(ctx context.Context, cfg config.S3, timeout time.Duration, logger *logger.Logger) (MediaUploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Uploader(client, cfg, timeout, logger), nil
}

func newS3Uploader(client s3API, cfg config.S3, timeout time.Duration, logger *logger.Logger) *s3Uploader {
	return &s3Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL(cfg),
		timeout:       timeout,
		ids:           utils.NewUUIDGenerator(),
		now:           time.Now,
		logger:        logger,
	}
}

// Upload implements [MediaUploader]. Objects are keyed
// "media/YYYY/MM/DD/<uuid><ext>" and the returned PublicID is that key.
func (u *s3Uploader) Upload(ctx context.Context, localPath string) (models.UploadResult, error) {
	if localPath == "" {
		return models.UploadResult{}, ErrEmptyFilePath
	}
	log := logger.FromContext(ctx)

	file, err := os.Open(localPath)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(localPath))
	key := path.Join(s3KeyPrefix, u.now().UTC().Format("2006/01/02"), u.ids.Generate()+ext)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	if _, err = u.client.PutObject(ctx, input); err != nil {
		log.Err(err).Str("func", "*s3Uploader.Upload").Str("key", key).Msg("put object failed")
		return models.UploadResult{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	log.Debug().Str("key", key).Msg("file uploaded to s3")
	return models.UploadResult{URL: u.publicBaseURL + "/" + key, PublicID: key}, nil
}

func publicBaseURL(cfg config.S3) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	if cfg.Region == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.Bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}
