package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
)

type cloudinaryUploader struct {
	cld     *cloudinary.Cloudinary
	folder  string
	timeout time.Duration

	logger *logger.Logger
}

// NewCloudinaryUploader constructs a [MediaUploader] backed by the Cloudinary
// SDK. Requests are signed by the SDK with cfg.APISecret.
//
// Returns an error when cloud name, API key or API secret is missing, or when
// cfg.BaseURL cannot be parsed.
func NewCloudinaryUploader(cfg config.Cloudinary, timeout time.Duration, logger *logger.Logger) (MediaUploader, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary: cloud name, api key and api secret are required")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}

	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("cloudinary: invalid base url %q", cfg.BaseURL)
		}
		prefix := strings.TrimRight(cfg.BaseURL, "/")
		cld.Config.API.UploadPrefix = prefix
		cld.Upload.Config.API.UploadPrefix = prefix
	}

	return &cloudinaryUploader{
		cld:     cld,
		folder:  cfg.Folder,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Upload implements [MediaUploader]. The resource type is detected by the
// provider. The secure URL is preferred over the plain one.
func (c *cloudinaryUploader) Upload(ctx context.Context, localPath string) (models.UploadResult, error) {
	if localPath == "" {
		return models.UploadResult{}, ErrEmptyFilePath
	}
	log := logger.FromContext(ctx)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{Folder: c.folder})
	if err != nil {
		log.Err(err).Str("func", "*cloudinaryUploader.Upload").Msg("upload request failed")
		return models.UploadResult{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if result == nil {
		return models.UploadResult{}, fmt.Errorf("%w: empty response", ErrUploadFailed)
	}
	if result.Error.Message != "" {
		log.Error().Str("func", "*cloudinaryUploader.Upload").Str("reason", result.Error.Message).Msg("upload rejected")
		return models.UploadResult{}, fmt.Errorf("%w: %s", ErrUploadFailed, result.Error.Message)
	}

	uploaded := models.UploadResult{URL: result.SecureURL, PublicID: result.PublicID}
	if uploaded.URL == "" {
		uploaded.URL = result.URL
	}

	log.Debug().Str("public_id", uploaded.PublicID).Msg("file uploaded to cloudinary")
	return uploaded, nil
}
