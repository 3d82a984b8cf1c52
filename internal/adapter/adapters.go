package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
)

// Adapters groups the outbound integrations handed to the service layer.
type Adapters struct {
	MediaUploader  MediaUploader
	EventPublisher EventPublisher
}

// NewAdapters builds the media uploader selected by cfg.Media.Provider and
// the event publisher. Without Kafka brokers events are dropped.
func NewAdapters(ctx context.Context, cfg config.Adapter, logger *logger.Logger) (*Adapters, error) {
	uploader, err := NewMediaUploader(ctx, cfg.Media, logger)
	if err != nil {
		return nil, err
	}

	publisher := NewNopPublisher()
	if len(cfg.Events.KafkaBrokers) > 0 {
		publisher = NewKafkaPublisher(cfg.Events, logger)
	} else {
		logger.Info().Msg("no kafka brokers configured, user events are dropped")
	}

	return &Adapters{MediaUploader: uploader, EventPublisher: publisher}, nil
}

// NewMediaUploader returns the [MediaUploader] for cfg.Provider.
func NewMediaUploader(ctx context.Context, cfg config.Media, logger *logger.Logger) (MediaUploader, error) {
	switch cfg.Provider {
	case config.MediaProviderCloudinary:
		return NewCloudinaryUploader(cfg.Cloudinary, cfg.Timeout, logger)
	case config.MediaProviderS3:
		return NewS3Uploader(ctx, cfg.S3, cfg.Timeout, logger)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownMediaProvider, cfg.Provider)
}

// Close releases the resources held by the adapters.
func (a *Adapters) Close() error {
	if a.EventPublisher == nil {
		return nil
	}
	return a.EventPublisher.Close()
}
