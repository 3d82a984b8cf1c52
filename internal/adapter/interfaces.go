// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound integrations of the user service.
//
// [MediaUploader] stores user avatars and cover images with a third-party
// provider: Cloudinary through its Go SDK ([NewCloudinaryUploader]) or any
// S3-compatible bucket ([NewS3Uploader]).
// [EventPublisher] emits user lifecycle events to Kafka
// ([NewKafkaPublisher]) or drops them when no brokers are configured.
//
// Provider failures wrap [ErrUploadFailed] or [ErrPublishFailed] so callers
// can match them with [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-user-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// MediaUploader uploads a local file to remote storage.
type MediaUploader interface {
	// Upload sends the file at localPath and returns its public URL and
	// provider identifier. Returns [ErrEmptyFilePath] for an empty path.
	// The local file is left in place; the caller owns it.
	Upload(ctx context.Context, localPath string) (models.UploadResult, error)
}

// EventPublisher publishes user lifecycle events.
type EventPublisher interface {
	// Publish sends event. Callers treat failures as non-fatal.
	Publish(ctx context.Context, event models.UserEvent) error

	// Close flushes pending events and releases the connection.
	Close() error
}
