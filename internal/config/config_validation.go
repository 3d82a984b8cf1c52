// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.AccessTokenSecret == "" || cfg.Auth.RefreshTokenSecret == "" {
		return fmt.Errorf("%w: access and refresh token secrets are required", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.AccessTokenSecret == cfg.Auth.RefreshTokenSecret {
		return fmt.Errorf("%w: access and refresh token secrets must differ", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.AccessTokenTTL <= 0 || cfg.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("%w: token lifetimes must be positive", ErrInvalidAuthConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverMongo, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database uri is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: address and request timeout are required", ErrInvalidServerConfigs)
	}
	if cfg.Server.RateLimitPerMinute < 0 || cfg.Server.RateLimitBurst < 0 {
		return fmt.Errorf("%w: rate limits must not be negative", ErrInvalidServerConfigs)
	}

	if err := cfg.Adapter.Media.validate(); err != nil {
		return err
	}

	if cfg.Workers.UploadJanitorInterval < time.Second || cfg.Workers.UploadMaxAge <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (m Media) validate() error {
	switch m.Provider {
	case MediaProviderCloudinary:
		if m.Cloudinary.CloudName == "" || m.Cloudinary.APIKey == "" || m.Cloudinary.APISecret == "" {
			return fmt.Errorf("%w: cloudinary credentials are required", ErrInvalidAdapterConfigs)
		}
	case MediaProviderS3:
		if m.S3.Bucket == "" || m.S3.Region == "" {
			return fmt.Errorf("%w: s3 bucket and region are required", ErrInvalidAdapterConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown media provider %q", ErrInvalidAdapterConfigs, m.Provider)
	}

	return nil
}
