package config

import (
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Media providers.
const (
	MediaProviderCloudinary = "cloudinary"
	MediaProviderS3         = "s3"
)

// defaults returns the values used for every field left empty by all
// configuration sources.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:  "dev",
			LogLevel: "info",
		},
		Auth: Auth{
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  10 * 24 * time.Hour,
			TokenIssuer:      "go-user-service",
			PasswordHashCost: 10,
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverMongo,
				Name:   "users",
			},
			Uploads: Uploads{
				TempDir:   os.TempDir(),
				MaxMemory: 32 << 20,
			},
		},
		Server: Server{
			HTTPAddress:    ":8000",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			Media: Media{
				Provider: MediaProviderCloudinary,
				Timeout:  time.Minute,
			},
			Events: Events{
				Topic: "user-events",
			},
		},
		Workers: Workers{
			UploadJanitorInterval: 10 * time.Minute,
			UploadMaxAge:          time.Hour,
		},
	}
}

// mergeDefaults fills the zero fields of cfg with [defaults].
func mergeDefaults(cfg *StructuredConfig) error {
	if err := mergo.Merge(cfg, defaults()); err != nil {
		return fmt.Errorf("error applying default configs: %w", err)
	}
	return nil
}
