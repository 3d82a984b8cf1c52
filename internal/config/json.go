package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// are written as strings ("15m", "30s").
type StructuredJSONConfig struct {
	App struct {
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		AccessTokenSecret  string   `json:"access_token_secret"`
		RefreshTokenSecret string   `json:"refresh_token_secret"`
		AccessTokenTTL     Duration `json:"access_token_ttl"`
		RefreshTokenTTL    Duration `json:"refresh_token_ttl"`
		TokenIssuer        string   `json:"token_issuer"`
		PasswordHashCost   int      `json:"password_hash_cost"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
			Name   string `json:"name"`
		} `json:"db,omitempty"`

		Uploads struct {
			TempDir   string `json:"temp_dir"`
			MaxMemory int64  `json:"max_memory"`
		} `json:"uploads,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		RateLimitPerMinute int      `json:"rate_limit_per_minute"`
		RateLimitBurst     int      `json:"rate_limit_burst"`
	} `json:"server,omitempty"`

	Adapter struct {
		Media struct {
			Provider   string     `json:"provider"`
			Timeout    Duration   `json:"timeout"`
			Cloudinary Cloudinary `json:"cloudinary"`
			S3         S3         `json:"s3"`
		} `json:"media,omitempty"`

		Events struct {
			KafkaBrokers []string `json:"kafka_brokers"`
			Topic        string   `json:"topic"`
		} `json:"events,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		UploadJanitorInterval Duration `json:"upload_janitor_interval"`
		UploadMaxAge          Duration `json:"upload_max_age"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Auth: Auth{
			AccessTokenSecret:  jsonCfg.Auth.AccessTokenSecret,
			RefreshTokenSecret: jsonCfg.Auth.RefreshTokenSecret,
			AccessTokenTTL:     time.Duration(jsonCfg.Auth.AccessTokenTTL),
			RefreshTokenTTL:    time.Duration(jsonCfg.Auth.RefreshTokenTTL),
			TokenIssuer:        jsonCfg.Auth.TokenIssuer,
			PasswordHashCost:   jsonCfg.Auth.PasswordHashCost,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
				Name:   jsonCfg.Storage.DB.Name,
			},
			Uploads: Uploads{
				TempDir:   jsonCfg.Storage.Uploads.TempDir,
				MaxMemory: jsonCfg.Storage.Uploads.MaxMemory,
			},
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			RateLimitPerMinute: jsonCfg.Server.RateLimitPerMinute,
			RateLimitBurst:     jsonCfg.Server.RateLimitBurst,
		},
		Adapter: Adapter{
			Media: Media{
				Provider:   jsonCfg.Adapter.Media.Provider,
				Timeout:    time.Duration(jsonCfg.Adapter.Media.Timeout),
				Cloudinary: jsonCfg.Adapter.Media.Cloudinary,
				S3:         jsonCfg.Adapter.Media.S3,
			},
			Events: Events{
				KafkaBrokers: jsonCfg.Adapter.Events.KafkaBrokers,
				Topic:        jsonCfg.Adapter.Events.Topic,
			},
		},
		Workers: Workers{
			UploadJanitorInterval: time.Duration(jsonCfg.Workers.UploadJanitorInterval),
			UploadMaxAge:          time.Duration(jsonCfg.Workers.UploadMaxAge),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
