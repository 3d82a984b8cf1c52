package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args (usually os.Args[1:]).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN / Mongo URI
//	-db-driver store driver (mongo, postgres, sqlite)
//	-db-name Mongo database name
//	-c/-config json file path with configs
//	-access-token-secret access token signing key
//	-refresh-token-secret refresh token signing key
//	-access-token-ttl access token lifetime (e.g., "15m")
//	-refresh-token-ttl refresh token lifetime (e.g., "240h")
//	-token-issuer token issuer name
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-log-level zerolog level
//	-media-provider media upload provider (cloudinary, s3)
//	-kafka-brokers comma-separated kafka brokers
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, databaseDriver, databaseName string
	var jsonConfigPath string
	var accessTokenSecret, refreshTokenSecret string
	var accessTokenTTL, refreshTokenTTL time.Duration
	var tokenIssuer string
	var requestTimeout time.Duration
	var logLevel string
	var mediaProvider string
	var kafkaBrokers string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN or Mongo URI")
	fs.StringVar(&databaseDriver, "db-driver", "", "Store driver: mongo, postgres or sqlite")
	fs.StringVar(&databaseName, "db-name", "", "Mongo database name")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&accessTokenSecret, "access-token-secret", "", "Access token signing key")
	fs.StringVar(&refreshTokenSecret, "refresh-token-secret", "", "Refresh token signing key")
	fs.DurationVar(&accessTokenTTL, "access-token-ttl", 0, "Access token lifetime (e.g., 15m)")
	fs.DurationVar(&refreshTokenTTL, "refresh-token-ttl", 0, "Refresh token lifetime (e.g., 240h)")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&mediaProvider, "media-provider", "", "Media upload provider: cloudinary or s3")
	fs.StringVar(&kafkaBrokers, "kafka-brokers", "", "Comma-separated Kafka brokers")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Auth: Auth{
			AccessTokenSecret:  accessTokenSecret,
			RefreshTokenSecret: refreshTokenSecret,
			AccessTokenTTL:     accessTokenTTL,
			RefreshTokenTTL:    refreshTokenTTL,
			TokenIssuer:        tokenIssuer,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
				Name:   databaseName,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			Media: Media{
				Provider: mediaProvider,
			},
			Events: Events{
				KafkaBrokers: splitList(kafkaBrokers),
			},
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// splitList splits a comma-separated list, dropping blank items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty (all interfaces), and returns an error if the format
// or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
