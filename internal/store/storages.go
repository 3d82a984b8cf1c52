package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
)

// Storages groups the repositories handed to the service layer together with
// the lifecycle of the connection that backs them.
type Storages struct {
	UserRepository UserRepository

	migrate func(ctx context.Context) error
	close   func(ctx context.Context) error
}

// NewStorages connects to the database selected by cfg.Driver and builds the
// repositories on top of it.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		mongoDB, err := NewConnectMongo(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &Storages{
			UserRepository: NewMongoUserRepository(mongoDB.Database.Collection(usersCollection), log),
			migrate:        mongoDB.Migrate,
			close:          mongoDB.Close,
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		connect := NewConnectPostgres
		if cfg.Driver == config.DriverSQLite {
			connect = NewConnectSQLite
		}
		db, err := connect(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return newSQLStorages(db, log), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

func newSQLStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewSQLUserRepository(db, log),
		migrate:        func(context.Context) error { return db.Migrate() },
		close:          db.Close,
	}
}

// Migrate prepares the schema (SQL migrations or document indexes).
func (s *Storages) Migrate(ctx context.Context) error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(ctx)
}

// Close releases the database connection.
func (s *Storages) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
