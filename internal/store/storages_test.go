package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
)

func TestNewStorages_UnknownDriver(t *testing.T) {
	s, err := NewStorages(context.Background(), config.DB{Driver: "oracle", DSN: "x"}, logger.Nop())
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestStorages_SQLLifecycle(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectClose()

	s := newSQLStorages(&DB{DB: db, errorClassificator: NewPostgresErrorClassifier(), logger: logger.Nop()}, logger.Nop())
	require.NotNil(t, s.UserRepository)

	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorages_ZeroValue(t *testing.T) {
	var s Storages
	assert.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, s.Close(context.Background()))
}

func TestCreateLocalDBFileIfNotExists(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, createLocalDBFileIfNotExists(":memory:"))
	assert.NoError(t, createLocalDBFileIfNotExists("file::memory:?cache=shared"))

	path := dir + "/nested/users.db"
	require.NoError(t, createLocalDBFileIfNotExists("file:"+path+"?_busy_timeout=5000"))
	assert.FileExists(t, path)

	// existing file is left alone
	require.NoError(t, createLocalDBFileIfNotExists(path))
}
