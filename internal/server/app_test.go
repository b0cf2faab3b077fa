package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/folio/internal/server/config"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.SecretKey = "0123456789abcdef0123456789abcdef"
	c.SigningAlgorithm = "HS256"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
	c.ShutdownTimeout = time.Second
	c.LogLevel = "error"
	return c
}

// stubDB routes openDB to sqlmock and skips migrations for one test.
func stubDB(t *testing.T, migrateErr error) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	origOpen, origMigrate := openDB, runMigrations
	t.Cleanup(func() { openDB, runMigrations = origOpen, origMigrate })

	openDB = func(string) (*sql.DB, error) { return db, nil }
	runMigrations = func(context.Context, repomanager.RepositoryManager, *sql.DB) error { return migrateErr }
	return mock
}

func TestNewApp_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name      string
		backend   string
		wantRedis bool
	}{
		{name: "none", backend: config.RevocationNone},
		{name: "postgres", backend: config.RevocationPostgres},
		{name: "redis", backend: config.RevocationRedis, wantRedis: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := stubDB(t, nil)
			mock.ExpectClose()

			c := testConfig()
			c.RevocationBackend = tt.backend
			c.RedisAddr = mr.Addr()

			app, err := NewApp(c)
			require.NoError(t, err)
			require.NotNil(t, app.server)
			assert.Equal(t, tt.wantRedis, app.redis != nil)

			app.close(context.Background())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNewApp_MigrationFailure(t *testing.T) {
	mock := stubDB(t, errors.New("dirty database"))
	mock.ExpectClose()

	_, err := NewApp(testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_UnknownBackend(t *testing.T) {
	mock := stubDB(t, nil)
	mock.ExpectClose()

	c := testConfig()
	c.RevocationBackend = "memcached"
	_, err := NewApp(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown revocation backend")
}

func TestNewApp_OpenFailure(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string) (*sql.DB, error) { return nil, errors.New("bad dsn") }

	_, err := NewApp(testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db open error")
}

func TestRun_StopsWhenContextEnds(t *testing.T) {
	mock := stubDB(t, nil)
	mock.ExpectClose()

	app, err := NewApp(testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
