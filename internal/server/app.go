// Package server initializes and runs the folio API server. It opens the
// database, applies migrations, wires the services and serves HTTP until
// the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/dmitrijs2005/folio/internal/server/auth"
	"github.com/dmitrijs2005/folio/internal/server/config"
	"github.com/dmitrijs2005/folio/internal/server/httpapi"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/folio/internal/server/revocation"
	"github.com/dmitrijs2005/folio/internal/server/services"
	"github.com/dmitrijs2005/folio/internal/server/tracing"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	redis           *redis.Client
	server          *httpapi.Server
	shutdownTracing tracing.ShutdownFunc
}

// Seams for tests: a sqlmock connection and no goose run.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	runMigrations = func(ctx context.Context, m repomanager.RepositoryManager, db *sql.DB) error {
		return m.RunMigrations(ctx, db)
	}
)

func NewApp(c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, c.LogFormat, c.LogLevel)
	if c.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := runMigrations(ctx, m, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	revoked, err := app.newRevocationStore(m)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	tokens, err := auth.NewTokenService(c.SecretKey, c.SigningAlgorithm, c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)
	if err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("token service: %w", err)
	}
	hasher := auth.NewPasswordHasher(c.BcryptCost)

	// a nil store must reach the gate as a nil interface
	var checker auth.RevocationChecker
	if revoked != nil {
		checker = revoked
	}
	gate := auth.NewGate(tokens, checker)

	svc := httpapi.Services{
		Users:     services.NewUserService(db, m, hasher, tokens, revoked),
		Posts:     services.NewPostService(db, m),
		Profiles:  services.NewProfileService(db, m),
		Projects:  services.NewProjectService(db, m),
		Dashboard: services.NewDashboardService(db, m),
	}
	if c.S3Enabled() {
		svc.Media = services.NewMediaService(c)
	}

	tp, shutdownTracing, err := tracing.Setup(ctx, c.OTLPEndpoint, c.ServiceName)
	if err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("tracing: %w", err)
	}
	app.shutdownTracing = shutdownTracing

	app.server = httpapi.NewServer(c, logger, gate, svc, db, tp)

	logger.Info(ctx, "App initialized",
		"revocation", c.RevocationBackend,
		"media", c.S3Enabled(),
		"tracing", c.OTLPEndpoint != "",
	)

	return app, nil
}

// newRevocationStore returns nil for the "none" backend; logout is then
// stateless and tokens live until they expire.
func (app *App) newRevocationStore(m repomanager.RepositoryManager) (revocation.Store, error) {
	switch app.config.RevocationBackend {
	case config.RevocationPostgres:
		return revocation.NewPostgresStore(app.db, m), nil
	case config.RevocationRedis:
		app.redis = redis.NewClient(&redis.Options{
			Addr:     app.config.RedisAddr,
			Password: app.config.RedisPassword,
			DB:       app.config.RedisDB,
		})
		return revocation.NewRedisStore(app.redis), nil
	case "", config.RevocationNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown revocation backend %q", app.config.RevocationBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the database, Redis and tracing resources.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(context.WithoutCancel(ctx))
	app.logger.Info(ctx, "App stopped")
}

func (app *App) close(ctx context.Context) {
	if app.shutdownTracing != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, app.config.ShutdownTimeout)
		if err := app.shutdownTracing(shutdownCtx); err != nil {
			app.logger.Warn(ctx, "tracing shutdown", "error", err.Error())
		}
		cancel()
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close", "error", err.Error())
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err.Error())
	}
}
