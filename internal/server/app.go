// Package server initializes and runs the application: it opens the pooled
// database connection, applies migrations, builds the configured blob store
// backend, and serves HTTP until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/dberzins/docshelf/internal/logging"
	"github.com/dberzins/docshelf/internal/server/blob"
	"github.com/dberzins/docshelf/internal/server/config"
	"github.com/dberzins/docshelf/internal/server/httpapi"
	"github.com/dberzins/docshelf/internal/server/repositories/repomanager"
	"github.com/dberzins/docshelf/internal/server/services"
)

const sessionPurgeInterval = 10 * time.Minute

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *http.Server

	accountService  *services.AccountService
	documentService *services.DocumentService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	// A misconfigured blob backend is fatal here, not a silent no-op on
	// every request.
	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	accountService := services.NewAccountService(db, repos, cfg, logger)
	documentService := services.NewDocumentService(db, repos, blobs, cfg, logger)

	handler := httpapi.NewServer(accountService, documentService, logger).Routes()

	return &App{
		config:          cfg,
		logger:          logger,
		db:              db,
		http:            &http.Server{Addr: cfg.Addr, Handler: handler},
		accountService:  accountService,
		documentService: documentService,
	}, nil
}

// openDB opens a pooled connection through the pgx stdlib driver and pings
// it so an unreachable database fails startup fast.
func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	pgxCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	db := stdlib.OpenDB(*pgxCfg)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func newBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	switch cfg.BlobBackend {
	case config.BackendGitHub:
		return blob.NewGitHubStore(nil, cfg.GitHubAPIBaseURL, cfg.GitHubToken,
			cfg.GitHubRepo, cfg.GitHubBranch, cfg.UploadPrefix)
	case config.BackendS3:
		return blob.NewS3Store(ctx, blob.S3Config{
			User:         cfg.S3User,
			Password:     cfg.S3Password,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			Prefix:       cfg.UploadPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startSessionPurge(ctx context.Context) {
	ticker := time.NewTicker(sessionPurgeInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := app.accountService.PurgeExpiredSessions(ctx); err != nil {
					app.logger.Error(ctx, "session purge failed", "error", err)
				}
			}
		}
	}()
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)
	app.startSessionPurge(ctx)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.Addr)
		if err := app.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.http.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown failed", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close failed", "error", err)
	}

	return nil
}
