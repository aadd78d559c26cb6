// Package server wires the gophterms server together: storage, services
// and the HTTP API, and runs it until the context is cancelled.
package server

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/gophterms/internal/logging"
	"github.com/dmitrijs2005/gophterms/internal/server/config"
	"github.com/dmitrijs2005/gophterms/internal/server/httpapi"
	"github.com/dmitrijs2005/gophterms/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophterms/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophterms/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *refreshtokens.RedisRepository
	http   *httpapi.HTTPServer
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	var opts []repomanager.Option
	if c.RedisURL != "" {
		r, err := refreshtokens.NewRedisRepository(ctx, c.RedisURL)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		app.redis = r
		opts = append(opts, repomanager.WithRefreshTokenStore(r))
		logger.Info(ctx, "Refresh tokens stored in redis")
	}

	rm := repomanager.NewPostgresRepositoryManager(opts...)
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(db, rm, c, logger)
	cs := services.NewCollectionService(db, rm)
	ts := services.NewTermsService(db, rm)

	app.http = httpapi.NewHTTPServer(c.EndpointAddrHTTP, logger, us, cs, ts, c.SecretKey, c.CORSOrigins)

	return app, nil
}

func (app *App) close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(context.Background(), "redis close failed", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close failed", "error", err)
	}
}

// Run serves HTTP until ctx is cancelled and then releases resources.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")
	defer app.close()

	if err := app.http.Run(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
