// Package server initializes and runs the CodeBuddy development backend.
// It opens and migrates the SQLite database, wires the services into the
// HTTP API and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/TusharG27x/codebuddy/internal/server/api"
	"github.com/TusharG27x/codebuddy/internal/server/config"
	"github.com/TusharG27x/codebuddy/internal/server/repositories/repomanager"
	"github.com/TusharG27x/codebuddy/internal/server/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	server *api.Server
}

func NewApp(ctx context.Context, c *config.Config, logger *zap.Logger) (*App, error) {
	db, err := repomanager.OpenSQLite(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewSQLiteRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	us := services.NewUserService(db, rm, c)
	ss := services.NewStudyService(db, rm)

	gin.SetMode(gin.ReleaseMode)
	secure := !strings.HasPrefix(c.AllowedOrigin, "http://localhost")
	h := api.NewHandler(us, ss, logger, secure)
	router := api.NewRouter(logger, h, c.AllowedOrigin)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: api.NewServer(c.Address, router, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until a termination signal arrives or the server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info("Starting app...")
	if app.config.SecretKey == "secretKey" {
		app.logger.Warn("using the default secret key; set CODEBUDDY_SERVER_SECRET_KEY outside local development")
	}

	app.initSignalHandler(cancelFunc)

	return app.server.Run(ctx)
}
