package main

import (
	"context"
	"log"
	"os"

	"github.com/TusharG27x/codebuddy/internal/buildinfo"
	"github.com/TusharG27x/codebuddy/internal/server"
	"github.com/TusharG27x/codebuddy/internal/server/config"
	"go.uber.org/zap"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg, logger)

	if err != nil {
		logger.Error("app init failed", zap.Error(err))
		return
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}

}
