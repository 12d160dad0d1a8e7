package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"stayengine/config"
	"stayengine/di"
	"stayengine/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	di.InitializeWorker().Run(ctx)

	log.Info().Msg("worker stopped")
}
