package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/williamokano/s3meta/pkg/app"
	"github.com/williamokano/s3meta/pkg/config"
	"github.com/williamokano/s3meta/pkg/logger"
)

func main() {
	// Commands build their own logger once config is read; this one only
	// reports failures that end the run.
	logger.Init(config.DefaultLogLevel, config.DefaultLogFormat)
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := app.New(os.Stdout, os.Stderr, app.NewS3Store).RunContext(ctx, os.Args)
	stop()

	if err != nil {
		log.Error().Err(err).Msg("s3meta failed")
	}
	os.Exit(app.ExitCode(err))
}
