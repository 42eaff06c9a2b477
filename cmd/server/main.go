// Command server runs the recipebox web application.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/recipebox/pkg/config"
	"github.com/dmitrymomot/recipebox/pkg/environment"
	"github.com/dmitrymomot/recipebox/pkg/logger"
	"github.com/dmitrymomot/recipebox/pkg/requestid"
	"github.com/dmitrymomot/recipebox/svc/user"
)

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		log.Fatalf("load config: %v", err)
	}

	env := environment.Parse(cfg.Env)
	l := logger.New(
		logger.WithEnvironment(env, cfg.AppName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			user.LoggerExtractor(),
		),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, env, l); err != nil {
		l.ErrorContext(ctx, "server stopped", logger.Error(err))
		os.Exit(1)
	}
}
