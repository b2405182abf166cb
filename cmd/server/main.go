package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anonto42/socialfeed/backend/internal/router"
	"github.com/anonto42/socialfeed/backend/pkg/config"
	"github.com/anonto42/socialfeed/backend/pkg/logger"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	app := &cli.App{
		Name:  "socialfeed",
		Usage: "social feed and notification API",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the http and metrics servers",
				Action: func(c *cli.Context) error {
					return serve(c.Context, cfg, log)
				},
			},
			{
				Name:  "migrate",
				Usage: "create tables and indexes, then exit",
				Action: func(c *cli.Context) error {
					return migrate(c.Context, cfg, log)
				},
			},
		},
		DefaultCommand: "serve",
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal("socialfeed exited", zap.Error(err))
	}
}

func migrate(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	if err := router.Migrate(ctx, db.Postgres, db.Mongo.Database(cfg.MongoDatabase)); err != nil {
		return err
	}
	log.Info("migrations completed")
	return nil
}
