package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/amsibert-fmms/Solitaire/internal/cache"
	"github.com/amsibert-fmms/Solitaire/internal/database"
	"github.com/amsibert-fmms/Solitaire/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the win-ingest HTTP service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var store server.WinStore = server.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		if err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
			return err
		}
		defer database.Close()
		store = server.PGStore{}
	} else {
		logrus.Warn("DATABASE_URL not set, using in-memory win store")
	}

	if cfg.RedisURL != "" {
		if err := cache.Connect(ctx, cfg.RedisURL); err != nil {
			logrus.WithError(err).Warn("redis unavailable, win publication disabled")
		} else {
			defer cache.Close()
		}
	}

	srv := server.NewServer(store, cfg.JWTSecret)
	logrus.Infof("listening on %s", cfg.Addr)
	return srv.Router().Run(cfg.Addr)
}
