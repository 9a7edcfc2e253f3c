package main

import (
	"flag"
	"log"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/app"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/config"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/logger"

	"go.uber.org/zap"
)

// @title HaBet API
// @version 1.0
// @description Habit accountability betting backend: bets, check-ins, friends, rooms and leaderboards.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	cfg.MigrateOnly = *migrateOnly

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	a, err := app.NewApp(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration completed, exiting")
		return
	}

	if err := a.Run(); err != nil {
		logger.Log.Fatal("Server error", zap.Error(err))
	}
}
