package main

import (
	"context"
	"os"

	"github.com/vraj1599/jasubhaichappal/config"
	"github.com/vraj1599/jasubhaichappal/internal/database"
	"github.com/vraj1599/jasubhaichappal/internal/logger"
	"github.com/vraj1599/jasubhaichappal/internal/migrate"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	client, db := database.ConnectDB(&cfg.Mongo, log)
	defer database.CloseDB(client, log)

	ctx := context.Background()
	opts := migrate.DefaultMigrateOptions()

	if err := migrate.MigrateStoreDB(ctx, db, log, opts); err != nil {
		log.Fatal("Ошибка при выполнении миграции", zap.Error(err))
	}

	log.Info("Миграция успешно завершена")
}
