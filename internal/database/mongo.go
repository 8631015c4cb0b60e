package database

import (
	"context"
	"time"

	"github.com/vraj1599/jasubhaichappal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func ConnectDB(cfg *config.Mongo, log *zap.Logger) (*mongo.Client, *mongo.Database) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		log.Fatal("Не удалось подключиться к MongoDB", zap.Error(err))
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("MongoDB не отвечает на ping", zap.Error(err))
	}

	log.Info("Successfully connected to database", zap.String("db", cfg.Database))
	return client, client.Database(cfg.Database)
}

func CloseDB(client *mongo.Client, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Error("failed to disconnect from MongoDB", zap.Error(err))
		return
	}
	log.Info("MongoDB connection closed")
}
