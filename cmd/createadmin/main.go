package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vraj1599/jasubhaichappal/config"
	"github.com/vraj1599/jasubhaichappal/internal/cache"
	"github.com/vraj1599/jasubhaichappal/internal/database"
	"github.com/vraj1599/jasubhaichappal/internal/hashing"
	"github.com/vraj1599/jasubhaichappal/internal/logger"
	"github.com/vraj1599/jasubhaichappal/internal/repository"
	"github.com/vraj1599/jasubhaichappal/internal/service"
	"github.com/vraj1599/jasubhaichappal/internal/token"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Создаёт администратора из командной строки. Запуск от имени оператора
// приравнивается к вызову с правами администратора.
func main() {
	name := flag.String("name", "Admin", "display name")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password (min 6 chars)")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: go run ./cmd/createadmin -email admin@example.com -password secret [-name Admin]")
		os.Exit(1)
	}

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

	repos := repository.New(db)
	authSvc := service.NewAuthService(
		repos.Users,
		hashing.NewBcrypt(0),
		token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience),
		cache.NewMemoryCache(),
		service.AuthOptions{AccessTTL: cfg.JWT.AccessExp},
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ctx = service.WithClaims(ctx, &service.Claims{UserID: "cli", IsAdmin: true})

	u, err := authSvc.CreateAdmin(ctx, service.RegisterInput{Name: *name, Email: *email, Password: *password}, "")
	if err != nil {
		log.Fatal("Не удалось создать администратора", zap.Error(err))
	}
	log.Info("Администратор создан", zap.String("id", u.ID), zap.String("email", u.Email))
}
