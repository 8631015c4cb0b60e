package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vraj1599/jasubhaichappal/config"
	_ "github.com/vraj1599/jasubhaichappal/docs"
	"github.com/vraj1599/jasubhaichappal/internal/cache"
	"github.com/vraj1599/jasubhaichappal/internal/database"
	"github.com/vraj1599/jasubhaichappal/internal/hashing"
	"github.com/vraj1599/jasubhaichappal/internal/logger"
	"github.com/vraj1599/jasubhaichappal/internal/payment"
	"github.com/vraj1599/jasubhaichappal/internal/producer"
	"github.com/vraj1599/jasubhaichappal/internal/repository"
	"github.com/vraj1599/jasubhaichappal/internal/router"
	"github.com/vraj1599/jasubhaichappal/internal/service"
	"github.com/vraj1599/jasubhaichappal/internal/telemetry"
	"github.com/vraj1599/jasubhaichappal/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @Title Jasubhai Chappal API
// @Version 1.0
// @Description API интернет-магазина: каталог, корзина, заказы и оплата
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := telemetry.SetupTracing(context.Background(), &cfg.Telemetry, cfg.Env, log)
	if err != nil {
		log.Fatal("failed to setup tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	client, db := database.ConnectDB(&cfg.Mongo, log)
	defer database.CloseDB(client, log)

	repos := repository.New(db)

	// OTP и лимиты нужны всегда; без Redis они живут в памяти процесса.
	var (
		otpCache     service.CacheClient = cache.NewMemoryCache()
		productCache service.CacheClient
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		otpCache, productCache = redisClient, redisClient
		log.Info("Redis cache enabled")
	} else {
		log.Info("Redis cache disabled")
	}

	var events service.EventBus
	switch {
	case cfg.Kafka.Enabled:
		if len(cfg.Kafka.Brokers) == 0 {
			log.Fatal("no kafka brokers configured (KAFKA_BROKERS)")
		}
		p := producer.NewOrderEventProducer(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic)
		defer p.Close()
		events = p
		log.Info("Kafka order events enabled", zap.String("topic", cfg.Kafka.OrdersTopic))
	case cfg.RabbitMQ.URL != "":
		p, err := producer.NewRabbitOrderProducer(cfg.RabbitMQ.URL, cfg.RabbitMQ.OrdersQueue)
		if err != nil {
			log.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		defer p.Close()
		events = p
		log.Info("RabbitMQ order events enabled", zap.String("queue", cfg.RabbitMQ.OrdersQueue))
	default:
		events = producer.NewLogBus(log)
	}

	hasher := hashing.NewBcrypt(0)
	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	gateway := payment.NewGateway(&cfg.Razorpay, log)

	authSvc := service.NewAuthService(repos.Users, hasher, tokens, otpCache, service.AuthOptions{
		AccessTTL:      cfg.JWT.AccessExp,
		OTPTTL:         cfg.Auth.OTPTTL,
		OTPCooldown:    cfg.Auth.OTPCooldown,
		OTPDebug:       cfg.Auth.OTPDebug,
		BootstrapToken: cfg.Auth.BootstrapToken,
	}, log)
	catalogSvc := service.NewCatalogService(repos.Categories, repos.Products, productCache,
		time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
	couponSvc := service.NewCouponService(repos.Coupons)
	orderSvc := service.NewOrderService(repos.Orders, repos.Products, couponSvc, gateway, events, cfg.Currency, log)

	r := router.Router(router.Deps{
		Auth:        authSvc,
		Catalog:     catalogSvc,
		Cart:        service.NewCartService(repos.Carts, log),
		Wishlist:    service.NewWishlistService(repos.Wishlists),
		Reviews:     service.NewReviewService(repos.Reviews),
		Orders:      orderSvc,
		Coupons:     couponSvc,
		Tokens:      authSvc,
		CORSOrigins: cfg.CORSOrigins,
		Health: func(c *gin.Context) error {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			return repos.Ping(ctx)
		},
	}, log)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           telemetry.HTTPHandler(r, cfg.Telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to run http server", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
	log.Info("HTTP server stopped gracefully")
}
