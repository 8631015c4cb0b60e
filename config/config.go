package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	Port        string
	Env         string
	CORSOrigins []string
	Currency    string

	Mongo    Mongo
	JWT      JWT
	Redis    Redis
	Kafka    Kafka
	RabbitMQ RabbitMQ
	Razorpay Razorpay
	Auth     Auth
	SMTP     SMTP

	Telemetry Telemetry
}

type Mongo struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type JWT struct {
	Secret    string
	Issuer    string
	Audience  string
	AccessExp time.Duration
}

type Redis struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

type Kafka struct {
	Enabled     bool
	Brokers     []string
	OrdersTopic string
	GroupID     string
}

// RabbitMQ: альтернативная шина событий заказов, если Kafka выключена.
type RabbitMQ struct {
	URL         string
	OrdersQueue string
}

type Telemetry struct {
	Enabled     bool
	Exporter    string // stdout | otlp
	ServiceName string
	SampleRatio float64
}

type Razorpay struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// TestMode подменяет шлюз локальной заглушкой. Включается только явно.
	TestMode bool
}

type Auth struct {
	OTPTTL         time.Duration
	OTPCooldown    time.Duration
	OTPDebug       bool
	BootstrapToken string
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	TMPLDir  string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port:        getEnvDefault("APP_PORT", ":8000"),
		Env:         getEnvDefault("ENV", "production"),
		CORSOrigins: splitAndTrim(getEnvDefault("CORS_ORIGINS", "*")),
		Currency:    getEnvDefault("CURRENCY", "INR"),
		Mongo: Mongo{
			URI:      getEnv("MONGO_URI", log),
			Database: getEnv("MONGO_DB", log),
			Timeout:  parseDurationWithDays(getEnvDefault("MONGO_TIMEOUT", "10s")),
		},
		JWT: JWT{
			Secret:    getEnv("JWT_SECRET", log),
			Issuer:    getEnvDefault("JWT_ISSUER", "jasubhai-storefront"),
			Audience:  getEnvDefault("JWT_AUDIENCE", "jasubhai-storefront"),
			AccessExp: parseDurationWithDays(getEnvDefault("ACCESS_EXP", "7d")),
		},
		Redis: Redis{
			Enabled:    getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:       getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password:   getEnvDefault("REDIS_PASSWORD", ""),
			DB:         atoiDefault(getEnvDefault("REDIS_DB", ""), 0),
			TTLSeconds: atoiDefault(getEnvDefault("CACHE_TTL_SECONDS", ""), 60),
		},
		Kafka: Kafka{
			Enabled:     getEnvDefault("KAFKA_ENABLED", "false") == "true",
			Brokers:     splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			OrdersTopic: getEnvDefault("KAFKA_TOPIC_ORDERS", "storefront.orders"),
			GroupID:     getEnvDefault("KAFKA_GROUP_ID", "storefront-notifier"),
		},
		RabbitMQ: RabbitMQ{
			URL:         getEnvDefault("RABBITMQ_URL", ""),
			OrdersQueue: getEnvDefault("RABBITMQ_ORDERS_QUEUE", "storefront.orders"),
		},
		Razorpay: Razorpay{
			KeyID:      getEnvDefault("RAZORPAY_KEY_ID", ""),
			KeySecret:  getEnvDefault("RAZORPAY_KEY_SECRET", ""),
			BaseURL:    getEnvDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
			Timeout:    parseDurationWithDays(getEnvDefault("RAZORPAY_TIMEOUT", "10s")),
			MaxRetries: atoiDefault(getEnvDefault("RAZORPAY_MAX_RETRIES", ""), 3),
			TestMode:   getEnvDefault("PAYMENT_TEST_MODE", "false") == "true",
		},
		Auth: Auth{
			OTPTTL:         parseDurationWithDays(getEnvDefault("OTP_TTL", "5m")),
			OTPCooldown:    parseDurationWithDays(getEnvDefault("OTP_COOLDOWN", "1m")),
			OTPDebug:       getEnvDefault("OTP_DEBUG", "false") == "true",
			BootstrapToken: getEnvDefault("ADMIN_BOOTSTRAP_TOKEN", ""),
		},
		SMTP: SMTP{
			Host:     getEnvDefault("SMTP_HOST", ""),
			Port:     atoiDefault(getEnvDefault("SMTP_PORT", ""), 465),
			User:     getEnvDefault("SMTP_USER", ""),
			Password: getEnvDefault("SMTP_PASSWORD", ""),
			From:     getEnvDefault("SMTP_FROM", "orders@jasubhaichappal.com"),
			TMPLDir:  getEnvDefault("TMPL_DIR", "templates"),
		},
		Telemetry: Telemetry{
			Enabled:     getEnvDefault("OTEL_ENABLED", "false") == "true",
			Exporter:    getEnvDefault("OTEL_EXPORTER", "stdout"),
			ServiceName: getEnvDefault("OTEL_SERVICE_NAME", "jasubhai-storefront"),
			SampleRatio: parseFloatDefault(getEnvDefault("OTEL_SAMPLE_RATIO", ""), 1),
		},
	}
}

func (c *Config) IsDev() bool { return c.Env == "development" }

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func parseDurationWithDays(s string) time.Duration {
	if strings.HasSuffix(s, "d") {
		daysStr := strings.TrimSuffix(s, "d")
		days, err := time.ParseDuration(daysStr + "h")
		if err != nil {
			log.Printf("Ошибка парсинга TTL: %v", err)
			return 0
		}
		return time.Duration(24) * days
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return duration
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseFloatDefault(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
