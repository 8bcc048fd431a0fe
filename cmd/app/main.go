package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"marketplace/cmd"
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres/accountrepo"
	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/chatrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/rabbitmq"
	redisadapter "marketplace/internal/adapters/out/redis"
	"marketplace/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config := getConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(config)
	cache := mustOpenCache(config)
	notifier, closeAmqp := mustOpenNotifier(config)
	defer closeAmqp()

	root := cmd.NewCompositionRoot(config, gormDB, cache, notifier, logger)

	jobManager := jobs.NewJobManager(
		root.CreatePurgeCartsCommandHandler(),
		config.CartRetention,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, config.HTTPPort)
}

func getConfig() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:              envOr("HTTP_PORT", "8080"),
		DBHost:                mustEnv("DB_HOST"),
		DBPort:                mustEnv("DB_PORT"),
		DBUser:                mustEnv("DB_USER"),
		DBPassword:            mustEnv("DB_PASSWORD"),
		DBName:                mustEnv("DB_NAME"),
		DBSslMode:             envOr("DB_SSLMODE", "disable"),
		RedisAddr:             mustEnv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		AmqpURL:               mustEnv("AMQP_URL"),
		FreeDeliveryThreshold: envOr("FREE_DELIVERY_THRESHOLD", "1000.00"),
		CartRetention:         envDurationOr("CART_RETENTION", 48*time.Hour),
		OrderHistoryTTL:       envDurationOr("ORDER_HISTORY_TTL", 15*time.Minute),
	}
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Missing required environment variable %s", key)
	}
	return value
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return duration
}

func mustOpenDatabase(config cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword,
		config.DBName, config.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&accountrepo.AccountDTO{},
		&productrepo.ProductDTO{},
		&cartrepo.CartDTO{},
		&cartrepo.LineDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&chatrepo.ChannelDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func mustOpenCache(config cmd.Config) *redisadapter.OrderHistoryCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})

	return redisadapter.NewOrderHistoryCache(client, config.OrderHistoryTTL)
}

func mustOpenNotifier(config cmd.Config) (*rabbitmq.Notifier, func()) {
	conn, err := amqp.Dial(config.AmqpURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open AMQP channel: %v", err)
	}

	notifier, err := rabbitmq.NewNotifier(channel)
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}

	closer := func() {
		_ = channel.Close()
		_ = conn.Close()
	}
	return notifier, closer
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		root.CreateUpsertCartLineCommandHandler(),
		root.CreateRemoveCartLineCommandHandler(),
		root.CreateClearCartCommandHandler(),
		root.CreateCheckoutCommandHandler(),
		root.CreateAcceptOrderCommandHandler(),
		root.CreateStartDeliveryCommandHandler(),
		root.CreateCompleteDeliveryCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateRateOrderCommandHandler(),
		root.CreateGetCartQueryHandler(),
		root.CreateGetOrderHistoryQueryHandler(),
		root.CreateGetOrderDetailsQueryHandler(),
		root.CreateGetOrderChatQueryHandler(),
		root.CreateGetAvailableOrdersQueryHandler(),
		root.CreateGetCourierOrdersQueryHandler(),
	)

	api := e.Group("/api/v1", httpadapter.AccountMiddleware(root.CreateAccountReader()))
	server.RegisterRoutes(api)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
